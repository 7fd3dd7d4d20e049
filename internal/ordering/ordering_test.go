package ordering

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/snipboard/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func snip(id, category string, key int64) models.Snippet {
	return models.Snippet{ID: id, Title: id, Code: "code " + id, Category: category, OrderKey: key}
}

func ids(list []models.Snippet) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.ID
	}
	return out
}

func keyOf(t *testing.T, list []models.Snippet, id string) int64 {
	t.Helper()
	for _, s := range list {
		if s.ID == id {
			return s.OrderKey
		}
	}
	t.Fatalf("snippet %s not found", id)
	return 0
}

func assertStrictlyDescending(t *testing.T, column []models.Snippet) {
	t.Helper()
	for i := 1; i < len(column); i++ {
		if column[i-1].OrderKey <= column[i].OrderKey {
			t.Fatalf("keys not strictly descending at %d: %d <= %d", i, column[i-1].OrderKey, column[i].OrderKey)
		}
	}
}

// ============================================================================
// SORTING
// ============================================================================

func TestSortDescending(t *testing.T) {
	in := []models.Snippet{snip("a", "A", 10), snip("b", "A", 30), snip("c", "A", 20)}

	out := SortDescending(in)

	if diff := cmp.Diff([]string{"b", "c", "a"}, ids(out)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids(in), "input must not be mutated")
}

func TestSortDescending_TiesBrokenByID(t *testing.T) {
	in := []models.Snippet{snip("z", "A", 5), snip("m", "A", 5), snip("a", "A", 5)}

	out := SortDescending(in)

	assert.Equal(t, []string{"a", "m", "z"}, ids(out))
}

func TestColumn_FiltersByCategory(t *testing.T) {
	all := []models.Snippet{snip("x", "A", 1), snip("y", "B", 2), snip("z", "A", 3)}

	assert.Equal(t, []string{"z", "x"}, ids(Column(all, "A")))
	assert.Equal(t, []string{"y"}, ids(Column(all, "B")))
	assert.Empty(t, Column(all, "C"))
}

func TestRetimestamp(t *testing.T) {
	list := []models.Snippet{snip("a", "A", 1), snip("b", "A", 99), snip("c", "A", 50)}

	out := Retimestamp(list, 1000)

	assert.Equal(t, []int64{1000, 999, 998}, []int64{out[0].OrderKey, out[1].OrderKey, out[2].OrderKey})
	assert.Equal(t, int64(1), list[0].OrderKey, "input must not be mutated")
}

// ============================================================================
// REORDER WITHIN COLUMN
// ============================================================================

func TestReorderWithinColumn_MoveUp(t *testing.T) {
	column := []models.Snippet{snip("X", "A", 30), snip("Y", "A", 20), snip("Z", "A", 10)}

	res := ReorderWithinColumn(column, "Z", "Y", 5000)

	if diff := cmp.Diff([]string{"X", "Z", "Y"}, ids(res.Snippets)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, int64(5000), keyOf(t, res.Snippets, "X"))
	assert.Equal(t, int64(4999), keyOf(t, res.Snippets, "Z"))
	assert.Equal(t, int64(4998), keyOf(t, res.Snippets, "Y"))
	assert.ElementsMatch(t, []string{"X", "Y", "Z"}, res.Changed)
}

func TestReorderWithinColumn_MoveDown(t *testing.T) {
	column := []models.Snippet{snip("X", "A", 30), snip("Y", "A", 20), snip("Z", "A", 10)}

	res := ReorderWithinColumn(column, "X", "Z", 100)

	assert.Equal(t, []string{"Y", "X", "Z"}, ids(res.Snippets))
	assertStrictlyDescending(t, res.Snippets)
}

func TestReorderWithinColumn_IsPermutation(t *testing.T) {
	column := []models.Snippet{
		snip("a", "A", 50), snip("b", "A", 40), snip("c", "A", 30), snip("d", "A", 20), snip("e", "A", 10),
	}

	for _, dragged := range ids(column) {
		for _, target := range ids(column) {
			res := ReorderWithinColumn(column, dragged, target, 10_000)
			assert.ElementsMatch(t, ids(column), ids(res.Snippets), "dragged=%s target=%s", dragged, target)
			assert.Equal(t, ids(SortDescending(res.Snippets)), ids(res.Snippets), "render order must equal key order")
		}
	}
}

func TestReorderWithinColumn_NoOps(t *testing.T) {
	column := []models.Snippet{snip("X", "A", 30), snip("Y", "A", 20)}

	tests := []struct {
		name    string
		dragged string
		target  string
	}{
		{"same id", "X", "X"},
		{"dragged missing", "nope", "Y"},
		{"target missing", "X", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ReorderWithinColumn(column, tt.dragged, tt.target, 9999)
			assert.Empty(t, res.Changed)
			assert.Equal(t, column, res.Snippets)
		})
	}
}

func TestReorderWithinColumn_RepeatKeepsRelativeOrder(t *testing.T) {
	column := []models.Snippet{snip("X", "A", 30), snip("Y", "A", 20), snip("Z", "A", 10)}

	first := ReorderWithinColumn(column, "Z", "Y", 1000)
	second := ReorderWithinColumn(first.Snippets, "Z", "Y", 2000)

	assert.Equal(t, ids(first.Snippets), ids(second.Snippets))
	assert.Equal(t, int64(2000), second.Snippets[0].OrderKey, "absolute keys are allowed to bump")
}

// ============================================================================
// MOVE TO COLUMN
// ============================================================================

func TestMoveToColumn_CrossColumn(t *testing.T) {
	all := []models.Snippet{
		snip("S", "Review", 50),
		snip("R", "Review", 45),
		snip("V1", "Voltooid", 40),
		snip("V2", "Voltooid", 10),
	}

	res := MoveToColumn(all, "S", "Voltooid", 20)

	moved := res.Snippets[0]
	assert.Equal(t, "Voltooid", moved.Category)
	assert.Greater(t, moved.OrderKey, int64(40))
	assert.Greater(t, moved.OrderKey, MaxKey(all), "must beat every key in the system")
	assert.Equal(t, []string{"S"}, res.Changed)

	for i, s := range res.Snippets[1:] {
		assert.Equal(t, all[i+1], s, "other snippets must be untouched")
	}

	assert.NotContains(t, ids(Column(res.Snippets, "Review")), "S")
	assert.Equal(t, "S", Column(res.Snippets, "Voltooid")[0].ID)
}

func TestMoveToColumn_UsesNowOffsetWhenHigher(t *testing.T) {
	all := []models.Snippet{snip("S", "A", 5), snip("T", "B", 7)}

	res := MoveToColumn(all, "S", "B", 1_000)

	assert.Equal(t, 1_000+models.CrossColumnOffset, keyOf(t, res.Snippets, "S"))
}

func TestMoveToColumn_SameColumnMovesToTop(t *testing.T) {
	all := []models.Snippet{
		snip("a", "A", 30),
		snip("other", "B", 25),
		snip("b", "A", 20),
		snip("c", "A", 10),
	}

	res := MoveToColumn(all, "c", "A", 500)

	column := Column(res.Snippets, "A")
	require.Equal(t, []string{"c", "a", "b"}, ids(column))
	assert.Equal(t, []int64{500, 499, 498}, []int64{column[0].OrderKey, column[1].OrderKey, column[2].OrderKey})
	assert.Equal(t, int64(25), keyOf(t, res.Snippets, "other"))
	assert.Len(t, res.Snippets, 4)
}

func TestMoveToColumn_UnknownID(t *testing.T) {
	all := []models.Snippet{snip("a", "A", 1)}

	res := MoveToColumn(all, "ghost", "B", 10)

	assert.Equal(t, all, res.Snippets)
	assert.Empty(t, res.Changed)
}

// ============================================================================
// RETAG
// ============================================================================

func TestRetag(t *testing.T) {
	all := []models.Snippet{snip("a", "Old", 1), snip("b", "Keep", 2), snip("c", "Old", 3)}

	res := Retag(all, "Old", "New")

	assert.ElementsMatch(t, []string{"a", "c"}, res.Changed)
	assert.Empty(t, Column(res.Snippets, "Old"))
	assert.Len(t, Column(res.Snippets, "New"), 2)
	assert.Equal(t, "Old", all[0].Category, "input must not be mutated")
}

func TestRetag_SameTitle(t *testing.T) {
	all := []models.Snippet{snip("a", "Old", 1)}

	res := Retag(all, "Old", "Old")

	assert.Empty(t, res.Changed)
}

func TestMaxKey(t *testing.T) {
	assert.Equal(t, int64(0), MaxKey(nil))
	assert.Equal(t, int64(-3), MaxKey([]models.Snippet{snip("a", "A", -3), snip("b", "A", -9)}))
	assert.Equal(t, int64(42), MaxKey([]models.Snippet{snip("a", "A", 1), snip("b", "B", 42)}))
}
