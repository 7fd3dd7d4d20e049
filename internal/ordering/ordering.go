// Package ordering computes order key assignments for drag-and-drop moves on the board.
//
// Everything here is pure: functions take value slices and return new slices,
// never mutating their input. A column's display order is its snippets sorted
// by descending OrderKey, so every operation only has to produce keys that sort
// into the requested arrangement.
package ordering

import (
	"cmp"
	"slices"

	"github.com/thenoetrevino/snipboard/internal/models"
)

// Result is the outcome of a move.
// Changed lists the IDs whose key or category differ from the input, in display order.
type Result struct {
	Snippets []models.Snippet
	Changed  []string
}

// compareDisplay orders snippets top to bottom. Ties on the key fall back to the ID
// so equal keys still render deterministically.
func compareDisplay(a, b models.Snippet) int {
	if c := cmp.Compare(b.OrderKey, a.OrderKey); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// SortDescending returns a sorted copy of snippets in display order
func SortDescending(snippets []models.Snippet) []models.Snippet {
	out := slices.Clone(snippets)
	slices.SortStableFunc(out, compareDisplay)
	return out
}

// Column returns the snippets of one category in display order
func Column(all []models.Snippet, category string) []models.Snippet {
	var out []models.Snippet
	for _, s := range all {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return SortDescending(out)
}

// MaxKey returns the highest order key in use, or 0 for an empty collection
func MaxKey(all []models.Snippet) int64 {
	var maxKey int64
	for i, s := range all {
		if i == 0 || s.OrderKey > maxKey {
			maxKey = s.OrderKey
		}
	}
	return maxKey
}

// Retimestamp assigns key[i] = base - i, so position 0 gets the highest key.
// The input order is taken as the desired top-to-bottom arrangement.
func Retimestamp(list []models.Snippet, base int64) []models.Snippet {
	out := make([]models.Snippet, len(list))
	for i, s := range list {
		s.OrderKey = base - int64(i)
		out[i] = s
	}
	return out
}

// ReorderWithinColumn moves draggedID to sit immediately before targetID and renumbers
// the whole column from base. column must hold a single category; it is sorted first.
// The column is returned unchanged when the IDs are equal or either one is missing.
func ReorderWithinColumn(column []models.Snippet, draggedID, targetID string, base int64) Result {
	sorted := SortDescending(column)
	if draggedID == targetID {
		return Result{Snippets: sorted}
	}

	dragIdx := indexOf(sorted, draggedID)
	if dragIdx < 0 || indexOf(sorted, targetID) < 0 {
		return Result{Snippets: sorted}
	}

	dragged := sorted[dragIdx]
	rest := slices.Delete(slices.Clone(sorted), dragIdx, dragIdx+1)
	targetIdx := indexOf(rest, targetID)
	arranged := slices.Insert(rest, targetIdx, dragged)

	renumbered := Retimestamp(arranged, base)
	return Result{
		Snippets: renumbered,
		Changed:  changedIDs(sorted, renumbered),
	}
}

// MoveToColumn moves draggedID into targetColumn.
//
// A drop on the snippet's own column moves it to the top and renumbers that column.
// A drop on another column retags the snippet and gives it a key above every key in
// use, leaving all other snippets untouched.
func MoveToColumn(all []models.Snippet, draggedID, targetColumn string, base int64) Result {
	idx := indexOf(all, draggedID)
	if idx < 0 {
		return Result{Snippets: slices.Clone(all)}
	}
	dragged := all[idx]

	if dragged.Category == targetColumn {
		column := Column(all, targetColumn)
		pos := indexOf(column, draggedID)
		arranged := slices.Insert(slices.Delete(slices.Clone(column), pos, pos+1), 0, dragged)
		renumbered := Retimestamp(arranged, base)
		return Result{
			Snippets: merge(all, targetColumn, renumbered),
			Changed:  changedIDs(column, renumbered),
		}
	}

	moved := dragged
	moved.Category = targetColumn
	moved.OrderKey = max(base+models.CrossColumnOffset, MaxKey(all)+1)

	out := slices.Clone(all)
	out[idx] = moved
	return Result{Snippets: out, Changed: []string{draggedID}}
}

// Retag renames a category on every snippet that carries it.
// It returns the new collection and the IDs that were retagged.
func Retag(all []models.Snippet, oldTitle, newTitle string) Result {
	out := slices.Clone(all)
	var changed []string
	if oldTitle == newTitle {
		return Result{Snippets: out}
	}
	for i := range out {
		if out[i].Category == oldTitle {
			out[i].Category = newTitle
			changed = append(changed, out[i].ID)
		}
	}
	return Result{Snippets: out, Changed: changed}
}

// merge replaces every snippet of category in all with column, preserving the
// positions of snippets from other categories.
func merge(all []models.Snippet, category string, column []models.Snippet) []models.Snippet {
	byID := make(map[string]models.Snippet, len(column))
	for _, s := range column {
		byID[s.ID] = s
	}
	out := make([]models.Snippet, 0, len(all))
	for _, s := range all {
		if s.Category == category {
			if updated, ok := byID[s.ID]; ok {
				out = append(out, updated)
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

func indexOf(list []models.Snippet, id string) int {
	return slices.IndexFunc(list, func(s models.Snippet) bool { return s.ID == id })
}

// changedIDs returns, in the order of after, the IDs whose key or category moved
func changedIDs(before, after []models.Snippet) []string {
	prev := make(map[string]models.Snippet, len(before))
	for _, s := range before {
		prev[s.ID] = s
	}
	var changed []string
	for _, s := range after {
		old, ok := prev[s.ID]
		if !ok || old.OrderKey != s.OrderKey || old.Category != s.Category {
			changed = append(changed, s.ID)
		}
	}
	return changed
}
