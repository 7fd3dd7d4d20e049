package database

import (
	"time"

	"github.com/thenoetrevino/snipboard/internal/models"
)

// seedSnippets returns the sample snippets shown on a brand new board
func seedSnippets(columns []string, now time.Time, newID func() string) []models.Snippet {
	if len(columns) == 0 {
		columns = models.DefaultColumnTitles()
	}
	second := columns[0]
	if len(columns) > 1 {
		second = columns[1]
	}
	base := now.UnixMilli()

	return []models.Snippet{
		{
			ID:    newID(),
			Title: "React Hook - useTitle",
			Code: `import { useEffect } from "react";

function useTitle(title) {
  useEffect(() => {
    const prevTitle = document.title;
    document.title = title;
    return () => { document.title = prevTitle; };
  }, [title]);
}`,
			Color:    models.ColorBlue,
			Category: columns[0],
			OrderKey: base,
		},
		{
			ID:    newID(),
			Title: "Tailwind Card Layout",
			Code: `<div class="bg-gray-700 p-4 rounded-lg shadow-xl md:flex md:space-x-4">
  <div class="text-xl font-medium text-white">Project X</div>
</div>`,
			Color:    models.ColorGreen,
			Category: second,
			OrderKey: base + 1,
		},
		{
			ID:    newID(),
			Title: "Python Dict Sort",
			Code: `data = {"c": 3, "a": 1, "b": 2}

sorted_keys = dict(sorted(data.items()))
sorted_values = dict(sorted(data.items(), key=lambda item: item[1]))`,
			Color:    models.ColorPurple,
			Category: columns[0],
			OrderKey: base + 2,
		},
	}
}
