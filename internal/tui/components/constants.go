package components

const (
	SnippetCardHeight  = 5  // border + title line + two code lines
	snippetInnerWidth  = 30 // card content width
	snippetCardWidth   = snippetInnerWidth + 4
	previewLines       = 2 // code lines shown on a card
	expandedLines      = 12
	columnOverhead     = 5 // border + padding + header + top indicator
	columnInnerWidth   = snippetCardWidth
	titleEllipsisAfter = snippetInnerWidth - 6 // room for the chip and pending marker
)
