package models

// Column is a board lane. Its title doubles as the category key stored on snippets.
type Column struct {
	Index    int
	Title    string
	Snippets []Snippet // sorted by descending OrderKey
}

// DefaultColumnTitles is the column layout of a fresh board.
// The first column is where new snippets land.
func DefaultColumnTitles() []string {
	return []string{"Alle Snippets", "In Uitvoering", "Review", "Voltooid"}
}

// Color is a presentational tag from a fixed palette
type Color string

// Palette colors
const (
	ColorDefault Color = "Default"
	ColorGreen   Color = "Groen"
	ColorBlue    Color = "Blauw"
	ColorPurple  Color = "Paars"
	ColorYellow  Color = "Geel"
	ColorRed     Color = "Rood"
)

// Palette lists every color in display order
var Palette = []Color{ColorDefault, ColorGreen, ColorBlue, ColorPurple, ColorYellow, ColorRed}

// paletteHex maps palette colors to the hex used by the terminal renderers
var paletteHex = map[Color]string{
	ColorDefault: "#374151",
	ColorGreen:   "#16A34A",
	ColorBlue:    "#2563EB",
	ColorPurple:  "#9333EA",
	ColorYellow:  "#CA8A04",
	ColorRed:     "#DC2626",
}

// Valid reports whether c belongs to the palette
func (c Color) Valid() bool {
	_, ok := paletteHex[c]
	return ok
}

// Hex returns the display color, falling back to the default color
func (c Color) Hex() string {
	if hex, ok := paletteHex[c]; ok {
		return hex
	}
	return paletteHex[ColorDefault]
}

// NormalizeColor maps unknown or empty colors to ColorDefault
func NormalizeColor(c Color) Color {
	if c.Valid() {
		return c
	}
	return ColorDefault
}
