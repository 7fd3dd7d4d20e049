package config

// Theme holds the colors used by the TUI and the human CLI output.
// Values are hex strings understood by lipgloss.
type Theme struct {
	Preset string `yaml:"preset"`

	Accent         string `yaml:"accent"`
	ColumnBorder   string `yaml:"column_border"`
	SnippetBorder  string `yaml:"snippet_border"`
	SelectedBorder string `yaml:"selected_border"`
	GrabbedBorder  string `yaml:"grabbed_border"`
	Title          string `yaml:"title"`
	Subtle         string `yaml:"subtle"`
	Normal         string `yaml:"normal"`

	InfoFg    string `yaml:"info_fg"`
	WarningFg string `yaml:"warning_fg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`
}

// Preset names
const (
	PresetDefault    = "default"
	PresetMonochrome = "monochrome"
)

// ThemePreset returns a named preset. Unknown names fall back to the default.
func ThemePreset(name string) Theme {
	if name == PresetMonochrome {
		return Theme{
			Preset:         PresetMonochrome,
			Accent:         "#FFFFFF",
			ColumnBorder:   "#808080",
			SnippetBorder:  "#585858",
			SelectedBorder: "#FFFFFF",
			GrabbedBorder:  "#D0D0D0",
			Title:          "#FFFFFF",
			Subtle:         "#808080",
			Normal:         "#D0D0D0",
			InfoFg:         "#FFFFFF",
			WarningFg:      "#D0D0D0",
			ErrorFg:        "#FFFFFF",
			ErrorBg:        "#3A3A3A",
		}
	}
	return Theme{
		Preset:         PresetDefault,
		Accent:         "#874BFD",
		ColumnBorder:   "#5F87D7",
		SnippetBorder:  "#585858",
		SelectedBorder: "#D75FD7",
		GrabbedBorder:  "#FFD700",
		Title:          "#D75FD7",
		Subtle:         "#585858",
		Normal:         "#D0D0D0",
		InfoFg:         "#00AFFF",
		WarningFg:      "#FFD700",
		ErrorFg:        "#FF0000",
		ErrorBg:        "#5F0000",
	}
}

// applyDefaults fills empty colors from the selected preset
func (t *Theme) applyDefaults() {
	p := ThemePreset(t.Preset)
	if t.Preset == "" {
		t.Preset = p.Preset
	}
	for _, f := range []struct {
		field    *string
		fallback string
	}{
		{&t.Accent, p.Accent},
		{&t.ColumnBorder, p.ColumnBorder},
		{&t.SnippetBorder, p.SnippetBorder},
		{&t.SelectedBorder, p.SelectedBorder},
		{&t.GrabbedBorder, p.GrabbedBorder},
		{&t.Title, p.Title},
		{&t.Subtle, p.Subtle},
		{&t.Normal, p.Normal},
		{&t.InfoFg, p.InfoFg},
		{&t.WarningFg, p.WarningFg},
		{&t.ErrorFg, p.ErrorFg},
		{&t.ErrorBg, p.ErrorBg},
	} {
		if *f.field == "" {
			*f.field = f.fallback
		}
	}
}
