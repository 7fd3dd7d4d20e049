package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Snippets
	AddSnippet    string `yaml:"add_snippet"`
	EditSnippet   string `yaml:"edit_snippet"`
	DeleteSnippet string `yaml:"delete_snippet"`
	PasteSnippet  string `yaml:"paste_snippet"`
	CopySnippet   string `yaml:"copy_snippet"`
	GrabSnippet   string `yaml:"grab_snippet"`
	MoveToTop     string `yaml:"move_to_top"`
	ToggleCode    string `yaml:"toggle_code"`

	// Board
	ToggleEditMode string `yaml:"toggle_edit_mode"`
	RenameColumn   string `yaml:"rename_column"`
	Search         string `yaml:"search"`
	Resync         string `yaml:"resync"`
	Login          string `yaml:"login"`
	ToggleMode     string `yaml:"toggle_mode"`

	// Navigation
	PrevColumn  string `yaml:"prev_column"`
	NextColumn  string `yaml:"next_column"`
	PrevSnippet string `yaml:"prev_snippet"`
	NextSnippet string `yaml:"next_snippet"`

	// Other
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		AddSnippet:    "a",
		EditSnippet:   "e",
		DeleteSnippet: "d",
		PasteSnippet:  "p",
		CopySnippet:   "y",
		GrabSnippet:   "space",
		MoveToTop:     "t",
		ToggleCode:    "c",

		ToggleEditMode: "E",
		RenameColumn:   "R",
		Search:         "/",
		Resync:         "r",
		Login:          "L",
		ToggleMode:     "M",

		PrevColumn:  "h",
		NextColumn:  "l",
		PrevSnippet: "k",
		NextSnippet: "j",

		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	d := DefaultKeyMappings()

	pairs := []struct {
		field    *string
		fallback string
	}{
		{&k.AddSnippet, d.AddSnippet},
		{&k.EditSnippet, d.EditSnippet},
		{&k.DeleteSnippet, d.DeleteSnippet},
		{&k.PasteSnippet, d.PasteSnippet},
		{&k.CopySnippet, d.CopySnippet},
		{&k.GrabSnippet, d.GrabSnippet},
		{&k.MoveToTop, d.MoveToTop},
		{&k.ToggleCode, d.ToggleCode},
		{&k.ToggleEditMode, d.ToggleEditMode},
		{&k.RenameColumn, d.RenameColumn},
		{&k.Search, d.Search},
		{&k.Resync, d.Resync},
		{&k.Login, d.Login},
		{&k.ToggleMode, d.ToggleMode},
		{&k.PrevColumn, d.PrevColumn},
		{&k.NextColumn, d.NextColumn},
		{&k.PrevSnippet, d.PrevSnippet},
		{&k.NextSnippet, d.NextSnippet},
		{&k.ShowHelp, d.ShowHelp},
		{&k.Quit, d.Quit},
	}
	for _, p := range pairs {
		if *p.field == "" {
			*p.field = p.fallback
		}
	}
}
