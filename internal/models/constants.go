package models

// ============================================================================
// ORDER KEY CONSTANTS
// ============================================================================

// CrossColumnOffset is added to "now" when a snippet has to land on top of a column
// without renumbering its neighbours (cross-column drops and new snippets).
const CrossColumnOffset int64 = 10000

// ============================================================================
// PERSISTENCE CONSTANTS
// ============================================================================

// Record keys of the local store
const (
	SnippetsRecordKey = "snippet_manager_snippets"
	SettingsRecordKey = "snippet_manager_settings"
)

// ============================================================================
// INPUT CONSTANTS
// ============================================================================

// ClipboardTitleLength is how many characters of pasted code become the title
const ClipboardTitleLength = 12

// MaxTitleLength bounds snippet and column titles
const MaxTitleLength = 255
