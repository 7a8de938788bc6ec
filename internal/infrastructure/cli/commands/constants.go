package commands

import "time"

// CLI-specific constants
const (
	// DefaultEditorCommand is the default editor command
	DefaultEditorCommand = "vi"
	// DefaultRequestTimeout bounds a whole ask/chat run including retries.
	DefaultRequestTimeout = 5 * time.Minute
	// TimestampFormat is used when listing cache entries.
	TimestampFormat = time.RFC3339
)

// Error messages
const (
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrHistoryStoreUnavailable  = "history store unavailable"
	ErrCacheStoreUnavailable    = "cache store unavailable"
	ErrExporterUnavailable      = "exporter unavailable"
	ErrKeyRequired              = "--key is required"
	ErrPromptRequired           = "a prompt is required (pass it as arguments or pipe it on stdin)"
	ErrFeatureDisabled          = "feature %q is disabled; enable it with `tinlera settings feature %s on`"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoHistoryRecorded        = "No history recorded yet."
	MsgNoMatches                = "No matching entries."
	MsgNoCachedSearches         = "No cached model searches."
	MsgNoModelsFound            = "No models found."
	MsgCancelled                = "Cancelled."
)
