package plan

// Config holds configuration for a generation pass.
type Config struct {
	// ReturnDefaultIfNotMocked is the initial value of every plan's
	// default-fallback flag.
	ReturnDefaultIfNotMocked bool
	// FieldPrefix prefixes slot names to form backing field names.
	FieldPrefix string
	// NamePostfix is the suffix requested mock names are expected to carry.
	// Names without it raise a warning. Empty disables the check.
	NamePostfix string
	// StrictMode fails the pass when any error diagnostic was collected.
	StrictMode bool
	// MaxSuggestions limits near-miss names attached to unresolved targets.
	MaxSuggestions int
}

// DefaultConfig returns the default generation configuration.
func DefaultConfig() Config {
	return Config{
		ReturnDefaultIfNotMocked: false,
		FieldPrefix:              "Mock",
		NamePostfix:              "Mock",
		StrictMode:               false,
		MaxSuggestions:           3,
	}
}
