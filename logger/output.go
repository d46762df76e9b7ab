package logger

// OutputCategory defines a category of CLI output that can be enabled/disabled.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // "✓ Generated gl.go"
	OutputErrors                           // Errors with hints
	OutputUserStatus                       // check: up to date / out of date

	// Level 1 (-v)
	OutputProgress      // Stage-by-stage progress
	OutputRegistryStats // Enum/command/group counts after selection

	// Level 2 (-vv)
	OutputTiming // Stage and total timing
	OutputConfig // Config values loaded/applied

	// Level 3 (-vvv)
	OutputGroupDetail // Dropped/duplicate group members
)

var categoryLevels = map[OutputCategory]int{
	OutputResults:       VerbosityUser,
	OutputErrors:        VerbosityUser,
	OutputUserStatus:    VerbosityUser,
	OutputProgress:      VerbosityInfo,
	OutputRegistryStats: VerbosityInfo,
	OutputTiming:        VerbosityDebug,
	OutputConfig:        VerbosityDebug,
	OutputGroupDetail:   VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}
