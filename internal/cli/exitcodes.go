package cli

// Exit codes for blocklocate.
const (
	// ExitSuccess indicates every file parsed, or Locate ran without error.
	ExitSuccess = 0

	// ExitSuspectFound indicates Locate found at least one suspect range.
	ExitSuspectFound = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates a malformed .blocklocate.yaml.
	ExitConfigError = 65

	// ExitIOError indicates a file couldn't be read.
	ExitIOError = 74

	// ExitInternalError indicates the engine itself errored (parser
	// unavailable, lexer overflow) rather than reporting a clean result.
	ExitInternalError = 70
)
