package main

// Exit codes returned by the paper CLI.
const (
	ExitSuccess     = 0 // Success, including empty result sets
	ExitError       = 1 // Usage error, missing command, runtime failure
	ExitConfigError = 2 // Config file missing, malformed or incomplete
	ExitAPIError    = 3 // Non-200 response or network failure
	ExitDataError   = 4 // Server returned a body that could not be decoded
)
