package cli

// Error codes for CLI responses.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeNotFound      = "E005" // Path not found
	ErrCodeWriteFailed   = "E007" // File or database write error
	ErrCodeConfig        = "E101" // Invalid --metrics config
	ErrCodeFixture       = "E201" // Fixture could not be loaded or applied
	ErrCodeSelector      = "E202" // Invalid query selector
	ErrCodeStore         = "E203" // Snapshot store error
	ErrCodeGoldenMissing = "E301" // No golden file and --update not given
)

// fail reports an error through f and returns the ExitError the command
// should return.
func fail(f *OutputFormatter, exitCode int, code, message string, err error) error {
	if ferr := f.Error(code, message, err); ferr != nil {
		return ferr
	}
	return WrapExitError(exitCode, message, err)
}
