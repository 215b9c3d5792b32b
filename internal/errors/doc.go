// Package errors provides error handling conventions for the meshkit CLI.
//
// It re-exports the cockroachdb/errors constructors and wrappers so the rest
// of the module imports a single errors package, defines sentinel errors for
// common failure conditions, and provides [ExitError] for mapping failures
// to process exit codes.
//
// # Exit Codes
//
//   - ExitSuccess (0): command completed successfully
//   - ExitUser (1): invalid input, failed validation, cancelled action
//   - ExitSystem (2): I/O failure or the external exporter failed
//
// # ExitError
//
//	err := errors.NewUserError(errors.ErrNoSelection, "Select at least one object")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
