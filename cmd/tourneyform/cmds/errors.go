package cmds

import "fmt"

const (
	ExitFailed  = 1
	ExitUsage   = 2
	ExitAborted = 130
)

// ExitError carries an exit code along with an error so main can exit
// correctly.
type ExitError struct {
	Err  error
	Code int
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%d", e.Code)
	}

	return fmt.Sprintf("%d: %s", e.Code, e.Err.Error())
}

func (e ExitError) Unwrap() error {
	return e.Err
}

// ExitErrorWrap wraps err with an exit code.
func ExitErrorWrap(code int, err error) error {
	return ExitError{Code: code, Err: err}
}
