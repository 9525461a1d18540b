package term

import "github.com/pkg/errors"

// setRawIO is not implemented on Windows; the console falls back to
// cooked mode with echo handled by the shell.
func setRawIO() (func(), error) {
	return nil, errors.New("raw IO not supported on windows")
}
