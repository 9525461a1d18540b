// Package term implements the teco.Terminal collaborator: a raw-mode
// console front end that reads one ESC-terminated command string at a
// time and echoes/prints through to the underlying tty.
package term

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/tecoed/goteco/internal/ngi"
	"github.com/tecoed/goteco/teco"
)

// Console is a teco.Terminal backed by the process's stdin/stdout.
// Of the immediate-mode characters it handles only CTRL/U (see
// ReadCommand).
type Console struct {
	in      *bufio.Reader
	out     *ngi.ErrWriter
	restore func()
	echo    bool
}

var _ teco.Terminal = (*Console)(nil)

// NewConsole puts stdin into raw mode (best-effort; failure to do so on an
// unsupported platform is not fatal, it just disables local echo control)
// and returns a Console. Call Close when done to restore the original
// terminal settings. When raw is false, stdin is left in its current
// (cooked) mode, for "-noraw" runs.
func NewConsole(echo, raw bool) *Console {
	var restore func()
	var err error
	if raw {
		restore, err = setRawIO()
	}
	if restore == nil || err != nil {
		restore = func() {}
	}
	return &Console{
		in:      bufio.NewReader(os.Stdin),
		out:     ngi.NewErrWriter(os.Stdout),
		restore: restore,
		echo:    echo,
	}
}

// OutputError returns the first error encountered writing to the console
// (e.g. a closed pipe on the other end of stdout), or nil if every write so
// far has succeeded. ErrWriter latches the first failure so repeated
// Printf/Echo calls after a broken pipe don't each attempt (and re-fail) a
// write of their own.
func (c *Console) OutputError() error { return c.out.Err }

// Close restores the terminal to its original (cooked) mode.
func (c *Console) Close() {
	if c.restore != nil {
		c.restore()
	}
}

// ReadRune reads a single rune from the console.
func (c *Console) ReadRune(wait bool) (rune, error) {
	r, _, err := c.in.ReadRune()
	return r, err
}

// Echo writes r back to the console if local echo is enabled.
func (c *Console) Echo(r rune) {
	if c.echo {
		fmt.Fprintf(c.out, "%c", r)
	}
}

// Printf writes formatted output to the console.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// ReadCommand reads one top-level command string, terminated by a lone
// ESC (0x1B). The trailing ESC is included so the interpreter's own
// delimiter bookkeeping sees the same bytes a macro body would.
// A CTRL/U typed at the very start of a fresh command is dropped here;
// every other character, "?" and "*" included, is passed on to the
// interpreter as part of the command string.
func (c *Console) ReadCommand() (string, error) {
	var buf []byte
	for {
		r, _, err := c.in.ReadRune()
		if err != nil {
			if len(buf) > 0 && err == io.EOF {
				return string(buf), nil
			}
			return "", err
		}
		c.Echo(r)
		if r == 0x15 && len(buf) == 0 { // CTRL/U: kill line, handled locally
			continue
		}
		buf = append(buf, byte(r))
		if r == '\x1b' {
			return string(buf), nil
		}
	}
}
