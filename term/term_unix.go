//+build !windows

package term

import (
	"syscall"

	"github.com/pkg/errors"
	"github.com/pkg/term/termios"
)

// setRawIO switches stdin to raw mode, grounded on the teacher's
// cmd/retro/term.go: disable canonical processing and local echo, read
// one byte at a time with no inter-character timeout, and return a
// closure that restores the original settings.
func setRawIO() (func(), error) {
	var tios syscall.Termios
	if err := termios.Tcgetattr(0, &tios); err != nil {
		return nil, errors.Wrap(err, "Tcgetattr failed")
	}
	raw := tios
	raw.Iflag &^= syscall.IGNBRK | syscall.ISTRIP | syscall.IXON | syscall.IXOFF
	raw.Iflag |= syscall.BRKINT | syscall.IGNPAR
	raw.Lflag &^= syscall.ICANON | syscall.IEXTEN | syscall.ECHO
	raw.Cc[syscall.VMIN] = 1
	raw.Cc[syscall.VTIME] = 0
	if err := termios.Tcsetattr(0, termios.TCSANOW, &raw); err != nil {
		termios.Tcsetattr(0, termios.TCSANOW, &tios)
		return nil, errors.Wrap(err, "Tcsetattr failed")
	}
	return func() {
		termios.Tcsetattr(0, termios.TCSANOW, &tios)
	}, nil
}
