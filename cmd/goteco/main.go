// Command goteco is a terminal front end for the teco interpreter: it
// wires together the console, file-backed edit buffer, and Q-register
// save-file store, then drives a read-eval loop, following the teacher's
// cmd/retro/main.go flag/wiring idiom.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pkg/errors"
	"github.com/tecoed/goteco/buffer"
	"github.com/tecoed/goteco/qfile"
	"github.com/tecoed/goteco/teco"
	"github.com/tecoed/goteco/term"
)

// radixValue is a flag.Value accepting only the radices the interpreter
// actually supports, mirroring the teacher's cellSizeBits (cmd/retro/main.go).
type radixValue teco.Radix

func (r *radixValue) String() string { return strconv.Itoa(int(*r)) }
func (r *radixValue) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.Wrap(err, "integer conversion failed")
	}
	switch n {
	case 8, 10, 16:
		*r = radixValue(n)
		return nil
	default:
		return errors.Errorf("radix %d not supported", n)
	}
}
func (r *radixValue) Get() interface{} { return teco.Radix(*r) }

// fileList collects repeated "-with" flags, mirroring the teacher's
// fileList (cmd/retro/main.go): each named file's contents are executed in
// full as a startup command string, in command-line order.
type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }
func (f *fileList) Get() interface{}   { return *f }

var (
	noRawIO bool
	debug   bool
)

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	os.Exit(1)
}

func main() {
	var err error

	fileName := flag.String("file", "", "edit buffer `filename` (scratch buffer if empty)")
	qdir := flag.String("qdir", ".goteco-qregs", "`directory` used for Q-register save files")
	radix := radixValue(teco.Decimal)
	flag.Var(&radix, "radix", "initial numeric radix (8, 10, or 16)")
	flag.BoolVar(&noRawIO, "noraw", false, "disable raw terminal IO")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	exec := flag.String("exec", "", "execute a single `command` string and exit")
	var withFiles fileList
	flag.Var(&withFiles, "with", "execute the contents of `filename` as a command string at startup (repeatable)")

	flag.Parse()

	defer func() { atExit(err) }()

	var buf *buffer.Buffer
	if *fileName != "" {
		buf, err = buffer.Open(*fileName)
	} else {
		buf = buffer.New()
	}
	if err != nil {
		return
	}
	defer buf.Close()

	store, err := qfile.NewStore(*qdir)
	if err != nil {
		return
	}

	console := term.NewConsole(true, !noRawIO)
	defer console.Close()
	interp := teco.NewInterp(
		teco.WithEditBuffer(buf),
		teco.WithTerminal(console),
		teco.WithFileStore(store),
		teco.WithRadix(teco.Radix(radix)),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)
	go func() {
		for range sigCh {
			interp.RequestStop()
		}
	}()

	for _, name := range withFiles {
		var data []byte
		data, err = os.ReadFile(name)
		if err != nil {
			return
		}
		if err = interp.Execute(string(data)); err != nil {
			return
		}
	}

	if *exec != "" {
		err = interp.Execute(*exec)
		if err == nil {
			err = buf.SavePage()
		}
		return
	}

	for {
		var line string
		line, err = console.ReadCommand()
		if err != nil {
			if err == io.EOF {
				err = buf.SavePage()
			}
			return
		}
		if execErr := interp.Execute(line); execErr != nil {
			if tecoErr, ok := teco.AsError(execErr); ok {
				fmt.Fprintf(os.Stderr, "%s\n", tecoErr.Error())
				continue
			}
			err = execErr
			return
		}
		if outErr := console.OutputError(); outErr != nil {
			err = outErr
			return
		}
	}
}
