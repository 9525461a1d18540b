package teco

import "sync/atomic"

// Interp is the core command interpreter: it owns every piece of mutable
// control state and drives the scan-dispatch-execute loop. It never touches
// a terminal, file, or text buffer directly; all such effects go through
// the narrow collaborator interfaces in collab.go.
type Interp struct {
	cmdbuf     *CmdBuf
	exprStack  *ExprStack
	loopStack  *loopStack
	ifStack    *ifStack
	qregs      *qregBank
	pushdown   *qregPushdown
	macroStack *macroStack

	radix Radix
	trace bool

	buf   EditBuffer
	term  Terminal
	files FileStore

	lastErr  error
	lastText string

	ctrlC atomic.Bool // sampled cooperative-cancellation flag
}

// Option configures an Interp at construction time, following the
// teacher's option-pattern constructors.
type Option func(*Interp)

// WithEditBuffer supplies the text buffer collaborator.
func WithEditBuffer(b EditBuffer) Option { return func(ip *Interp) { ip.buf = b } }

// WithTerminal supplies the console collaborator.
func WithTerminal(t Terminal) Option { return func(ip *Interp) { ip.term = t } }

// WithFileStore supplies the Q-register save-file collaborator.
func WithFileStore(f FileStore) Option { return func(ip *Interp) { ip.files = f } }

// WithRadix sets the initial numeric input/output radix (default Decimal).
func WithRadix(r Radix) Option { return func(ip *Interp) { ip.radix = r } }

// NewInterp constructs an Interp ready to execute command strings.
func NewInterp(opts ...Option) *Interp {
	ip := &Interp{
		exprStack:  NewExprStack(),
		loopStack:  newLoopStack(),
		ifStack:    newIfStack(),
		qregs:      newQRegBank(),
		pushdown:   newQRegPushdown(),
		macroStack: newMacroStack(),
		radix:      Decimal,
	}
	for _, o := range opts {
		o(ip)
	}
	return ip
}

// Execute runs cmdline as a single top-level command string in a fresh
// CmdBuf, catching any *Error at the trap boundary. Reaching the end of
// cmdline inside an open loop raises E_UTL, and inside an open conditional
// E_UTQ. It is the primary entry point used by a REPL-style front end: one
// call per line read from the terminal.
func (ip *Interp) Execute(cmdline string) error {
	ip.cmdbuf = NewCmdBuf(cmdline)
	savedPushdown := append([]qregPushEntry(nil), ip.pushdown.entries...)
	for {
		cmd, err := ip.scanCommand()
		if err == nil && cmd == nil {
			switch {
			case ip.loopStack.depth() > 0:
				err = throw(ErrUTL)
			case ip.ifStack.depth() > 0:
				err = throw(ErrUTQ)
			default:
				return nil
			}
		}
		if err != nil {
			ip.lastErr = err
			ip.lastText = cmdline
			ip.unwind(savedPushdown)
			return err
		}
		if ip.ctrlC.CompareAndSwap(true, false) {
			ip.unwind(savedPushdown)
			return throw(ErrXAB)
		}
	}
}

// unwind rolls control state back after an error, as the reference
// implementation's top-level setjmp/longjmp catch does: the expression,
// loop, conditional and macro stacks are emptied, local Q-registers are
// discarded, and the Q-register pushdown list is put back to pushdown, its
// contents when the failing top-level command string began. Q-register
// contents and the edit buffer are left untouched.
func (ip *Interp) unwind(pushdown []qregPushEntry) {
	ip.exprStack.Reset()
	ip.loopStack.reset()
	ip.ifStack.reset()
	ip.pushdown.entries = append(ip.pushdown.entries[:0], pushdown...)
	ip.macroStack.reset()
	ip.qregs.resetLocals()
}

// LastError returns the most recently thrown error, for "?" to report.
func (ip *Interp) LastError() error { return ip.lastErr }

// RequestStop is called from a signal handler (SIGINT/CTRL-C) to request
// that the interpreter abort at the next safe point. It never touches
// interpreter state directly, only the sampled flag.
func (ip *Interp) RequestStop() { ip.ctrlC.Store(true) }

// scanCommand scans exactly one top-level command: an optional expression
// followed by a single action character and its modifiers. Expression
// tokens (digits, operators, parens, comma, operand-producing commands)
// are evaluated immediately as they are scanned; an action command's
// handler runs only once every modifier, Q-register name, and text
// argument it accepts has been consumed. The reference implementation
// scans an expression substring and re-parses it in a second pass; that
// split collapses here into a single generic loop, since Go's error
// returns make validation-before-mutation a property of each handler's
// own control flow rather than a distinct replay pass (see DESIGN.md).
func (ip *Interp) scanCommand() (*Command, error) {
	cmd := &Command{delim: ESC}
	for {
		if ip.cmdbuf.AtEnd() {
			if cmd.state == stateNull {
				return nil, nil
			}
			return nil, throw(ErrUTC)
		}
		c, _ := ip.cmdbuf.Next()
		if isDigit(c) {
			if err := ip.scanNumber(cmd, c); err != nil {
				return nil, err
			}
			cmd.state = stateExpr
			continue
		}
		entry, err := ip.resolveEntry(cmd, c)
		if err != nil {
			return nil, err
		}
		switch entry.kind {
		case kindSkip:
			continue
		case kindBad:
			return nil, throwArg(ErrILL, string(c))
		case kindMod:
			if err := entry.fn(ip, cmd); err != nil {
				return nil, err
			}
			continue
		case kindExpr:
			if err := entry.fn(ip, cmd); err != nil {
				return nil, err
			}
			cmd.state = stateExpr
			continue
		case kindAction:
			cmd.opts = entry.opts
			if err := ip.checkMods(cmd); err != nil {
				return nil, err
			}
			if err := entry.fn(ip, cmd); err != nil {
				return nil, err
			}
			cmd.state = stateDone
			return cmd, nil
		}
	}
}

// resolveEntry looks up the dispatch entry for c, composing "E", "F", and
// "^"-prefixed commands from the secondary tables. cmd.c1/c2 are set to
// record what was actually matched, for diagnostics.
func (ip *Interp) resolveEntry(cmd *Command, c byte) (*cmdEntry, error) {
	uc := upper(c)
	switch uc {
	case 'E':
		c2, ok := ip.cmdbuf.Next()
		if !ok {
			return nil, throw(ErrUTC)
		}
		entry, ok := eTable[upper(c2)]
		if !ok {
			return nil, throwArg(ErrIEC, string(c2))
		}
		cmd.c1, cmd.c2 = 'E', upper(c2)
		return entry, nil
	case 'F':
		c2, ok := ip.cmdbuf.Next()
		if !ok {
			return nil, throw(ErrUTC)
		}
		entry, ok := fTable[upper(c2)]
		if !ok {
			return nil, throwArg(ErrIFC, string(c2))
		}
		cmd.c1, cmd.c2 = 'F', upper(c2)
		return entry, nil
	case '^':
		c2, ok := ip.cmdbuf.Next()
		if !ok {
			return nil, throw(ErrUTC)
		}
		if c2 == '_' {
			cmd.c1 = '^'
			cmd.c2 = '_'
			return caretUnderscoreEntry, nil
		}
		ctrl := composeCtrl(c2)
		if ctrl == 0 {
			return nil, throwArg(ErrIUC, string(c2))
		}
		entry := primaryTable[ctrl]
		if entry == nil {
			return nil, throwArg(ErrIUC, string(c2))
		}
		cmd.c1 = ctrl
		return entry, nil
	default:
		if uc >= 128 {
			return nil, throwArg(ErrCHR, string(c))
		}
		entry := primaryTable[uc]
		if entry == nil {
			return nil, throwArg(ErrILL, string(c))
		}
		cmd.c1 = uc
		return entry, nil
	}
}

// composeCtrl maps the character following "^" to its control code (e.g.
// "^A" -> 0x01, "^[" -> ESC), or 0 if it does not compose to a code
// between NUL and SPACE.
func composeCtrl(c byte) byte {
	uc := upper(c)
	if uc < 'A' || uc > '_' {
		return 0
	}
	return uc - '@'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// scanNumber consumes a maximal run of digits valid in the current radix
// starting with the already-consumed first byte, and pushes the resulting
// operand. A digit not valid in the current radix (e.g. '9' while in
// octal) ends the run and is pushed back onto the buffer, left for the
// next scan iteration to re-interpret (matching the reference
// implementation's exec_digit "unget" behavior).
func (ip *Interp) scanNumber(cmd *Command, first byte) error {
	digits := []byte{first}
	for {
		c, ok := ip.cmdbuf.Peek()
		if !ok || !isDigit(c) {
			break
		}
		if int(c-'0') >= int(ip.radix) {
			break
		}
		ip.cmdbuf.Next()
		digits = append(digits, c)
	}
	var v Value
	for _, d := range digits {
		v = v*Value(ip.radix) + Value(d-'0')
	}
	ip.exprStack.PushOperand(v)
	return nil
}

// checkMods validates the modifiers scanned so far against the action
// command's declared cmdOpts, before its handler runs.
func (ip *Interp) checkMods(cmd *Command) error {
	if cmd.dcolon && !cmd.opts.has(optDColon) {
		return throwArg(ErrARG, "::")
	}
	if cmd.colon && !cmd.dcolon && !cmd.opts.has(optColon) {
		return throwArg(ErrARG, ":")
	}
	if cmd.atsign && !cmd.opts.has(optAtsign) {
		return throwArg(ErrARG, "@")
	}
	return nil
}

// takeN resolves the command's n argument by reducing whatever expression
// has accumulated on the stack. hasN reports whether an operand was
// actually present; optReqN in cmd.opts turns its absence into E_NAC's
// command-specific counterpart, left to the caller to throw with the
// right code since the exact error varies by command (NAS, NAQ, NAU, ...).
// A malformed expression (unmatched parens, division by zero, ...) is
// reported through err rather than silently treated as "no n given": the
// expression stack is left exactly as ReduceAll left it, so the error
// reflects the state up to the failing operator.
func (ip *Interp) takeN(cmd *Command, def Value) (Value, bool, error) {
	if err := ip.exprStack.ReduceAll(); err != nil {
		return def, false, err
	}
	v, ok := ip.exprStack.PopOperand()
	if !ok {
		return def, false, nil
	}
	cmd.nSet, cmd.nArg = true, v
	return v, true, nil
}

// takeM returns the command's m argument, set earlier by a "," handler.
func (ip *Interp) takeM(cmd *Command) (Value, bool) {
	if cmd.mSet {
		return cmd.mArg, true
	}
	return 0, false
}

// scanQRegName consumes the Q-register name following a command whose
// opts include optQReg: an optional "." local-register prefix, then
// exactly one alphanumeric register character.
func (ip *Interp) scanQRegName(cmd *Command) (name byte, local bool, err error) {
	c, ok := ip.cmdbuf.Next()
	if !ok {
		return 0, false, throw(ErrUTC)
	}
	if c == '.' {
		local = true
		c, ok = ip.cmdbuf.Next()
		if !ok {
			return 0, false, throw(ErrUTC)
		}
	}
	if !isValidQName(c) {
		return 0, false, throwArg(ErrIQN, string(c))
	}
	name = normalizeQName(c)
	cmd.qreg, cmd.qlocal, cmd.qSet = name, local, true
	return name, local, nil
}

// scanDelimitedTextArg consumes one text argument terminated by delim
// (used for the "@" alternate-delimiter form).
func (ip *Interp) scanDelimitedTextArg(delim byte) (string, error) {
	start := ip.cmdbuf.Pos()
	for {
		c, ok := ip.cmdbuf.Peek()
		if !ok {
			return "", throw(ErrUTC)
		}
		if c == delim {
			s := ip.cmdbuf.Slice(start, ip.cmdbuf.Pos())
			ip.cmdbuf.Next()
			return s, nil
		}
		ip.cmdbuf.Next()
	}
}

// textArgDelim resolves the terminator for a command's text argument(s):
// the next raw byte if "@" was given, otherwise ESC.
func (ip *Interp) textArgDelim(cmd *Command) (byte, error) {
	if !cmd.atsign {
		return ESC, nil
	}
	d, ok := ip.cmdbuf.Next()
	if !ok {
		return 0, throw(ErrUTC)
	}
	return d, nil
}
