package teco

// loopFrame is one nested iteration's state. start is the CmdBuf position
// of the byte immediately after the opening "<"; unbounded marks a
// "<...>" loop whose n argument was omitted, which runs until ";" or an
// enclosing "F>" quits it rather than counting down. ifDepth is the
// conditional nesting depth at loop entry, used to validate that "<" and
// ">" are not straddled by an unbalanced """/"'" pair.
type loopFrame struct {
	start     int
	count     Value
	unbounded bool
	ifDepth   int
	qreg      byte // Q-register driving "F<"/"F>" (0 if none)
	qlocal    bool
}

// loopStack is the LIFO of active loop frames. Its depth is not bounded;
// the reference implementation has no separate loop-depth limit.
type loopStack struct {
	frames []loopFrame
}

func newLoopStack() *loopStack {
	return &loopStack{frames: make([]loopFrame, 0, 8)}
}

func (s *loopStack) push(f loopFrame) { s.frames = append(s.frames, f) }

func (s *loopStack) top() (*loopFrame, bool) {
	if len(s.frames) == 0 {
		return nil, false
	}
	return &s.frames[len(s.frames)-1], true
}

func (s *loopStack) pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

func (s *loopStack) depth() int { return len(s.frames) }

func (s *loopStack) reset() { s.frames = s.frames[:0] }

// execLessThan implements "<": it opens a new iteration. With n omitted,
// the loop runs unbounded (terminated only by ";" or an enclosing "F>"
// quit); with n present, n <= 0 skips the loop body entirely by scanning
// forward to the matching ">", since a zero- or negative-count loop never
// executes its body.
func execLessThan(ip *Interp, cmd *Command) error {
	n, hasN, err := ip.takeN(cmd, 0)
	if err != nil {
		return err
	}
	if hasN && n <= 0 {
		return ip.skipLoopBody()
	}
	f := loopFrame{
		start:     ip.cmdbuf.Pos(),
		unbounded: !hasN,
		ifDepth:   ip.ifStack.depth(),
	}
	if hasN {
		f.count = n
	}
	ip.loopStack.push(f)
	return nil
}

// execGreaterThan implements ">": the loop's closing delimiter. Decrements
// the remaining count (if bounded) and either rewinds to the frame's start
// or pops the frame and falls through.
func execGreaterThan(ip *Interp, cmd *Command) error {
	f, ok := ip.loopStack.top()
	if !ok {
		return throw(ErrMLA)
	}
	if ip.ifStack.depth() != f.ifDepth {
		return throw(ErrUTQ)
	}
	if f.unbounded {
		ip.cmdbuf.SetPos(f.start)
		return nil
	}
	f.count--
	if f.count > 0 {
		ip.cmdbuf.SetPos(f.start)
		return nil
	}
	ip.loopStack.pop()
	return nil
}

// execSemicolon implements ";": a conditional loop exit. The loop exits
// when n is non-negative (zero or positive); it continues when n is
// negative. This matches the common ":S...;" idiom, where a colon-form
// search pushes SUCCESS (-1) on a match and FAILURE (0) otherwise: the
// loop keeps searching while matches are found and exits once one fails.
// With the colon modifier (":;") the exit sense is reversed.
func execSemicolon(ip *Interp, cmd *Command) error {
	if _, ok := ip.loopStack.top(); !ok {
		return throw(ErrSNI)
	}
	n, hasN, err := ip.takeN(cmd, 0)
	if err != nil {
		return err
	}
	if !hasN {
		return throw(ErrNAS)
	}
	exit := n >= 0
	if cmd.colon {
		exit = !exit
	}
	if !exit {
		return nil
	}
	return ip.skipToLoopEnd()
}

// execFLess implements "F<": restart the current iteration (or, with a
// Q-register argument, drive the loop from that register's integer part)
// without waiting for ">"'s natural rewind. Scope kept narrow: only the
// unconditional-restart form is implemented.
func execFLess(ip *Interp, cmd *Command) error {
	f, ok := ip.loopStack.top()
	if !ok {
		return throw(ErrMLA)
	}
	ip.cmdbuf.SetPos(f.start)
	return nil
}

// execFGreater implements "F>": unconditionally terminates the innermost
// loop, equivalent to forcing its count to zero and falling through past
// the matching ">".
func execFGreater(ip *Interp, cmd *Command) error {
	if _, ok := ip.loopStack.top(); !ok {
		return throw(ErrMLA)
	}
	return ip.skipToLoopEnd()
}

// skipLoopBody scans forward from the current position (just past the
// opening "<" that was just rejected by a zero/negative count) to its
// matching ">", without executing anything in between, then leaves the
// cursor just past it. Nested "<"/">" pairs and conditional delimiters are
// tracked so an inner loop's own ">" is not mistaken for the outer one's.
func (ip *Interp) skipLoopBody() error {
	depth := 1
	for depth > 0 {
		c, ok := ip.cmdbuf.Next()
		if !ok {
			return throw(ErrUTL)
		}
		switch c {
		case '<':
			depth++
		case '>':
			depth--
		case '"':
			if err := ip.skipConditionalStructural(); err != nil {
				return err
			}
		case '\'':
			// stray "'" inside a skipped loop body is structurally fine;
			// conditionals are fully consumed by skipConditionalStructural.
		default:
			if err := ip.skipTextArgIfAny(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// skipToLoopEnd scans forward from the current position to the innermost
// active loop's matching ">" and pops that frame, used by ";" and "F>" to
// leave a loop before its natural rewind point.
func (ip *Interp) skipToLoopEnd() error {
	depth := 1
	for depth > 0 {
		c, ok := ip.cmdbuf.Next()
		if !ok {
			return throw(ErrUTL)
		}
		switch c {
		case '<':
			depth++
		case '>':
			depth--
		case '"':
			if err := ip.skipConditionalStructural(); err != nil {
				return err
			}
		default:
			if err := ip.skipTextArgIfAny(c); err != nil {
				return err
			}
		}
	}
	ip.loopStack.pop()
	return nil
}
