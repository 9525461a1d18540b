package teco

// ifFrame tracks one nested conditional's state: whether its test
// succeeded (so "|" knows whether to skip to "'") and the loop depth at
// entry. loopDepth is only recorded; the check for a loop straddling an
// unbalanced conditional uses loopFrame.ifDepth (see execGreaterThan).
type ifFrame struct {
	taken     bool
	loopDepth int
}

type ifStack struct {
	frames []ifFrame
}

func newIfStack() *ifStack {
	return &ifStack{frames: make([]ifFrame, 0, 8)}
}

func (s *ifStack) push(f ifFrame) { s.frames = append(s.frames, f) }

func (s *ifStack) top() (*ifFrame, bool) {
	if len(s.frames) == 0 {
		return nil, false
	}
	return &s.frames[len(s.frames)-1], true
}

func (s *ifStack) pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

func (s *ifStack) depth() int { return len(s.frames) }

func (s *ifStack) reset() { s.frames = s.frames[:0] }

// evalCondition tests n against a condition letter for '"': A alphabetic,
// C symbol-constituent, D digit, E/F/U equal to zero, G/> greater than
// zero, L/< less than zero, N not equal to zero, S/T successful
// (non-zero), V lower-case, W upper-case. Any other letter raises E_IQN.
func evalCondition(letter byte, n Value) (bool, error) {
	switch letter {
	case 'A':
		return isAlpha(n), nil
	case 'C':
		return isSymbolConstituent(n), nil
	case 'D':
		return n >= '0' && n <= '9', nil
	case 'E', 'F', 'U':
		return n == 0, nil
	case 'G', '>':
		return n > 0, nil
	case 'L', '<':
		return n < 0, nil
	case 'N':
		return n != 0, nil
	case 'S', 'T':
		return n != 0, nil
	case 'V':
		return n >= 'a' && n <= 'z', nil
	case 'W':
		return n >= 'A' && n <= 'Z', nil
	default:
		return false, throwArg(ErrIQN, string(letter))
	}
}

func isAlpha(n Value) bool {
	return (n >= 'A' && n <= 'Z') || (n >= 'a' && n <= 'z')
}

func isSymbolConstituent(n Value) bool {
	return isAlpha(n) || (n >= '0' && n <= '9') || n == '.' || n == '$' || n == '_'
}

// execQuote implements '"': it takes its n argument (E_NAQ if there is
// none), reads the condition letter that follows the '"', and either falls
// through into the true branch or skips forward to the matching "|" or "'".
func execQuote(ip *Interp, cmd *Command) error {
	n, hasN, err := ip.takeN(cmd, 0)
	if err != nil {
		return err
	}
	if !hasN {
		return throw(ErrNAQ)
	}
	letter, ok := ip.cmdbuf.Next()
	if !ok {
		return throw(ErrUTC)
	}
	taken, err := evalCondition(upper(letter), n)
	if err != nil {
		return err
	}
	ip.ifStack.push(ifFrame{taken: taken, loopDepth: ip.loopStack.depth()})
	if taken {
		return nil
	}
	return ip.skipToElseOrEndif()
}

// execVBar implements '|': reached only when the true branch falls through
// to it, so it always skips forward to the matching "'".
func execVBar(ip *Interp, cmd *Command) error {
	f, ok := ip.ifStack.top()
	if !ok {
		return throw(ErrUTQ)
	}
	if !f.taken {
		return throw(ErrUTQ)
	}
	return ip.skipToEndif()
}

// execApostrophe implements "'": closes the innermost conditional.
func execApostrophe(ip *Interp, cmd *Command) error {
	if _, ok := ip.ifStack.top(); !ok {
		return throw(ErrUTQ)
	}
	ip.ifStack.pop()
	return nil
}

// skipToElseOrEndif scans forward from just after the failed condition
// letter to this conditional's matching "|" (stopping just past it, so
// the else branch runs next) or, if there is no "|", to the matching "'".
func (ip *Interp) skipToElseOrEndif() error {
	depth := 1
	for {
		c, ok := ip.cmdbuf.Next()
		if !ok {
			return throw(ErrUTQ)
		}
		switch c {
		case '"':
			depth++
		case '|':
			if depth == 1 {
				return nil
			}
		case '\'':
			depth--
			if depth == 0 {
				ip.ifStack.pop()
				return nil
			}
		case '<':
			if err := ip.skipLoopStructural(); err != nil {
				return err
			}
		default:
			if err := ip.skipTextArgIfAny(c); err != nil {
				return err
			}
		}
	}
}

// skipToEndif scans forward to this conditional's matching "'", used by
// "|" once the true branch has run.
func (ip *Interp) skipToEndif() error {
	depth := 1
	for depth > 0 {
		c, ok := ip.cmdbuf.Next()
		if !ok {
			return throw(ErrUTQ)
		}
		switch c {
		case '"':
			depth++
		case '\'':
			depth--
		case '<':
			if err := ip.skipLoopStructural(); err != nil {
				return err
			}
		default:
			if err := ip.skipTextArgIfAny(c); err != nil {
				return err
			}
		}
	}
	ip.ifStack.pop()
	return nil
}

// skipConditionalStructural consumes one whole '"'...'\'' structure
// (already past the opening '"'), without evaluating its condition,
// called while skipping an enclosing loop body or conditional branch.
func (ip *Interp) skipConditionalStructural() error {
	if _, ok := ip.cmdbuf.Next(); !ok { // the condition letter
		return throw(ErrUTC)
	}
	depth := 1
	for depth > 0 {
		c, ok := ip.cmdbuf.Next()
		if !ok {
			return throw(ErrUTQ)
		}
		switch c {
		case '"':
			depth++
			if _, ok := ip.cmdbuf.Next(); !ok { // nested condition letter
				return throw(ErrUTC)
			}
		case '\'':
			depth--
		case '<':
			if err := ip.skipLoopStructural(); err != nil {
				return err
			}
		default:
			if err := ip.skipTextArgIfAny(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// skipTextArgIfAny consumes a text argument following c, for the small set
// of text-bearing commands reachable while structurally skipping a loop
// body or conditional branch. The alternate "@" delimiter form is not
// tracked during structural skip (the delimiter is assumed to be ESC); see
// DESIGN.md for this known simplification.
func (ip *Interp) skipTextArgIfAny(c byte) error {
	switch upper(c) {
	case 'I', 'S', '_':
		return ip.skipToESC()
	case '^':
		c2, ok := ip.cmdbuf.Next()
		if !ok {
			return throw(ErrUTC)
		}
		if upper(c2) == 'A' {
			return ip.skipToESC()
		}
	}
	return nil
}

func (ip *Interp) skipToESC() error {
	for {
		c, ok := ip.cmdbuf.Next()
		if !ok {
			return throw(ErrUTC)
		}
		if c == ESC {
			return nil
		}
	}
}

// skipLoopStructural consumes one whole '<'...'>' structure (already past
// the opening '<'), used symmetrically by the conditional skip helpers.
func (ip *Interp) skipLoopStructural() error {
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
	return nil
}
