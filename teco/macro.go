package teco

// macroFrame captures the caller's CmdBuf and control-flow depth at the
// point of an "Mq" invocation, so that returning from the macro (reaching
// the end of its text, or being unwound by the error trap) restores
// exactly that state.
type macroFrame struct {
	caller    *CmdBuf
	loopDepth int
	ifDepth   int
	colon     bool
}

// macroStack is the bounded call stack of active "Mq" invocations.
type macroStack struct {
	frames []macroFrame
}

func newMacroStack() *macroStack {
	return &macroStack{frames: make([]macroFrame, 0, MaxMacroNest)}
}

func (s *macroStack) depth() int { return len(s.frames) }

func (s *macroStack) push(f macroFrame) error {
	if len(s.frames) >= MaxMacroNest {
		return throw(ErrMMX)
	}
	s.frames = append(s.frames, f)
	return nil
}

func (s *macroStack) pop() (macroFrame, bool) {
	if len(s.frames) == 0 {
		return macroFrame{}, false
	}
	n := len(s.frames) - 1
	f := s.frames[n]
	s.frames = s.frames[:n]
	return f, true
}

func (s *macroStack) reset() { s.frames = s.frames[:0] }

// execM implements "Mq": invoke the text of Q-register q as a macro.
// Control returns to the caller either when the macro's CmdBuf is
// exhausted or when it executes its own top-level error/return; a bare
// return at end-of-text always reports SUCCESS, while ":Mq" propagates the
// macro's last command outcome as its own.
func execM(ip *Interp, cmd *Command) error {
	name, local, err := ip.scanQRegName(cmd)
	if err != nil {
		return err
	}
	qv := ip.qregs.get(name, local)
	if err := ip.macroStack.push(macroFrame{
		caller:    ip.cmdbuf,
		loopDepth: ip.loopStack.depth(),
		ifDepth:   ip.ifStack.depth(),
		colon:     cmd.colon,
	}); err != nil {
		return err
	}
	ip.cmdbuf = NewCmdBuf(qv.text)
	callerLocals := ip.qregs.local
	ip.qregs.resetLocals()
	result, runErr := ip.runMacroBody()
	frame, _ := ip.macroStack.pop()
	ip.cmdbuf = frame.caller
	ip.qregs.local = callerLocals
	if runErr != nil {
		return runErr
	}
	if frame.colon {
		ip.exprStack.PushOperand(result)
	}
	return nil
}

// runMacroBody drives the current (just-pushed) CmdBuf to completion,
// returning SUCCESS unless a command inside the macro leaves a different
// value as its trailing condition (used only to feed ":Mq"'s result).
func (ip *Interp) runMacroBody() (Value, error) {
	last := SUCCESS
	for {
		cmd, err := ip.scanCommand()
		if err != nil {
			return 0, err
		}
		if cmd == nil {
			return last, nil
		}
		if v, ok := ip.exprStack.TopOperand(); ok {
			last = v
		}
	}
}
