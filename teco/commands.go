package teco

import "strconv"

// --- modifiers ---------------------------------------------------------

func scanColon(ip *Interp, cmd *Command) error {
	if cmd.colon {
		cmd.dcolon = true
	}
	cmd.colon = true
	return nil
}

func scanAtsign(ip *Interp, cmd *Command) error {
	cmd.atsign = true
	return nil
}

// --- expression tokens ---------------------------------------------------

// wantsUnary reports whether the next +/- token should bind as unary:
// true unless the stack's topmost entry is a plain operand (i.e. a binary
// operator is expected to follow a completed operand).
func wantsUnary(s *ExprStack) bool {
	return !s.HasOperand()
}

func evalPlus(ip *Interp, cmd *Command) error {
	if wantsUnary(ip.exprStack) {
		return ip.exprStack.PushOperator(opPos)
	}
	return ip.exprStack.PushOperator(opAdd)
}

func evalMinus(ip *Interp, cmd *Command) error {
	if wantsUnary(ip.exprStack) {
		return ip.exprStack.PushOperator(opNeg)
	}
	return ip.exprStack.PushOperator(opSub)
}

func evalOperator(op operator) func(ip *Interp, cmd *Command) error {
	return func(ip *Interp, cmd *Command) error {
		return ip.exprStack.PushOperator(op)
	}
}

func evalLParen(ip *Interp, cmd *Command) error {
	ip.exprStack.PushLParen()
	return nil
}

func evalRParen(ip *Interp, cmd *Command) error {
	return ip.exprStack.ReduceParen()
}

// evalComma implements ",": it reduces whatever expression has
// accumulated so far to a single operand and stashes it as the command's
// m argument, so a fresh n expression can accumulate afterward.
func evalComma(ip *Interp, cmd *Command) error {
	if err := ip.exprStack.ReduceAll(); err != nil {
		return err
	}
	v, ok := ip.exprStack.PopOperand()
	if !ok {
		return throw(ErrNAC)
	}
	cmd.mSet, cmd.mArg = true, v
	return nil
}

// evalDot implements ".": pushes the current buffer position.
func evalDot(ip *Interp, cmd *Command) error {
	ip.exprStack.PushOperand(Value(ip.buf.Dot()))
	return nil
}

// evalZ implements "Z": pushes the buffer length.
func evalZ(ip *Interp, cmd *Command) error {
	ip.exprStack.PushOperand(Value(ip.buf.Len()))
	return nil
}

// evalCtrlY implements "^Y": pushes dot+1, the reference implementation's
// shorthand for "the next character's position" used as a search/compare
// bound.
func evalCtrlY(ip *Interp, cmd *Command) error {
	ip.exprStack.PushOperand(Value(ip.buf.Dot() + 1))
	return nil
}

// evalQ implements "Qq": pushes the integer value of Q-register q.
func evalQ(ip *Interp, cmd *Command) error {
	name, local, err := ip.scanQRegName(cmd)
	if err != nil {
		return err
	}
	ip.exprStack.PushOperand(ip.qregs.get(name, local).num)
	return nil
}

var caretUnderscoreEntry = &cmdEntry{kind: kindExpr, fn: func(ip *Interp, cmd *Command) error {
	return ip.exprStack.PushOperator(opNot)
}}

// --- loop/conditional commands are in loop.go and cond.go ---------------

// --- Q-register pushdown -------------------------------------------------

// execLBracket implements "[q": push q's current value onto the
// Q-register pushdown list.
func execLBracket(ip *Interp, cmd *Command) error {
	name, local, err := ip.scanQRegName(cmd)
	if err != nil {
		return err
	}
	return ip.pushdown.push(name, local, ip.qregs.get(name, local))
}

// execRBracket implements "]q" / ":]q": pop the pushdown list into q.
// With the colon form, an empty pushdown list yields FAILURE instead of
// E_CPQ.
func execRBracket(ip *Interp, cmd *Command) error {
	name, local, err := ip.scanQRegName(cmd)
	if err != nil {
		return err
	}
	entry, ok, err := ip.pushdown.pop(cmd.colon)
	if err != nil {
		return err
	}
	if !ok {
		ip.exprStack.PushOperand(FAILURE)
		return nil
	}
	*ip.qregs.slot(name, local) = entry.val
	if cmd.colon {
		ip.exprStack.PushOperand(SUCCESS)
	}
	return nil
}

// execU implements "nUq": set q's integer value to n.
func execU(ip *Interp, cmd *Command) error {
	n, hasN, err := ip.takeN(cmd, 0)
	if err != nil {
		return err
	}
	if !hasN {
		return throw(ErrNAU)
	}
	name, local, err := ip.scanQRegName(cmd)
	if err != nil {
		return err
	}
	ip.qregs.setNum(name, local, n)
	return nil
}

// execPercent implements "n%q": add n (default 1, so a bare "%q" is the
// common increment-by-one idiom) to q's integer value, leaving the
// updated value on the stack when ":"-qualified.
func execPercent(ip *Interp, cmd *Command) error {
	n, _, err := ip.takeN(cmd, 1)
	if err != nil {
		return err
	}
	name, local, err := ip.scanQRegName(cmd)
	if err != nil {
		return err
	}
	slot := ip.qregs.slot(name, local)
	slot.num += n
	if cmd.colon {
		ip.exprStack.PushOperand(slot.num)
	}
	return nil
}

// --- printing/diagnostics -------------------------------------------------

// execEquals implements "n=" / "n==" / "n:=": "=" prints decimal, "=="
// prints octal, ":=" prints the value without a trailing newline.
func execEquals(ip *Interp, cmd *Command) error {
	n, hasN, err := ip.takeN(cmd, 0)
	if err != nil {
		return err
	}
	if !hasN {
		return throw(ErrNAS)
	}
	base := 10
	if c, ok := ip.cmdbuf.Peek(); ok && c == '=' {
		ip.cmdbuf.Next()
		base = 8
	}
	s := strconv.FormatInt(int64(n), base)
	if cmd.colon && !cmd.dcolon {
		ip.term.Printf("%s", s)
		return nil
	}
	ip.term.Printf("%s\n", s)
	return nil
}

// execQuestion implements "?": report the last error caught at the trap
// boundary, if any.
func execQuestion(ip *Interp, cmd *Command) error {
	if ip.lastErr == nil {
		return nil
	}
	ip.term.Printf("%s\n%s\n", ip.lastText, ip.lastErr.Error())
	return nil
}

// execEscape implements a bare ESC: it discards any pending (unconsumed)
// expression rather than erroring, matching the reference
// implementation's treatment of a lone ESC as a harmless no-op.
func execEscape(ip *Interp, cmd *Command) error {
	ip.exprStack.Reset()
	return nil
}

// --- buffer-editing commands ----------------------------------------------

// execC implements "nC": advance dot by n (default 1) characters.
func execC(ip *Interp, cmd *Command) error {
	n, _, err := ip.takeN(cmd, 1)
	if err != nil {
		return err
	}
	err = ip.buf.SetDot(ip.buf.Dot() + int(n))
	return ip.reportBool(cmd, err)
}

// execR implements "nR": retreat dot by n (default 1) characters.
func execR(ip *Interp, cmd *Command) error {
	n, _, err := ip.takeN(cmd, 1)
	if err != nil {
		return err
	}
	err = ip.buf.SetDot(ip.buf.Dot() - int(n))
	return ip.reportBool(cmd, err)
}

// execD implements "nD" / "m,nD": delete characters forward from dot (n
// form) or the range [m, n) (comma form).
func execD(ip *Interp, cmd *Command) error {
	n, hasN, err := ip.takeN(cmd, 1)
	if err != nil {
		return err
	}
	if m, hasM := ip.takeM(cmd); hasM && hasN {
		if err := ip.buf.SetDot(int(m)); err != nil {
			return ip.reportBool(cmd, err)
		}
		n = n - m
	}
	return ip.reportBool(cmd, ip.buf.Delete(int(n)))
}

// execK implements "nK" as a delete of n characters (default 1) forward
// from dot through the EditBuffer collaborator, the same as "nD". Line
// boundaries are not looked at, and an m argument is ignored.
func execK(ip *Interp, cmd *Command) error {
	n, _, err := ip.takeN(cmd, 1)
	if err != nil {
		return err
	}
	return ip.reportBool(cmd, ip.buf.Delete(int(n)))
}

// execI implements "Itext" / "@Itext@": insert text at dot.
func execI(ip *Interp, cmd *Command) error {
	delim, err := ip.textArgDelim(cmd)
	if err != nil {
		return err
	}
	text, err := ip.scanDelimitedTextArg(delim)
	if err != nil {
		return err
	}
	return ip.buf.Insert(text)
}

// execS implements "Stext" / ":Stext": search forward for text, setting
// dot to just past the match. Without ":", a failed search throws E_SRH;
// with ":", failure instead leaves dot unchanged and pushes FAILURE.
func execS(ip *Interp, cmd *Command) error {
	delim, err := ip.textArgDelim(cmd)
	if err != nil {
		return err
	}
	text, err := ip.scanDelimitedTextArg(delim)
	if err != nil {
		return err
	}
	pos, found := ip.buf.Search(text, false)
	if !found {
		if cmd.colon {
			ip.exprStack.PushOperand(FAILURE)
			return nil
		}
		return throw(ErrSRH)
	}
	if err := ip.buf.SetDot(pos); err != nil {
		return err
	}
	if cmd.colon {
		ip.exprStack.PushOperand(SUCCESS)
	}
	return nil
}

// execJ implements "nJ": jump dot to the absolute position n (default 0).
func execJ(ip *Interp, cmd *Command) error {
	n, _, err := ip.takeN(cmd, 0)
	if err != nil {
		return err
	}
	return ip.reportBool(cmd, ip.buf.SetDot(int(n)))
}

// execX implements "nXq" / "m,nXq": copy the range [dot, dot+n) (or
// [m, n)) into Q-register q's text, replacing its previous contents.
func execX(ip *Interp, cmd *Command) error {
	n, hasN, err := ip.takeN(cmd, 1)
	if err != nil {
		return err
	}
	from, to := ip.buf.Dot(), ip.buf.Dot()+int(n)
	if m, hasM := ip.takeM(cmd); hasM && hasN {
		from, to = int(m), int(n)
	}
	name, local, err := ip.scanQRegName(cmd)
	if err != nil {
		return err
	}
	var sb []rune
	for p := from; p < to; p++ {
		r, ok := ip.buf.GetRune(p)
		if !ok {
			break
		}
		sb = append(sb, r)
	}
	ip.qregs.setText(name, local, string(sb))
	return nil
}

// execG implements "Gq" / ":Gq": insert Q-register q's text at dot.
func execG(ip *Interp, cmd *Command) error {
	name, local, err := ip.scanQRegName(cmd)
	if err != nil {
		return err
	}
	return ip.buf.Insert(ip.qregs.get(name, local).text)
}

// reportBool converts a collaborator error into the command's colon-form
// SUCCESS/FAILURE convention, or propagates it directly when the command
// was not colon-qualified.
func (ip *Interp) reportBool(cmd *Command, err error) error {
	if err == nil {
		if cmd.colon {
			ip.exprStack.PushOperand(SUCCESS)
		}
		return nil
	}
	if cmd.colon {
		ip.exprStack.PushOperand(FAILURE)
		return nil
	}
	return err
}

// --- "^" prefixed commands ------------------------------------------------

// execCtrlA implements "^Atext" / "@^Atext@": print text to the terminal
// verbatim.
func execCtrlA(ip *Interp, cmd *Command) error {
	delim, err := ip.textArgDelim(cmd)
	if err != nil {
		return err
	}
	text, err := ip.scanDelimitedTextArg(delim)
	if err != nil {
		return err
	}
	ip.term.Printf("%s", text)
	return nil
}

func registerCaretTable() {
	primaryTable[1] = &cmdEntry{kind: kindAction, fn: execCtrlA, opts: optAtsign | optText1} // ^A
	primaryTable[25] = &cmdEntry{kind: kindExpr, fn: evalCtrlY}                              // ^Y
}

// --- "E" prefixed commands -------------------------------------------------

// execEJ implements "EJ": push a status value describing the run-time
// environment. The full reference implementation exposes a rich bitmask
// (operating system, job number, ...); the core interpreter only owns the
// radix and trace flags, so those are what EJ reports.
func execEJ(ip *Interp, cmd *Command) error {
	var v Value
	if ip.trace {
		v |= 1
	}
	v |= Value(ip.radix) << 1
	ip.exprStack.PushOperand(v)
	return nil
}

// execEK implements "EK": discard the named output snapshot via the
// FileStore collaborator (e.g. abandoning a Q-register save file).
func execEK(ip *Interp, cmd *Command) error {
	delim, err := ip.textArgDelim(cmd)
	if err != nil {
		return err
	}
	name, err := ip.scanDelimitedTextArg(delim)
	if err != nil {
		return err
	}
	if ip.files == nil {
		return nil
	}
	return wrapSys(ip.files.Remove(name), "EK")
}

func registerETable() {
	eTable['J'] = &cmdEntry{kind: kindExpr, fn: execEJ}
	eTable['K'] = &cmdEntry{kind: kindAction, fn: execEK, opts: optAtsign | optText1}
}

// --- "F" prefixed commands -------------------------------------------------

func registerFTable() {
	fTable['<'] = &cmdEntry{kind: kindAction, fn: execFLess}
	fTable['>'] = &cmdEntry{kind: kindAction, fn: execFGreater}
}
