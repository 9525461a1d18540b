package teco

import "strconv"

// execBackslash implements "\": with no n argument, it reads a signed
// number in the current radix starting at dot, advances dot past it, and
// pushes the value; with an n argument, it formats n in the current radix
// and inserts the result as text at dot. Hex digits above '9' are only
// recognized when the radix is actually 16.
func execBackslash(ip *Interp, cmd *Command) error {
	n, hasN, err := ip.takeN(cmd, 0)
	if err != nil {
		return err
	}
	if hasN {
		return ip.buf.Insert(strconv.FormatInt(int64(n), int(ip.radix)))
	}
	return ip.readNumberAtDot()
}

func (ip *Interp) readNumberAtDot() error {
	start := ip.buf.Dot()
	pos := start
	neg := false
	if r, ok := ip.buf.GetRune(pos); ok && (r == '-' || r == '+') {
		neg = r == '-'
		pos++
	}
	digitStart := pos
	var v Value
	for {
		r, ok := ip.buf.GetRune(pos)
		if !ok || !isRadixDigit(r, ip.radix) {
			break
		}
		v = v*Value(ip.radix) + Value(radixDigitValue(r))
		pos++
	}
	if pos == digitStart {
		ip.exprStack.PushOperand(0)
		return nil
	}
	if neg {
		v = -v
	}
	if err := ip.buf.SetDot(pos); err != nil {
		return err
	}
	ip.exprStack.PushOperand(v)
	return nil
}

func isRadixDigit(r rune, radix Radix) bool {
	if r >= '0' && r <= '9' {
		return int(r-'0') < int(radix)
	}
	if radix == Hex {
		return (r >= 'A' && r <= 'F') || (r >= 'a' && r <= 'f')
	}
	return false
}

func radixDigitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	}
	return 0
}
