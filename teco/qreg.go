package teco

import "strings"

// qregValue is the {integer, text} pair held by a single Q-register. The
// zero value is a freshly-created register: integer 0, empty text.
type qregValue struct {
	num  Value
	text string
}

// qregBank holds the 36 global registers (0-9, A-Z) plus any local
// registers created on demand within the current macro frame. The
// reference implementation preallocates a fixed array; Go's map gives the
// same externally-observable behavior (first reference creates the
// register with zero value) without hand-rolling a name-to-slot table.
type qregBank struct {
	global map[byte]*qregValue
	local  map[byte]*qregValue
}

func newQRegBank() *qregBank {
	return &qregBank{
		global: make(map[byte]*qregValue),
		local:  make(map[byte]*qregValue),
	}
}

// normalizeQName upper-cases letter register names; digit names are left
// alone. TECO register names are case-insensitive.
func normalizeQName(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func isValidQName(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func (b *qregBank) slot(name byte, local bool) *qregValue {
	bank := b.global
	if local {
		bank = b.local
	}
	if v, ok := bank[name]; ok {
		return v
	}
	v := &qregValue{}
	bank[name] = v
	return v
}

func (b *qregBank) get(name byte, local bool) qregValue {
	return *b.slot(name, local)
}

func (b *qregBank) setNum(name byte, local bool, n Value) {
	b.slot(name, local).num = n
}

func (b *qregBank) setText(name byte, local bool, s string) {
	b.slot(name, local).text = s
}

func (b *qregBank) appendText(name byte, local bool, s string) {
	slot := b.slot(name, local)
	slot.text += s
}

// resetLocals discards all local (".") registers. execM calls it to give
// each macro invocation a fresh set (putting the caller's set back when the
// macro returns), and unwind calls it after an error.
func (b *qregBank) resetLocals() {
	b.local = make(map[byte]*qregValue)
}

// qregPushEntry is one saved frame on the Q-register pushdown list ("[q").
type qregPushEntry struct {
	name  byte
	local bool
	val   qregValue
}

// qregPushdown is the bounded stack used by "[q" / "]q". Overflow throws
// E_PDO; popping past empty throws E_CPQ unless the command used the ":"
// convertible-failure form.
type qregPushdown struct {
	entries []qregPushEntry
}

func newQRegPushdown() *qregPushdown {
	return &qregPushdown{entries: make([]qregPushEntry, 0, MaxPushdown)}
}

func (p *qregPushdown) push(name byte, local bool, v qregValue) error {
	if len(p.entries) >= MaxPushdown {
		return throw(ErrPDO)
	}
	p.entries = append(p.entries, qregPushEntry{name: name, local: local, val: v})
	return nil
}

// pop removes and returns the top entry. convertible, when true, reports
// empty via ok=false instead of an error (the ":]q" form).
func (p *qregPushdown) pop(convertible bool) (qregPushEntry, bool, error) {
	if len(p.entries) == 0 {
		if convertible {
			return qregPushEntry{}, false, nil
		}
		return qregPushEntry{}, false, throw(ErrCPQ)
	}
	n := len(p.entries) - 1
	e := p.entries[n]
	p.entries = p.entries[:n]
	return e, true, nil
}

func (p *qregPushdown) reset() { p.entries = p.entries[:0] }

// qregName formats a register name for diagnostics, marking local registers
// with their "." prefix.
func qregName(name byte, local bool) string {
	var sb strings.Builder
	if local {
		sb.WriteByte('.')
	}
	sb.WriteByte(name)
	return sb.String()
}
