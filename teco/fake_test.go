package teco

import (
	"fmt"
	"strings"
)

// fakeBuffer is a minimal in-memory EditBuffer used by the package's own
// tests, independent of the buffer package (which imports teco and so
// cannot be imported back here).
type fakeBuffer struct {
	runes []rune
	dot   int
}

func newFakeBuffer(s string) *fakeBuffer { return &fakeBuffer{runes: []rune(s)} }

func (b *fakeBuffer) Dot() int { return b.dot }
func (b *fakeBuffer) Len() int { return len(b.runes) }
func (b *fakeBuffer) SetDot(pos int) error {
	if pos < 0 || pos > len(b.runes) {
		return throw(ErrARG)
	}
	b.dot = pos
	return nil
}
func (b *fakeBuffer) GetRune(pos int) (rune, bool) {
	if pos < 0 || pos >= len(b.runes) {
		return 0, false
	}
	return b.runes[pos], true
}
func (b *fakeBuffer) Insert(s string) error {
	ins := []rune(s)
	grown := append([]rune{}, b.runes[:b.dot]...)
	grown = append(grown, ins...)
	grown = append(grown, b.runes[b.dot:]...)
	b.runes = grown
	b.dot += len(ins)
	return nil
}
func (b *fakeBuffer) Delete(n int) error {
	from, to := b.dot, b.dot+n
	if n < 0 {
		from, to = b.dot+n, b.dot
	}
	if from < 0 || to > len(b.runes) {
		return throw(ErrARG)
	}
	b.runes = append(b.runes[:from], b.runes[to:]...)
	b.dot = from
	return nil
}
func (b *fakeBuffer) Search(s string, reverse bool) (int, bool) {
	text := string(b.runes)
	if reverse {
		idx := strings.LastIndex(text[:b.dot], s)
		if idx < 0 {
			return 0, false
		}
		return idx, true
	}
	idx := strings.Index(text[b.dot:], s)
	if idx < 0 {
		return 0, false
	}
	return b.dot + idx + len(s), true
}
func (b *fakeBuffer) NextPage() (bool, error) { return false, nil }
func (b *fakeBuffer) SavePage() error         { return nil }

// fakeTerminal records printed output for assertions.
type fakeTerminal struct {
	out strings.Builder
}

func (t *fakeTerminal) ReadRune(wait bool) (rune, error) { return 0, throw(ErrUTC) }
func (t *fakeTerminal) Echo(r rune)                       {}
func (t *fakeTerminal) Printf(format string, args ...any) {
	t.out.WriteString(fmt.Sprintf(format, args...))
}
func (t *fakeTerminal) ReadCommand() (string, error) { return "", throw(ErrUTC) }

func newInterpWithBuffer(text string) (*Interp, *fakeBuffer, *fakeTerminal) {
	buf := newFakeBuffer(text)
	term := &fakeTerminal{}
	ip := NewInterp(WithEditBuffer(buf), WithTerminal(term))
	return ip, buf, term
}
