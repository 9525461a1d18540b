// Package buffer implements the teco.EditBuffer collaborator: an
// in-memory rune slice standing in for the text currently being edited,
// grounded on the teacher's growable Image slice (vm/image.go) but holding
// runes instead of VM cells.
package buffer

import (
	"os"

	"github.com/pkg/errors"
	"github.com/tecoed/goteco/teco"
)

// Buffer is a single-page in-memory text buffer.
type Buffer struct {
	runes []rune
	dot   int

	file   *os.File
	loaded bool
}

var _ teco.EditBuffer = (*Buffer)(nil)

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{runes: make([]rune, 0, 1024)}
}

// Open loads the named file as the buffer's single page, grounded on the
// teacher's Image.Load (vm/image.go): read the whole file up front, then
// let SavePage write whatever is left at end of edit.
func Open(name string) (*Buffer, error) {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "open buffer file")
	}
	data, err := os.ReadFile(name)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "read buffer file")
	}
	return &Buffer{runes: []rune(string(data)), file: f}, nil
}

func (b *Buffer) Dot() int { return b.dot }

func (b *Buffer) Len() int { return len(b.runes) }

func (b *Buffer) SetDot(pos int) error {
	if pos < 0 || pos > len(b.runes) {
		return errors.New("dot out of range")
	}
	b.dot = pos
	return nil
}

func (b *Buffer) GetRune(pos int) (rune, bool) {
	if pos < 0 || pos >= len(b.runes) {
		return 0, false
	}
	return b.runes[pos], true
}

func (b *Buffer) Insert(s string) error {
	ins := []rune(s)
	grown := make([]rune, 0, len(b.runes)+len(ins))
	grown = append(grown, b.runes[:b.dot]...)
	grown = append(grown, ins...)
	grown = append(grown, b.runes[b.dot:]...)
	b.runes = grown
	b.dot += len(ins)
	return nil
}

func (b *Buffer) Delete(n int) error {
	from, to := b.dot, b.dot+n
	if n < 0 {
		from, to = b.dot+n, b.dot
	}
	if from < 0 || to > len(b.runes) || from > to {
		return errors.New("delete out of range")
	}
	b.runes = append(b.runes[:from], b.runes[to:]...)
	b.dot = from
	return nil
}

// Search performs a plain substring search starting at dot (or, if
// reverse, backward from dot), returning the position just past (or
// before) the match.
func (b *Buffer) Search(s string, reverse bool) (int, bool) {
	needle := []rune(s)
	if len(needle) == 0 {
		return b.dot, true
	}
	if reverse {
		for start := b.dot - len(needle); start >= 0; start-- {
			if runesEqual(b.runes[start:start+len(needle)], needle) {
				return start, true
			}
		}
		return 0, false
	}
	for start := b.dot; start+len(needle) <= len(b.runes); start++ {
		if runesEqual(b.runes[start:start+len(needle)], needle) {
			return start + len(needle), true
		}
	}
	return 0, false
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// NextPage reports that there is no further page: this Buffer is
// single-page only, treating multi-page file I/O as out of core scope.
func (b *Buffer) NextPage() (bool, error) { return false, nil }

// SavePage writes the buffer's full contents back to its backing file, if
// one was given to Open.
func (b *Buffer) SavePage() error {
	if b.file == nil {
		return nil
	}
	if err := b.file.Truncate(0); err != nil {
		return errors.Wrap(err, "truncate buffer file")
	}
	if _, err := b.file.Seek(0, 0); err != nil {
		return errors.Wrap(err, "seek buffer file")
	}
	if _, err := b.file.WriteString(string(b.runes)); err != nil {
		return errors.Wrap(err, "write buffer file")
	}
	return nil
}

// Close releases the backing file, if any.
func (b *Buffer) Close() error {
	if b.file == nil {
		return nil
	}
	return b.file.Close()
}
