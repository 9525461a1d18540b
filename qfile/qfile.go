// Package qfile implements the teco.FileStore collaborator: durable
// storage for Q-register save files (the "EQ"/"EK" family of commands),
// grounded on the teacher's image load/save idiom (vm/image.go) but using
// encoding/gob rather than a raw binary cell dump, since what's being
// persisted here is a name-indexed set of {integer, text} records rather
// than a flat memory image.
package qfile

import (
	"bytes"
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Store persists named snapshots under a directory on disk.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir, creating it if necessary.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create Q-register save directory")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".qreg")
}

// Save gob-encodes data (the caller already serialized it; Save itself
// just frames and writes the bytes, keeping the gob concern visible at
// the call site where the actual Q-register record type is known) to the
// named snapshot file.
func (s *Store) Save(name string, data []byte) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return errors.Wrapf(err, "encode Q-register snapshot %q", name)
	}
	if err := os.WriteFile(s.path(name), buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "write Q-register snapshot %q", name)
	}
	return nil
}

// Load reads back a snapshot written by Save.
func (s *Store) Load(name string) ([]byte, error) {
	raw, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, errors.Wrapf(err, "read Q-register snapshot %q", name)
	}
	var data []byte
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&data); err != nil {
		return nil, errors.Wrapf(err, "decode Q-register snapshot %q", name)
	}
	return data, nil
}

// Remove deletes a named snapshot, used by "EK".
func (s *Store) Remove(name string) error {
	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove Q-register snapshot %q", name)
	}
	return nil
}
