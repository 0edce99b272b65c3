// Package archive walks documents stored inside zip archives.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/text/encoding"
)

// Entry is a single archived file selected by Walk.
type Entry struct {
	Archive string
	File    *zip.File
	// Name is the entry path, decoded with the forced code page when one was
	// requested and the entry is not flagged as UTF-8.
	Name string
	// NameErr is set when forced decoding failed, Name keeps the raw value
	// in that case.
	NameErr error
}

// Open reads the whole entry into memory. Document packages are zip files
// themselves and need random access.
func (e *Entry) Open() (*bytes.Reader, error) {
	r, err := e.File.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read %q: %w", e.File.Name, err)
	}
	return bytes.NewReader(data), nil
}

// WalkFunc is called for every regular entry under the requested prefix.
// Returning an error stops the walk.
type WalkFunc func(e *Entry) error

// Walk visits entries of the archive whose names start with prefix. The
// context is checked before each entry. Absolute names and names with ".."
// components abort the walk since extracted paths are derived from them.
// When cp is not nil it is used to decode names of entries which do not
// carry the UTF-8 flag.
func Walk(ctx context.Context, archive, prefix string, cp encoding.Encoding, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}

		e := &Entry{Archive: archive, File: f, Name: name}
		if cp != nil && f.FileHeader.NonUTF8 {
			if n, err := cp.NewDecoder().String(name); err == nil {
				e.Name = n
			} else {
				e.NameErr = err
			}
		}
		if err := walkFn(e); err != nil {
			return err
		}
	}
	return nil
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return false
		}
	}
	return true
}
