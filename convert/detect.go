package convert

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// enough to see zip signature and first local file header
const sniffLen = 262

func sniff(r io.Reader) ([]byte, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

// isZip reports whether content looks like zip container. Office documents
// are zip containers too and filetype reports them by their own kind.
func isZip(head []byte) bool {
	kind, err := filetype.Match(head)
	if err != nil {
		return false
	}
	switch kind.Extension {
	case "zip", "docx":
		return true
	}
	return false
}

func sniffFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return sniff(f)
}

func hasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}

// isArchiveFile checks if file is a zip archive which may hold documents.
func isArchiveFile(path string) (bool, error) {
	head, err := sniffFile(path)
	if err != nil {
		return false, err
	}
	return hasExt(path, ".zip") && isZip(head), nil
}

// isDocumentFile checks if file is a word processing document.
func isDocumentFile(path string) (bool, error) {
	head, err := sniffFile(path)
	if err != nil {
		return false, err
	}
	return hasExt(path, ".docx") && isZip(head), nil
}

// isDocumentInArchive checks if archive entry is a word processing document.
func isDocumentInArchive(f *zip.File) (bool, error) {
	if !hasExt(f.Name, ".docx") {
		return false, nil
	}
	r, err := f.Open()
	if err != nil {
		return false, err
	}
	defer r.Close()

	head, err := sniff(r)
	if err != nil {
		return false, err
	}
	return isZip(head), nil
}
