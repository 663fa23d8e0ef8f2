// ABOUTME: Multipart form bodies for create/update calls that carry files
// ABOUTME: Collects scalar fields, repeated list fields, and local file parts
package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

type filePart struct {
	field string
	path  string
}

// Multipart accumulates form fields and file attachments. Files are read
// from disk at encode time, not at Add time.
type Multipart struct {
	fields [][2]string
	files  []filePart
}

func NewMultipart() *Multipart {
	return &Multipart{}
}

// SetField adds one scalar form value.
func (m *Multipart) SetField(name, value string) {
	m.fields = append(m.fields, [2]string{name, value})
}

// SetListField adds a repeated form value, one part per entry.
func (m *Multipart) SetListField(name string, values []string) {
	for _, v := range values {
		m.fields = append(m.fields, [2]string{name, v})
	}
}

// AddFile attaches a local file under the given field name.
func (m *Multipart) AddFile(field, path string) {
	m.files = append(m.files, filePart{field: field, path: path})
}

// HasFiles reports whether any file is attached.
func (m *Multipart) HasFiles() bool { return len(m.files) > 0 }

func (m *Multipart) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range m.fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	for _, fp := range m.files {
		src, err := os.Open(fp.path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s: %w", fp.path, err)
		}
		part, err := w.CreateFormFile(fp.field, filepath.Base(fp.path))
		if err == nil {
			_, err = io.Copy(part, src)
		}
		_ = src.Close()
		if err != nil {
			return nil, "", fmt.Errorf("failed to attach %s: %w", fp.path, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
