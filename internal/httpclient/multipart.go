package httpclient

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Form accumulates text fields and file parts for a multipart/form-data
// request body. Encode may be called repeatedly; each call produces a fresh
// body with a fresh boundary.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	name     string
	filename string
	mimeType string
	data     []byte
}

// NewForm creates an empty multipart form.
func NewForm() *Form {
	return &Form{}
}

// Text adds a plain text field.
func (f *Form) Text(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// File adds a file part with an explicit MIME type.
func (f *Form) File(name, filename, mimeType string, data []byte) *Form {
	f.files = append(f.files, formFile{name: name, filename: filename, mimeType: mimeType, data: data})
	return f
}

// Encode writes the form to a buffer and returns the body along with the
// Content-Type value carrying the boundary.
func (f *Form) Encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", err
		}
	}

	for _, file := range f.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`,
			escapeQuotes(file.name), escapeQuotes(file.filename)))
		h.Set("Content-Type", file.mimeType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
