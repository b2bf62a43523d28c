package platform

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// FormFile is a file part of a multipart form
type FormFile struct {
	Field       string
	Filename    string
	ContentType string
	Content     io.Reader
}

// Form is an ordered multipart/form-data payload
type Form struct {
	fields []formField
	files  []FormFile
}

type formField struct {
	name  string
	value string
}

// NewForm returns an empty form
func NewForm() *Form {
	return &Form{}
}

// Set replaces every value of name with value, keeping the position of the first one
func (f *Form) Set(name, value string) {
	kept := f.fields[:0]
	replaced := false
	for _, field := range f.fields {
		if field.name != name {
			kept = append(kept, field)
			continue
		}
		if !replaced {
			kept = append(kept, formField{name: name, value: value})
			replaced = true
		}
	}
	f.fields = kept
	if !replaced {
		f.Add(name, value)
	}
}

// Add appends a field. Repeated names are sent as repeated parts.
func (f *Form) Add(name, value string) {
	f.fields = append(f.fields, formField{name: name, value: value})
}

// Value returns the first value set for name
func (f *Form) Value(name string) (string, bool) {
	for _, field := range f.fields {
		if field.name == name {
			return field.value, true
		}
	}
	return "", false
}

// Names returns field names in insertion order
func (f *Form) Names() []string {
	names := make([]string, 0, len(f.fields))
	for _, field := range f.fields {
		names = append(names, field.name)
	}
	return names
}

// AddFile appends a file part
func (f *Form) AddFile(file FormFile) {
	f.files = append(f.files, file)
}

// Files returns the file parts
func (f *Form) Files() []FormFile {
	return f.files
}

// Encode renders the form as a multipart body and returns it with its content type
func (f *Form) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %q: %w", field.name, err)
		}
	}

	for _, file := range f.files {
		part, err := w.CreatePart(fileHeader(file))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part %q: %w", file.Field, err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write file part %q: %w", file.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

// quoteEscaper matches the escaping mime/multipart applies to form-data parameters
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func fileHeader(file FormFile) textproto.MIMEHeader {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(file.Field), quoteEscaper.Replace(file.Filename)))
	h.Set("Content-Type", contentType)
	return h
}
