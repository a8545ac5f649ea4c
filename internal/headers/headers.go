package headers

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	crlf      = "\r\n"
	separator = ": "
)

// Headers maps a request header name, exactly as received, to its value.
type Headers map[string]string

func NewHeaders() Headers {
	return map[string]string{}
}

// ParseLine stores one header line. A line without ": " is kept with the
// raw text as both key and value. Later duplicates overwrite earlier ones.
func (h Headers) ParseLine(line string) {
	key, value, ok := strings.Cut(line, separator)
	if !ok {
		h[line] = line
		return
	}
	h[key] = value
}

func (h Headers) Set(key, value string) {
	h[key] = value
}

func (h Headers) Get(key string) string {
	return h[key]
}

// Lookup finds a header ignoring case. An exact match wins over a folded one.
func (h Headers) Lookup(key string) (string, bool) {
	if v, ok := h[key]; ok {
		return v, true
	}
	for k, v := range h {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

func (h Headers) Del(key string) {
	delete(h, key)
}

// Field is a single response header.
type Field struct {
	Name  string
	Value string
}

// Fields is an ordered set of response headers. Order is preserved on the wire.
type Fields []Field

// Add appends a field, or replaces the value of an existing one in place.
func (f *Fields) Add(name, value string) {
	for i := range *f {
		if strings.EqualFold((*f)[i].Name, name) {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Name: name, Value: value})
}

func (f Fields) Get(name string) string {
	for _, field := range f {
		if strings.EqualFold(field.Name, name) {
			return field.Value
		}
	}
	return ""
}

// Write emits every field followed by the blank line ending the header block.
func (f Fields) Write(w io.Writer) error {
	caser := cases.Title(language.English)
	for _, field := range f {
		line := caser.String(field.Name) + separator + field.Value + crlf
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("error writing header: %w", err)
		}
	}
	_, err := io.WriteString(w, crlf)
	return err
}
