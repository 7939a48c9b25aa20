package record

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Field widths of the header payload, in declaration order after the type
// code.
const (
	headerNameWidth       = 28
	headerSurnameWidth    = 30
	headerPatronymicWidth = 30
	headerAddressWidth    = 30
)

// Header is the first record of a document, carrying the customer's
// identity fields. All fields are sanitized (trimmed and title-cased) and
// non-empty.
type Header struct {
	Name       string
	Surname    string
	Patronymic string
	Address    string
}

// sanitizeText trims surrounding whitespace and title-cases each word.
func sanitizeText(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}

func checkHeaderField(name, value string, width int) (string, error) {
	value = sanitizeText(value)
	if value == "" {
		return "", NewFieldError(name, value, "must not be empty")
	}
	if len(value) > width {
		return "", NewFieldError(name, value, "exceeds field width")
	}
	return value, nil
}

// NewHeader sanitizes and validates every header field.
func NewHeader(name, surname, patronymic, address string) (Header, error) {
	var h Header
	var err error

	if h.Name, err = checkHeaderField("name", name, headerNameWidth); err != nil {
		return Header{}, err
	}
	if h.Surname, err = checkHeaderField("surname", surname, headerSurnameWidth); err != nil {
		return Header{}, err
	}
	if h.Patronymic, err = checkHeaderField("patronymic", patronymic, headerPatronymicWidth); err != nil {
		return Header{}, err
	}
	if h.Address, err = checkHeaderField("address", address, headerAddressWidth); err != nil {
		return Header{}, err
	}

	return h, nil
}

// Render emits the exact 120-byte header payload.
func (h Header) Render() (string, error) {
	var buf strings.Builder
	buf.WriteString(HeaderCode)

	for _, f := range []struct {
		name  string
		value string
		width int
	}{
		{"name", h.Name, headerNameWidth},
		{"surname", h.Surname, headerSurnameWidth},
		{"patronymic", h.Patronymic, headerPatronymicWidth},
		{"address", h.Address, headerAddressWidth},
	} {
		encoded, err := encodeText(f.name, f.value, f.width)
		if err != nil {
			return "", err
		}
		buf.WriteString(encoded)
	}

	return buf.String(), nil
}

// DecodeHeader slices a header payload at its fixed offsets.
func DecodeHeader(payload string) (Header, error) {
	name, err := decodeText("name", payload, 2, 30)
	if err != nil {
		return Header{}, err
	}
	surname, err := decodeText("surname", payload, 30, 60)
	if err != nil {
		return Header{}, err
	}
	patronymic, err := decodeText("patronymic", payload, 60, 90)
	if err != nil {
		return Header{}, err
	}
	address, err := decodeText("address", payload, 90, 120)
	if err != nil {
		return Header{}, err
	}

	return NewHeader(name, surname, patronymic, address)
}

// HeaderUpdate is a partial header change. A nil field is not supplied and
// leaves the current value untouched. An empty string is also treated as
// not supplied, so this operation cannot clear a field.
type HeaderUpdate struct {
	Name       *string
	Surname    *string
	Patronymic *string
	Address    *string
}

func supplied(field *string) bool {
	return field != nil && strings.TrimSpace(*field) != ""
}

// IsEmpty reports whether the update carries no effective change.
func (u HeaderUpdate) IsEmpty() bool {
	return !supplied(u.Name) && !supplied(u.Surname) && !supplied(u.Patronymic) && !supplied(u.Address)
}

// Apply merges the supplied fields into a header, sanitizing and validating
// each applied value. The receiver and the input header are unchanged.
func (u HeaderUpdate) Apply(h Header) (Header, error) {
	name, surname, patronymic, address := h.Name, h.Surname, h.Patronymic, h.Address

	if supplied(u.Name) {
		name = *u.Name
	}
	if supplied(u.Surname) {
		surname = *u.Surname
	}
	if supplied(u.Patronymic) {
		patronymic = *u.Patronymic
	}
	if supplied(u.Address) {
		address = *u.Address
	}

	return NewHeader(name, surname, patronymic, address)
}
