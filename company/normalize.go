package company

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Field names recognised in request payloads.
const (
	FieldCompany  = "company"
	FieldLocation = "location"
	FieldURL      = "url"
)

// recognised lists payload fields in validation order.
var recognised = []string{FieldCompany, FieldLocation, FieldURL}

// required fields may be omitted from partial updates but never blanked.
var required = map[string]bool{
	FieldCompany:  true,
	FieldLocation: true,
}

// Mode selects full (create) or partial (update) validation.
type Mode int

const (
	// Full requires company and location.
	Full Mode = iota
	// Partial requires at least one recognised field.
	Partial
)

func (m Mode) String() string {
	switch m {
	case Full:
		return "full"
	case Partial:
		return "partial"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Fields holds cleaned payload values keyed by field name.
// Only fields present in the input appear.
type Fields map[string]string

// Get returns the value of name and whether it was supplied.
func (f Fields) Get(name string) (string, bool) {
	v, ok := f[name]
	return v, ok
}

// Normalize validates a decoded JSON payload and returns its trimmed fields.
func Normalize(input any, mode Mode) (Fields, error) {
	data, ok := input.(map[string]any)
	if !ok {
		return nil, ErrInvalidBody
	}

	out := make(Fields, len(recognised))
	for _, name := range recognised {
		raw, present := data[name]
		if !present {
			continue
		}
		value := strings.TrimSpace(toText(raw))
		if value == "" && required[name] {
			return nil, &MissingFieldError{Field: name}
		}
		out[name] = value
	}

	switch mode {
	case Full:
		for _, name := range recognised {
			if _, ok := out[name]; !ok && required[name] {
				return nil, &MissingFieldError{Field: name}
			}
		}
	case Partial:
		if len(out) == 0 {
			return nil, ErrEmptyUpdate
		}
	}

	return out, nil
}

// toText coerces a decoded JSON value to text. null becomes "".
func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool, float64, json.Number:
		return fmt.Sprint(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
