package schedule

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Source says how the host delivered the raw field value.
type Source string

const (
	SourceMissing    Source = "missing"
	SourceText       Source = "text"
	SourceStructured Source = "structured"
)

var (
	ErrEmpty       = errors.New("empty field value")
	ErrNotSequence = errors.New("field value is not a sequence")
)

// ParseError explains why a raw field value could not be used.
type ParseError struct {
	Source Source
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("schedule: %s value: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Decode turns the raw value stored in the host field into a Schedule.
//
// The field is typed as JSON text but some host paths hand it over already
// decoded, so strings, byte slices and decoded sequences are all accepted.
// The returned Source is meaningful even when err is non-nil.
func Decode(raw any, found bool) (Schedule, Source, error) {
	if !found || raw == nil {
		return nil, SourceMissing, &ParseError{Source: SourceMissing, Err: ErrEmpty}
	}

	switch v := raw.(type) {
	case string:
		return decodeText([]byte(v))
	case []byte:
		return decodeText(v)
	case json.RawMessage:
		return decodeText(v)
	case Schedule:
		return v.Clone(), SourceStructured, nil
	case []Entry:
		return Schedule(v).Clone(), SourceStructured, nil
	case []any, []map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, SourceStructured, &ParseError{Source: SourceStructured, Err: err}
		}
		var s Schedule
		if err := json.Unmarshal(b, &s); err != nil {
			return nil, SourceStructured, &ParseError{Source: SourceStructured, Err: err}
		}
		return s.Clone(), SourceStructured, nil
	default:
		return nil, SourceStructured, &ParseError{Source: SourceStructured, Err: ErrNotSequence}
	}
}

func decodeText(b []byte) (Schedule, Source, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, SourceText, &ParseError{Source: SourceText, Err: ErrEmpty}
	}

	var shape any
	if err := json.Unmarshal(b, &shape); err != nil {
		return nil, SourceText, &ParseError{Source: SourceText, Err: err}
	}
	if _, ok := shape.([]any); !ok {
		return nil, SourceText, &ParseError{Source: SourceText, Err: ErrNotSequence}
	}

	var s Schedule
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, SourceText, &ParseError{Source: SourceText, Err: err}
	}
	return s.Clone(), SourceText, nil
}

// Encode produces the JSON text stored in the host field. HTML characters
// are left unescaped to match what browser-side JSON.stringify writes.
func Encode(s Schedule) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s.Clone()); err != nil {
		return nil, fmt.Errorf("encode schedule: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
