package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DecodeValues parses stored form values. Empty text is an empty form.
// Numbers are kept as json.Number so re-encoding never changes them.
func DecodeValues(text string) (map[string]any, error) {
	if strings.TrimSpace(text) == "" {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("decode form values: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode form values: trailing data")
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}

func EncodeValues(values map[string]any) (string, error) {
	if values == nil {
		return "{}", nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode form values: %w", err)
	}
	return string(b), nil
}
