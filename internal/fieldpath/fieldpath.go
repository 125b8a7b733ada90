// Package fieldpath reads and writes values inside decoded form data using
// dot-delimited paths such as "storeService.schedule".
package fieldpath

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrEmptyPath    = errors.New("fieldpath: empty path")
	ErrNotContainer = errors.New("fieldpath: segment is not an object")
)

// Get walks root one key per segment. It reports false when the path is
// empty, a step is nil, or a key is missing. Numeric segments index into
// lists, which is how block fields inside modular content are addressed.
func Get(root any, path string) (any, bool) {
	return walk(root, path, nil)
}

// GetTraced behaves like Get and logs which segment failed and the keys that
// were available there. Logging never changes the result.
func GetTraced(root any, path string, log *zap.Logger) (any, bool) {
	if log == nil {
		log = zap.NewNop()
	}
	v, ok := walk(root, path, log)
	if ok {
		log.Debug("field value resolved", zap.String("path", path))
	}
	return v, ok
}

func walk(root any, path string, log *zap.Logger) (any, bool) {
	if path == "" {
		if log != nil {
			log.Warn("field path is empty")
		}
		return nil, false
	}

	value := root
	current := ""
	for _, key := range strings.Split(path, ".") {
		parent := current
		if current == "" {
			current = key
		} else {
			current = current + "." + key
		}

		if value == nil {
			if log != nil {
				log.Warn("cannot access key, value is nil",
					zap.String("key", key),
					zap.String("path", current),
				)
			}
			return nil, false
		}

		next, ok := child(value, key)
		if !ok {
			if log != nil {
				if parent == "" {
					parent = "root"
				}
				log.Warn("key not found",
					zap.String("key", key),
					zap.String("path", current),
				)
				log.Debug("available keys",
					zap.String("at", parent),
					zap.Strings("keys", keysOf(value)),
				)
			}
			return nil, false
		}
		value = next
	}
	return value, true
}

func child(v any, key string) (any, bool) {
	switch c := v.(type) {
	case map[string]any:
		next, ok := c[key]
		return next, ok
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	}
	return nil, false
}

func keysOf(v any) []string {
	switch c := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	case []any:
		keys := make([]string, len(c))
		for i := range c {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	}
	return nil
}

// Set stores value at path, creating intermediate objects when they are
// missing. It fails when an intermediate segment holds something that is
// neither an object nor a list.
func Set(root map[string]any, path string, value any) error {
	if path == "" {
		return ErrEmptyPath
	}
	if root == nil {
		return fmt.Errorf("%w: nil root", ErrNotContainer)
	}

	keys := strings.Split(path, ".")
	var cur any = root
	for i, key := range keys {
		last := i == len(keys)-1

		switch c := cur.(type) {
		case map[string]any:
			if last {
				c[key] = value
				return nil
			}
			next, ok := c[key]
			if !ok || next == nil {
				next = map[string]any{}
				c[key] = next
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 || idx >= len(c) {
				return fmt.Errorf("%w: %q", ErrNotContainer, strings.Join(keys[:i+1], "."))
			}
			if last {
				c[idx] = value
				return nil
			}
			if c[idx] == nil {
				c[idx] = map[string]any{}
			}
			cur = c[idx]
		default:
			return fmt.Errorf("%w: %q", ErrNotContainer, strings.Join(keys[:i], "."))
		}
	}
	return nil
}
