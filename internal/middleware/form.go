package middleware

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultFormDepth limits how many bracket levels are expanded into nested objects.
	DefaultFormDepth = 32

	// DefaultFormParameterLimit caps the number of key/value pairs in one body.
	DefaultFormParameterLimit = 1000
)

// ErrTooManyParameters is returned when a form body exceeds the parameter limit.
var ErrTooManyParameters = errors.New("too many form parameters")

// ParseNestedForm decodes a URL-encoded string, expanding bracket keys into
// nested maps and slices. Brackets beyond depth are kept as part of the last key.
func ParseNestedForm(body string, depth, limit int) (map[string]any, error) {
	out := make(map[string]any)
	if body == "" {
		return out, nil
	}

	if strings.Count(body, "&")+1 > limit {
		return nil, ErrTooManyParameters
	}

	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, err
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, err
		}

		segments := splitFormKey(key, depth)
		if len(segments) == 0 || segments[0] == "" {
			continue
		}
		insertFormValue(out, segments, value)
	}
	return out, nil
}

// splitFormKey splits "a[b][]" into ["a", "b", ""].
func splitFormKey(key string, depth int) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return []string{key}
	}

	segments := []string{key[:open]}
	rest := key[open:]
	for len(rest) > 0 && len(segments) <= depth {
		if rest[0] != '[' {
			break
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		segments = append(segments, rest[1:end])
		rest = rest[end+1:]
	}

	if rest != "" {
		segments = append(segments, rest)
	}
	return segments
}

// insertFormValue places value under segments. Conflicting shapes are merged
// rather than dropped: a plain value on an object becomes a key set to true,
// an array gaining a named key becomes an object keyed by index, and a string
// gaining a named key becomes [string, object].
func insertFormValue(node map[string]any, segments []string, value string) {
	key := segments[0]

	switch {
	case len(segments) == 1:
		node[key] = mergeFormLeaf(node[key], value)
	case len(segments) == 2 && segments[1] == "":
		node[key] = pushFormLeaf(node[key], value)
	default:
		insertFormValue(formChild(node, key), segments[1:], value)
	}
}

func mergeFormLeaf(existing any, value string) any {
	switch e := existing.(type) {
	case nil:
		return value
	case []any:
		return append(e, value)
	case map[string]any:
		e[value] = true
		return e
	default:
		return []any{e, value}
	}
}

func pushFormLeaf(existing any, value string) any {
	switch e := existing.(type) {
	case nil:
		return []any{value}
	case map[string]any:
		e["0"] = mergeFormLeaf(e["0"], value)
		return e
	default:
		return mergeFormLeaf(e, value)
	}
}

// formChild returns the object stored under key, converting whatever is there.
func formChild(node map[string]any, key string) map[string]any {
	switch e := node[key].(type) {
	case map[string]any:
		return e
	case nil:
		child := make(map[string]any)
		node[key] = child
		return child
	case []any:
		child := make(map[string]any, len(e))
		for i, v := range e {
			child[strconv.Itoa(i)] = v
		}
		node[key] = child
		return child
	default:
		child := make(map[string]any)
		node[key] = []any{e, child}
		return child
	}
}
