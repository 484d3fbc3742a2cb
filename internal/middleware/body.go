package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
)

type payloadKey struct{}

// ErrPayloadType is returned by DecodePayload when the parsed body does not fit the target.
var ErrPayloadType = errors.New("request body has the wrong shape")

// bodyKind identifies the body format a parser is responsible for.
type bodyKind int

const (
	bodyJSON bodyKind = iota
	bodyURLEncoded
)

// JSONBody parses application/json (and +json) request bodies into a generic payload.
// Only objects and arrays are accepted at the top level. An empty body yields {}.
func JSONBody(limit int64) func(http.Handler) http.Handler {
	return bodyParser(bodyJSON, limit, func(raw []byte) (any, int, string) {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 {
			return map[string]any{}, 0, ""
		}
		if trimmed[0] != '{' && trimmed[0] != '[' {
			return nil, http.StatusBadRequest, "JSON body must be an object or an array"
		}

		var payload any
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&payload); err != nil {
			return nil, http.StatusBadRequest, "Malformed JSON body"
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, http.StatusBadRequest, "Malformed JSON body"
		}
		return payload, 0, ""
	})
}

// URLEncodedBody parses application/x-www-form-urlencoded bodies with nested
// bracket syntax: a[b]=c becomes {"a":{"b":"c"}} and a[]=1&a[]=2 becomes {"a":["1","2"]}.
func URLEncodedBody(limit int64) func(http.Handler) http.Handler {
	return bodyParser(bodyURLEncoded, limit, func(raw []byte) (any, int, string) {
		payload, err := ParseNestedForm(string(raw), DefaultFormDepth, DefaultFormParameterLimit)
		switch {
		case errors.Is(err, ErrTooManyParameters):
			return nil, http.StatusRequestEntityTooLarge, "Too many parameters"
		case err != nil:
			return nil, http.StatusBadRequest, "Malformed form body"
		}
		return payload, 0, ""
	})
}

type parseFunc func(raw []byte) (payload any, status int, message string)

func bodyParser(kind bodyKind, limit int64, parse parseFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, done := r.Context().Value(payloadKey{}).(parsedBody); done || !matchesKind(r, kind) {
				next.ServeHTTP(w, r)
				return
			}

			if !utf8Charset(r) {
				respondError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_CHARSET", "Unsupported charset")
				return
			}

			raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					respondError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request entity too large")
					return
				}
				respondError(w, http.StatusBadRequest, "INVALID_BODY", "Failed to read request body")
				return
			}

			payload, status, message := parse(raw)
			if status != 0 {
				code := "INVALID_JSON"
				if kind == bodyURLEncoded {
					code = "INVALID_FORM"
				}
				if status == http.StatusRequestEntityTooLarge {
					code = "PAYLOAD_TOO_LARGE"
				}
				respondError(w, status, code, message)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(raw))
			ctx := context.WithValue(r.Context(), payloadKey{}, parsedBody{value: payload})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type parsedBody struct {
	value any
}

// Payload returns the body parsed by JSONBody or URLEncodedBody.
func Payload(r *http.Request) (any, bool) {
	pb, ok := r.Context().Value(payloadKey{}).(parsedBody)
	if !ok {
		return nil, false
	}
	return pb.value, true
}

// DecodePayload copies the parsed body into v using JSON field rules.
// A request without a parsed body leaves v untouched.
func DecodePayload(r *http.Request, v any) error {
	payload, ok := Payload(r)
	if !ok {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Join(ErrPayloadType, err)
	}
	return nil
}

func matchesKind(r *http.Request, kind bodyKind) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}

	switch kind {
	case bodyJSON:
		return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
	case bodyURLEncoded:
		return mediaType == "application/x-www-form-urlencoded"
	default:
		return false
	}
}

func utf8Charset(r *http.Request) bool {
	_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return true
	}
	charset, ok := params["charset"]
	if !ok {
		return true
	}
	charset = strings.ToLower(charset)
	return charset == "utf-8" || charset == "utf8"
}
