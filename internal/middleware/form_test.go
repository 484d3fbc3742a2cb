package middleware_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dine/backend/internal/middleware"
)

func TestParseNestedForm(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[string]any
	}{
		{
			name: "flat",
			body: "title=Hello+World&published=true",
			want: map[string]any{"title": "Hello World", "published": "true"},
		},
		{
			name: "nested object",
			body: "author[name]=Ada&author[contact][email]=ada%40example.com",
			want: map[string]any{"author": map[string]any{
				"name":    "Ada",
				"contact": map[string]any{"email": "ada@example.com"},
			}},
		},
		{
			name: "array push",
			body: "tags[]=go&tags[]=http",
			want: map[string]any{"tags": []any{"go", "http"}},
		},
		{
			name: "repeated key",
			body: "tag=a&tag=b&tag=c",
			want: map[string]any{"tag": []any{"a", "b", "c"}},
		},
		{
			name: "unterminated bracket stays literal",
			body: "a[b=1",
			want: map[string]any{"a[b": "1"},
		},
		{
			name: "empty key ignored",
			body: "=orphan&&x=1",
			want: map[string]any{"x": "1"},
		},
		{
			name: "plain value after object",
			body: "a[b]=1&a=2",
			want: map[string]any{"a": map[string]any{"b": "1", "2": true}},
		},
		{
			name: "named key after array",
			body: "a[]=1&a[b]=2",
			want: map[string]any{"a": map[string]any{"0": "1", "b": "2"}},
		},
		{
			name: "array push after object",
			body: "a[b]=1&a[]=2&a[]=3",
			want: map[string]any{"a": map[string]any{"b": "1", "0": []any{"2", "3"}}},
		},
		{
			name: "named key after string",
			body: "a=2&a[b]=1",
			want: map[string]any{"a": []any{"2", map[string]any{"b": "1"}}},
		},
		{
			name: "empty body",
			body: "",
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := middleware.ParseNestedForm(tt.body, middleware.DefaultFormDepth, middleware.DefaultFormParameterLimit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNestedForm_DepthLimit(t *testing.T) {
	got, err := middleware.ParseNestedForm("a[b][c][d]=1", 2, 10)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"a": map[string]any{"b": map[string]any{"c": map[string]any{"[d]": "1"}}},
	}, got)
}

func TestParseNestedForm_ParameterLimit(t *testing.T) {
	body := strings.TrimSuffix(strings.Repeat("k=v&", 11), "&")

	_, err := middleware.ParseNestedForm(body, 5, 10)
	assert.ErrorIs(t, err, middleware.ErrTooManyParameters)
}

func TestParseNestedForm_BadEscape(t *testing.T) {
	_, err := middleware.ParseNestedForm("title=%zz", 5, 10)
	assert.Error(t, err)
}
