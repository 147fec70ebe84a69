package notifier

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// NormalizeMessage undoes any percent-encoding already applied to m and
// strips backslash escapes. A '+' decodes to a space and malformed escape
// sequences are kept as they are.
func NormalizeMessage(m string) string {
	return strings.ReplaceAll(decodeLenient(m), `\`, "")
}

// EncodeMessage normalizes m and percent-encodes the result for use as a
// query value. Encoding an encoded message yields the same value.
func EncodeMessage(m string) string {
	return url.QueryEscape(NormalizeMessage(m))
}

// Truncate cuts s down to limit characters. The second result reports
// whether anything was removed.
func Truncate(s string, limit int) (string, bool) {
	if limit < 0 || utf8.RuneCountInString(s) <= limit {
		return s, false
	}

	count := 0
	for idx := range s {
		if count == limit {
			return s[:idx], true
		}

		count++
	}

	return s, false
}

func decodeLenient(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}

	var builder strings.Builder
	builder.Grow(len(s))

	for idx := 0; idx < len(s); idx++ {
		switch c := s[idx]; {
		case c == '+':
			builder.WriteByte(' ')
		case c == '%' && idx+2 < len(s) && isHex(s[idx+1]) && isHex(s[idx+2]):
			builder.WriteByte(unhex(s[idx+1])<<4 | unhex(s[idx+2]))
			idx += 2
		default:
			builder.WriteByte(c)
		}
	}

	return builder.String()
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	default:
		return false
	}
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

type queryPair struct {
	key   string
	value string
}

// Query is an ordered list of query parameters. Unlike url.Values it keeps
// keys in insertion order so generated URLs are reproducible.
type Query struct {
	pairs []queryPair
}

// Add appends key with a percent-encoded copy of value.
func (q *Query) Add(key, value string) {
	q.pairs = append(q.pairs, queryPair{key: url.QueryEscape(key), value: url.QueryEscape(value)})
}

// AddEncoded appends key with a value that is already encoded.
func (q *Query) AddEncoded(key, encoded string) {
	q.pairs = append(q.pairs, queryPair{key: url.QueryEscape(key), value: encoded})
}

func (q *Query) Keys() []string {
	keys := make([]string, 0, len(q.pairs))
	for _, pair := range q.pairs {
		keys = append(keys, pair.key)
	}

	return keys
}

func (q *Query) Len() int {
	return len(q.pairs)
}

func (q *Query) Encode() string {
	if q == nil || len(q.pairs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(q.pairs))
	for _, pair := range q.pairs {
		parts = append(parts, pair.key+"="+pair.value)
	}

	return strings.Join(parts, "&")
}
