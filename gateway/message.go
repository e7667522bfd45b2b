package gateway

import (
	"net/url"
	"strings"
)

// Message is a decoded APC payload. Keys keep the order of their first
// appearance in the raw body; duplicate keys keep the last value.
type Message struct {
	keys   []string
	values map[string]string
}

// DecodeMessage decodes a form-urlencoded body into a Message. It never
// fails: malformed pairs are decoded best-effort, and business-rule
// validation is left to the settlement engine.
func DecodeMessage(raw string) Message {
	msg := Message{values: make(map[string]string)}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value := pair, ""
		if i := strings.Index(pair, "="); i >= 0 {
			key, value = pair[:i], pair[i+1:]
		}
		key = unescape(key)
		if key == "" {
			continue
		}
		if _, seen := msg.values[key]; !seen {
			msg.keys = append(msg.keys, key)
		}
		msg.values[key] = unescape(value)
	}
	return msg
}

// unescape url-decodes s, falling back to the raw text when the
// escaping is broken.
func unescape(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// Get returns the value for key, or "" when the key is absent.
func (m Message) Get(key string) string {
	return m.values[key]
}

// Has reports whether the payload carried key.
func (m Message) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of distinct keys.
func (m Message) Len() int {
	return len(m.keys)
}

// Friendly renders the payload as one "key = value" line per field, in
// received order, for order audit notes.
func (m Message) Friendly() string {
	lines := make([]string, 0, len(m.keys))
	for _, key := range m.keys {
		lines = append(lines, key+" = "+m.values[key])
	}
	return strings.Join(lines, "\n")
}
