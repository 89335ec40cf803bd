package resource

import (
	"bytes"
	"encoding/json"
	"strings"
)

// StringList accepts either a JSON array of strings or one comma separated string.
// Entries are trimmed and blanks dropped.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}

	var items []string
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		items = strings.Split(s, ",")
	} else if err := json.Unmarshal(b, &items); err != nil {
		return err
	}

	*l = CleanList(items)
	return nil
}

// CleanList trims entries and drops blank ones, keeping order. Never returns nil.
func CleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
