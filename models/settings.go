package models

import (
	"bytes"
	"encoding/json"
)

// TeacherOnlyComment restricts project comments to teacher accounts.
const TeacherOnlyComment = "teacher_only_comment"

// Settings is the raw settings document returned by the backend. Values may be
// booleans or strings depending on how the setting was stored.
type Settings map[string]json.RawMessage

// Enabled reports whether the named flag is set. Only the JSON literal true
// and the exact string "true" count as enabled.
func (s Settings) Enabled(name string) bool {
	return IsTrue(s[name])
}

// IsTrue reports whether raw is the boolean true or the string "true".
func IsTrue(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(raw, []byte("true")):
		return true
	case len(raw) > 0 && raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return false
		}
		return s == "true"
	}
	return false
}
