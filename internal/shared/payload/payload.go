// Package payload holds JSON field types that remember whether a key was
// sent, so partial updates can tell "absent" from "null" from a value.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
)

type String struct {
	Present bool
	Null    bool
	Value   string
}

func NewString(v string) String {
	return String{Present: true, Value: v}
}

func NullString() String {
	return String{Present: true, Null: true}
}

func (s *String) UnmarshalJSON(data []byte) error {
	*s = String{Present: true}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		s.Null = true
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(data), Type: reflect.TypeOf("")}
	}
	s.Value = v
	return nil
}

func (s String) MarshalJSON() ([]byte, error) {
	if !s.Present || s.Null {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

func (s String) Trimmed() string {
	return strings.TrimSpace(s.Value)
}

// Blank reports absent, null or whitespace-only values.
func (s String) Blank() bool {
	return !s.Present || s.Null || s.Trimmed() == ""
}

// Int accepts JSON integers and numeric strings. Anything else is kept
// as Present but not Valid so callers can report it with their own message.
type Int struct {
	Present bool
	Valid   bool
	Value   int
}

func NewInt(v int) Int {
	return Int{Present: true, Valid: true, Value: v}
}

func InvalidInt() Int {
	return Int{Present: true}
}

func (i *Int) UnmarshalJSON(data []byte) error {
	*i = Int{}
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}
	i.Present = true

	text := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		text = strings.TrimSpace(s)
	} else if len(raw) == 0 || !(raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')) {
		return nil
	}

	if v, ok := parseInt(text); ok {
		i.Valid = true
		i.Value = v
	}
	return nil
}

func (i Int) MarshalJSON() ([]byte, error) {
	if !i.Present || !i.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(i.Value)
}

// parseInt accepts integers and integral floats that fit an INTEGER column.
func parseInt(text string) (int, bool) {
	if v, err := strconv.ParseInt(text, 10, 32); err == nil {
		return int(v), true
	} else if errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func jsonKind(data []byte) string {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return "empty"
	}
	switch raw[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	default:
		return "number"
	}
}
