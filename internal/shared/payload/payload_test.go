package payload

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestString_UnmarshalJSON(t *testing.T) {
	var body struct {
		A String `json:"a"`
		B String `json:"b"`
		C String `json:"c"`
	}
	err := json.Unmarshal([]byte(`{"a":"  hi ","b":null}`), &body)

	assert.NoError(t, err)
	assert.Equal(t, String{Present: true, Value: "  hi "}, body.A)
	assert.Equal(t, "hi", body.A.Trimmed())
	assert.True(t, body.B.Present)
	assert.True(t, body.B.Null)
	assert.True(t, body.B.Blank())
	assert.False(t, body.C.Present)
	assert.True(t, body.C.Blank())
}

func TestString_RejectsNonString(t *testing.T) {
	var body struct {
		A String `json:"a"`
	}
	err := json.Unmarshal([]byte(`{"a":12}`), &body)

	var typeErr *json.UnmarshalTypeError
	assert.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "a", typeErr.Field)
}

func TestInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want Int
	}{
		{`5`, NewInt(5)},
		{`"7"`, NewInt(7)},
		{`" 8 "`, NewInt(8)},
		{`3.0`, NewInt(3)},
		{`-2`, NewInt(-2)},
		{`3.5`, InvalidInt()},
		{`"abc"`, InvalidInt()},
		{`true`, InvalidInt()},
		{`[]`, InvalidInt()},
		{`null`, Int{}},
		{`1e12`, InvalidInt()},
		{`1000000000000`, InvalidInt()},
		{`3000000000`, InvalidInt()},
		{`"3000000000"`, InvalidInt()},
		{`-2147483649`, InvalidInt()},
		{`2147483647`, NewInt(2147483647)},
		{`"-2147483648"`, NewInt(-2147483648)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var got Int
			assert.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateTime(t *testing.T) {
	want := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	for _, raw := range []string{
		"2024-05-01T08:30:00Z",
		"2024-05-01T10:30:00+02:00",
		"2024-05-01T08:30:00",
		"2024-05-01 08:30:00",
		"2024-05-01T08:30",
	} {
		got, err := ParseDateTime(raw)
		assert.NoError(t, err, raw)
		assert.True(t, want.Equal(got), raw)
	}

	day, err := ParseDateTime("2024-05-01")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseDateTime("yesterday")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate(" 2024-02-29 ")
	assert.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(got))

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)

	_, err = ParseDate("01/05/2024")
	assert.Error(t, err)
}

func TestFormatDateTime(t *testing.T) {
	loc := time.FixedZone("X", 2*60*60)
	assert.Equal(t, "2024-05-01T08:30:00Z", FormatDateTime(time.Date(2024, 5, 1, 10, 30, 0, 0, loc)))
}
