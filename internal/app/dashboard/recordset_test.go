package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordSet(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantLen     int
		wantColumns []string
	}{
		{name: "two users", body: `[{"user":"a"},{"user":"b"}]`, wantLen: 2, wantColumns: []string{"user"}},
		{name: "empty array", body: `[]`, wantLen: 0},
		{name: "null", body: `null`, wantLen: 0},
		{name: "whitespace", body: " [ {\"a\": 1} ]\n", wantLen: 1, wantColumns: []string{"a"}},
		{
			name:        "keys keep server order",
			body:        `[{"user_id":"u1","app_version":"2.3","ip":"x"}]`,
			wantLen:     1,
			wantColumns: []string{"user_id", "app_version", "ip"},
		},
		{
			name:        "varying fields make a union",
			body:        `[{"b":1,"a":2},{"c":3,"a":4},{}]`,
			wantLen:     3,
			wantColumns: []string{"b", "a", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := ParseRecordSet([]byte(tt.body))

			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, rs.Len())
			assert.Equal(t, tt.wantColumns, rs.Columns)
		})
	}
}

func TestParseRecordSet_Values(t *testing.T) {
	rs, err := ParseRecordSet([]byte(`[{"s":"x","n":12,"f":1.5,"b":true,"z":null,"o":{"k":"v"},"l":[1,2]}]`))

	require.NoError(t, err)
	rec := rs.Records[0]
	assert.Equal(t, "x", rec["s"])
	assert.Equal(t, json.Number("12"), rec["n"])
	assert.Equal(t, json.Number("1.5"), rec["f"])
	assert.Equal(t, true, rec["b"])
	assert.Nil(t, rec["z"])
	assert.Contains(t, rec, "z")
	assert.Equal(t, map[string]any{"k": "v"}, rec["o"])
	assert.Equal(t, []any{json.Number("1"), json.Number("2")}, rec["l"])
}

func TestParseRecordSet_LargeNumbers(t *testing.T) {
	rs, err := ParseRecordSet([]byte(`[{"id":9007199254740993,"n":12345678901234567890,"o":{"big":9007199254740993}}]`))

	require.NoError(t, err)
	rec := rs.Records[0]
	assert.Equal(t, json.Number("9007199254740993"), rec["id"])
	assert.Equal(t, json.Number("12345678901234567890"), rec["n"])
	assert.Equal(t, map[string]any{"big": json.Number("9007199254740993")}, rec["o"])
}

func TestParseRecordSet_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `[{"user":`},
		{name: "html", body: `<html>oops</html>`},
		{name: "object not array", body: `{"user":"a"}`},
		{name: "array of scalars", body: `[1,2,3]`},
		{name: "array of arrays", body: `[[1]]`},
		{name: "trailing garbage", body: `[] []`},
		{name: "empty body", body: ``},
		{name: "string", body: `"records"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := ParseRecordSet([]byte(tt.body))

			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
			assert.True(t, rs.Empty())
		})
	}
}
