package holidaycal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBytes(t *testing.T) {
	data := []byte(`{
		"year": 2026,
		"months": [
			{"month": 1, "holidays": [
				{"day": 26, "name": "Republic Day", "type": "public"}
			]},
			{"month": 3, "holidays": [
				{"day": 4, "name": "Holi"},
				{"day": 21, "name": "Founder's Day", "type": "optional"}
			]}
		]
	}`)

	entries, err := ParseBytes(data)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "2026-01-26", entries[0].Date)
	assert.Equal(t, "Republic Day", entries[0].Name)
	assert.Equal(t, "public", entries[0].Type)

	assert.Equal(t, "2026-03-04", entries[1].Date)
	assert.Equal(t, "public", entries[1].Type, "type defaults to public")

	assert.Equal(t, "optional", entries[2].Type)
}

func TestParseBytesRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"not json":     `{"year": 2026,`,
		"bad year":     `{"year": 1, "months": []}`,
		"bad month":    `{"year": 2026, "months": [{"month": 13, "holidays": []}]}`,
		"bad day":      `{"year": 2026, "months": [{"month": 2, "holidays": [{"day": 30, "name": "x"}]}]}`,
		"bad type":     `{"year": 2026, "months": [{"month": 2, "holidays": [{"day": 1, "name": "x", "type": "secret"}]}]}`,
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseBytes([]byte(data))
			assert.Error(t, err)
		})
	}
}
