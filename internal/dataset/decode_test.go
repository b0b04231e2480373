package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCSV(t *testing.T) {
	content := "name,age,city\nAlice,32,Oslo\n\nBob,28,Bergen\n"

	ds, err := Decode("people.csv", content, FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "people.csv", ds.FileName)
	assert.Equal(t, []string{"name", "age", "city"}, ds.Columns)
	require.Len(t, ds.Rows, 2) // blank line skipped
	assert.Equal(t, Record{"name": "Alice", "age": "32", "city": "Oslo"}, ds.Rows[0])
}

func TestDecodeCSVShortRowBecomesMissing(t *testing.T) {
	ds, err := Decode("t.csv", "a,b,c\n1,2\n", FormatCSV)
	require.NoError(t, err)

	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "1", ds.Rows[0]["a"])
	assert.Equal(t, "2", ds.Rows[0]["b"])
	assert.Nil(t, ds.Rows[0]["c"])
}

func TestDecodeCSVInvalid(t *testing.T) {
	_, err := Decode("t.csv", "a,b\n\"unclosed,2\n", FormatCSV)
	assert.Error(t, err)
}

func TestDecodeCSVEmptyContent(t *testing.T) {
	_, err := Decode("t.csv", "", FormatCSV)
	assert.Error(t, err)
}

func TestDecodeJSONArray(t *testing.T) {
	content := `[{"z": 1, "a": "x", "m": null}, {"z": 2, "a": "y", "m": 3.5}]`

	ds, err := Decode("t.json", content, FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "a", "m"}, ds.Columns)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, float64(1), ds.Rows[0]["z"])
	assert.Nil(t, ds.Rows[0]["m"])
	assert.Equal(t, 3.5, ds.Rows[1]["m"])
}

func TestDecodeJSONSingleObjectCoerced(t *testing.T) {
	ds, err := Decode("t.json", `{"id": 4, "name": "Alice"}`, FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, ds.Columns)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "Alice", ds.Rows[0]["name"])
}

func TestDecodeJSONKeyOrderPreserved(t *testing.T) {
	// Key order of the first record defines column order; a sorted or hashed
	// map would scramble it.
	content := `[{"zeta": 1, "alpha": 2, "mid": {"nested": true}, "omega": [1,2]}]`

	ds, err := Decode("t.json", content, FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid", "omega"}, ds.Columns)
}

func TestDecodeJSONInvalid(t *testing.T) {
	_, err := Decode("t.json", `[{"a": }]`, FormatJSON)
	assert.Error(t, err)

	_, err = Decode("t.json", `"just a string"`, FormatJSON)
	assert.Error(t, err)
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	_, err := Decode("t.xml", "<x/>", Format("xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDetectFormat(t *testing.T) {
	format, err := DetectFormat("/data/People.CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	format, err = DetectFormat("rows.json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	_, err = DetectFormat("notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
