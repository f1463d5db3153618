package jsdata

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		fmt.Sprintf("<html><head></head><body>%s</body></html>", body)))
	require.NoError(t, err)
	return doc
}

func scriptDoc(t *testing.T, js string) *goquery.Document {
	t.Helper()
	return testDoc(t, "<script>"+js+"</script>")
}

func TestExtractPinzDirectAssignment(t *testing.T) {
	doc := scriptDoc(t, `var pinz = [{"lat": 1.1, "lon": 2.2, "lable": "A"}];`)

	pins := ExtractPinz(doc)
	require.Len(t, pins, 1)
	assert.Equal(t, 1.1, pins[0]["lat"])
	assert.Equal(t, 2.2, pins[0]["lon"])
	assert.Equal(t, "A", pins[0]["lable"])
}

func TestExtractPinzLenientRepair(t *testing.T) {
	doc := scriptDoc(t, `/* map setup */
let pinz = [{lat: 1.5, lon: -2.5, color: getColor(3), title: 'Joe\'s', }, 42,];`)

	pins := ExtractPinz(doc)
	require.Len(t, pins, 1)
	assert.Equal(t, 1.5, pins[0]["lat"])
	assert.Equal(t, -2.5, pins[0]["lon"])
	assert.Equal(t, "auto", pins[0]["color"])
	assert.Equal(t, "Joe's", pins[0]["title"])
}

func TestExtractPinzJSONParse(t *testing.T) {
	// A single-quoted JS literal carries its JSON payload's double quotes
	// unescaped; a double-quoted one escapes them.
	tests := []struct {
		name string
		js   string
	}{
		{"single-quoted", `pinz = JSON.parse('[{"lat": 7.5, "lon": 8.5}]');`},
		{"double-quoted", `pinz = JSON.parse("[{\"lat\": 7.5, \"lon\": 8.5}]");`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pins := ExtractPinz(scriptDoc(t, tt.js))
			require.Len(t, pins, 1)
			assert.Equal(t, 7.5, pins[0]["lat"])
			assert.Equal(t, 8.5, pins[0]["lon"])
		})
	}
}

func TestExtractPinzAtob(t *testing.T) {
	// W3sibGF0IjoxfV0= is [{"lat":1}].
	doc := scriptDoc(t, `var data = JSON.parse(atob('W3sibGF0IjoxfV0='));`)

	pins := ExtractPinz(doc)
	require.Len(t, pins, 1)
	assert.Equal(t, float64(1), pins[0]["lat"])
	_, hasLon := pins[0]["lon"]
	assert.False(t, hasLon)
}

func TestExtractPinzWindowAssignment(t *testing.T) {
	doc := scriptDoc(t, `window.pinz = [{"lat": 3.0, "lon": 4.0}]`)

	pins := ExtractPinz(doc)
	require.Len(t, pins, 1)
	assert.Equal(t, 3.0, pins[0]["lat"])
}

func TestExtractPinzPushCollection(t *testing.T) {
	doc := scriptDoc(t, `var markers = true
pinz.push({"lat": 1, "seq": "first"})
pinz.push({lat: 2, seq: 'second'})`)

	pins := ExtractPinz(doc)
	require.Len(t, pins, 2)
	assert.Equal(t, "first", pins[0]["seq"])
	assert.Equal(t, "second", pins[1]["seq"])
}

func TestExtractPinzBracketScanNestedArray(t *testing.T) {
	// No trailing semicolon and a nested array defeat the regex strategies.
	doc := scriptDoc(t, `var pinz = [[1, 2], {"lat": 4.5, "lon": 5.5}]`)

	pins := ExtractPinz(doc)
	require.Len(t, pins, 1)
	assert.Equal(t, 4.5, pins[0]["lat"])
}

func TestExtractPinzAssignmentBeatsPush(t *testing.T) {
	doc := scriptDoc(t, `var pinz = [{"lat": 9}];
pinz.push({"lat": 10});`)

	pins := ExtractPinz(doc)
	require.Len(t, pins, 1)
	assert.Equal(t, float64(9), pins[0]["lat"])
}

func TestExtractPinzDeclaredEmptyArrayWins(t *testing.T) {
	// W3siY2ZnIjoidGhlbWUifV0= is [{"cfg":"theme"}]. The page declared an
	// empty pin list; the unrelated base64 blob must not be mistaken for it.
	doc := scriptDoc(t, `var pinz = [];
var uiConfig = JSON.parse(atob('W3siY2ZnIjoidGhlbWUifV0='));`)

	assert.Empty(t, ExtractPinz(doc))
}

func TestExtractPinzParenthesizedStringSurvivesRepair(t *testing.T) {
	doc := scriptDoc(t, `var pinz = [{lat: 1.5, lon: 2.5, title: 'Diner (east)', color: getColor(3)}];`)

	pins := ExtractPinz(doc)
	require.Len(t, pins, 1)
	assert.Equal(t, "Diner (east)", pins[0]["title"])
	assert.Equal(t, "auto", pins[0]["color"])
}

func TestExtractPinzNonObjectElementsDiscarded(t *testing.T) {
	doc := scriptDoc(t, `var pinz = ["stray", {"lat": 6}, null];`)

	pins := ExtractPinz(doc)
	require.Len(t, pins, 1)
	assert.Equal(t, float64(6), pins[0]["lat"])
}

func TestExtractPinzAbsent(t *testing.T) {
	assert.Nil(t, ExtractPinz(testDoc(t, `<script>var other = 1;</script><p>no pins</p>`)))
	assert.Nil(t, ExtractPinz(nil))
}
