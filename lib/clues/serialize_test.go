package clues

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFlattenCanonicalOrder(t *testing.T) {
	model := NewModel()
	// Down is populated first, Across must still come out first.
	require.NoError(t, model.Replace(Down, []Clue{mustClue(t, "1", "Not odd"), mustClue(t, "2", "Body of water")}))
	require.NoError(t, model.Replace(Across, []Clue{mustClue(t, "1", "Feline pet"), mustClue(t, "4", "Tree fluid")}))

	records, err := Flatten(model)
	require.NoError(t, err)

	expected := []Record{
		{Group: Across, Number: 1, String: "Feline pet"},
		{Group: Across, Number: 4, String: "Tree fluid"},
		{Group: Down, Number: 1, String: "Not odd"},
		{Group: Down, Number: 2, String: "Body of water"},
	}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	var out bytes.Buffer
	require.NoError(t, WriteJSON(&out, model))
	require.Equal(t, expectedMiniJSON, out.String())
}

func TestSerializeRejectsNilModel(t *testing.T) {
	_, err := Flatten(nil)
	require.ErrorIs(t, err, ErrNotModel)

	var out bytes.Buffer
	require.ErrorIs(t, WriteJSON(&out, nil), ErrNotModel)
	require.Zero(t, out.Len())
}

func TestWriteJSONEmptyModel(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteJSON(&out, NewModel()))
	require.Equal(t, "[]", out.String())
}

func TestWriteJSONDoesNotEscapeHTML(t *testing.T) {
	model := NewModel()
	require.NoError(t, model.Add(Across, mustClue(t, "3", "Salt & pepper <pair>")))

	var out bytes.Buffer
	require.NoError(t, WriteJSON(&out, model))
	require.Equal(t, `[{"Group":"Across","Number":3,"String":"Salt & pepper <pair>"}]`, out.String())
}

func TestJSONRoundTrip(t *testing.T) {
	model, err := Parse(context.Background(), miniPage)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteJSON(&out, model))

	// the output is plain JSON for any reader
	var generic []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &generic))
	require.Len(t, generic, 4)
	require.Equal(t, "Down", generic[3]["Group"])

	read, err := ReadJSON(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)

	original, err := Flatten(model)
	require.NoError(t, err)
	roundTripped, err := Flatten(read)
	require.NoError(t, err)
	if diff := cmp.Diff(original, roundTripped); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSONValidates(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`[{"Group":"Sideways","Number":1,"String":"x"}]`))
	require.ErrorIs(t, err, ErrInvalidGroup)

	_, err = ReadJSON(strings.NewReader(`[{"Group":"Across","Number":0,"String":"x"}]`))
	require.ErrorIs(t, err, ErrInvalidNumber)

	_, err = ReadJSON(strings.NewReader(`{"Group":"Across"}`))
	require.Error(t, err)
}
