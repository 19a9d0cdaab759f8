package clues

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrNotModel = errors.New("expected a clue model")

// Record is the serialized form of a single clue.
type Record struct {
	Group  Group  `json:"Group"`
	Number int    `json:"Number"`
	String string `json:"String"`
}

// Flatten lists every clue of the model, groups come in the order of Groups and
// clues keep the order they were added in.
func Flatten(model *Model) ([]Record, error) {
	if model == nil {
		return nil, ErrNotModel
	}

	records := make([]Record, 0, model.Len())
	for _, g := range Groups {
		clues, err := model.Get(g)
		if err != nil {
			return nil, err
		}
		for _, c := range clues {
			records = append(records, Record{
				Group:  g,
				Number: c.Number(),
				String: c.Text(),
			})
		}
	}
	return records, nil
}

// WriteJSON writes the flattened model to w as a JSON array.
func WriteJSON(w io.Writer, model *Model) error {
	records, err := Flatten(model)
	if err != nil {
		return err
	}
	// clue text often contains '&', it should not come out as \u0026.
	var buff bytes.Buffer
	enc := json.NewEncoder(&buff)
	enc.SetEscapeHTML(false)
	err = enc.Encode(records)
	if err != nil {
		return err
	}
	_, err = w.Write(bytes.TrimSuffix(buff.Bytes(), []byte("\n")))
	return err
}

// ReadJSON is the inverse of WriteJSON.
func ReadJSON(r io.Reader) (*Model, error) {
	var records []Record
	err := json.NewDecoder(r).Decode(&records)
	if err != nil {
		return nil, err
	}

	model := NewModel()
	for _, rec := range records {
		if rec.Number <= 0 {
			return nil, fmt.Errorf("%w: %d is not positive", ErrInvalidNumber, rec.Number)
		}
		clue := Clue{number: rec.Number, text: rec.String}
		err = model.Add(rec.Group, clue)
		if err != nil {
			return nil, err
		}
	}
	return model, nil
}
