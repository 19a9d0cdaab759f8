package clues

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidNumber = errors.New("invalid clue number")

// Clue is a single numbered clue. It cannot be modified once constructed.
type Clue struct {
	number int
	text   string
}

// NewClue creates a clue from the label shown next to it on the page (ex. " 12 ")
// and its text. The label is trimmed before parsing, the text is kept as is.
func NewClue(label, text string) (Clue, error) {
	number, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil {
		return Clue{}, fmt.Errorf("%w: %q: %w", ErrInvalidNumber, label, err)
	}
	if number <= 0 {
		return Clue{}, fmt.Errorf("%w: %q is not positive", ErrInvalidNumber, label)
	}
	return Clue{number: number, text: text}, nil
}

func (c Clue) Number() int {
	return c.number
}

func (c Clue) Text() string {
	return c.text
}

func (c Clue) String() string {
	return fmt.Sprintf("%d. %s", c.number, c.text)
}
