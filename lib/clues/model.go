package clues

import (
	"errors"
	"fmt"
	"slices"
)

type Group string

const (
	Across Group = "Across"
	Down   Group = "Down"
)

// Groups lists every recognized group in the order they are serialized.
var Groups = []Group{Across, Down}

var ErrInvalidGroup = errors.New("invalid clue group")

// ParseGroup converts the title of a clue group into a Group, the match is exact.
func ParseGroup(name string) (Group, error) {
	g := Group(name)
	if err := g.validate(); err != nil {
		return "", err
	}
	return g, nil
}

func (g Group) validate() error {
	if slices.Contains(Groups, g) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidGroup, string(g))
}

// Model holds the clues of a puzzle keyed by group.
//
// Everything going in or out of the model is copied, a slice returned by Get
// can be modified freely by the caller.
type Model struct {
	groups map[Group][]Clue
}

func NewModel() *Model {
	return &Model{groups: make(map[Group][]Clue, len(Groups))}
}

func (m *Model) Add(group Group, clue Clue) error {
	if err := group.validate(); err != nil {
		return err
	}
	m.groups[group] = append(m.groups[group], clue)
	return nil
}

func (m *Model) AddMany(group Group, clues []Clue) error {
	if err := group.validate(); err != nil {
		return err
	}
	m.groups[group] = append(m.groups[group], clues...)
	return nil
}

// Replace sets the contents of a group to a copy of the given clues,
// discarding whatever was there before.
func (m *Model) Replace(group Group, clues []Clue) error {
	if err := group.validate(); err != nil {
		return err
	}
	replacement := make([]Clue, len(clues))
	copy(replacement, clues)
	m.groups[group] = replacement
	return nil
}

// Get returns a copy of the clues in a group, an empty slice is returned
// if the group has never been populated.
func (m *Model) Get(group Group) ([]Clue, error) {
	if err := group.validate(); err != nil {
		return nil, err
	}
	stored := m.groups[group]
	out := make([]Clue, len(stored))
	copy(out, stored)
	return out, nil
}

// Len is the total number of clues across all groups.
func (m *Model) Len() int {
	total := 0
	for _, clues := range m.groups {
		total += len(clues)
	}
	return total
}
