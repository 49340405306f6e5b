package token

import (
	"fmt"
	"sort"
	"strings"
)

// An Error is a single diagnostic produced by the scanner, parser, or
// compiler, tied to a source Position. Modeled on go/scanner.Error.
type Error struct {
	Pos Position
	Msg string
}

func (e Error) Error() string {
	if !e.Pos.IsValid() {
		return e.Msg
	}
	return fmt.Sprintf("[line %d] Error: %s", e.Pos.Line, e.Msg)
}

// An ErrorList collects diagnostics from a single compilation in source
// order. It satisfies the error interface so it can be returned directly.
type ErrorList []Error

// Add appends an Error built from pos and msg.
func (el *ErrorList) Add(pos Position, msg string) {
	*el = append(*el, Error{Pos: pos, Msg: msg})
}

// Len, Less and Swap make ErrorList sortable by source position.
func (el ErrorList) Len() int      { return len(el) }
func (el ErrorList) Swap(i, j int) { el[i], el[j] = el[j], el[i] }
func (el ErrorList) Less(i, j int) bool {
	if el[i].Pos.Line != el[j].Pos.Line {
		return el[i].Pos.Line < el[j].Pos.Line
	}
	return el[i].Pos.Col < el[j].Pos.Col
}

// Sort orders the list by source position.
func (el ErrorList) Sort() { sort.Sort(el) }

func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}
	lines := make([]string, len(el))
	for i, e := range el {
		lines[i] = e.Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", lines[0], len(lines)-1) + "\n" + strings.Join(lines[1:], "\n")
}

// Err returns nil if el is empty, otherwise el itself.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}
