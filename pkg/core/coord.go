package core

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyDelimiter separates the row and column in a canonical cell key.
const KeyDelimiter = ","

// Coord addresses a single cell on the unbounded grid.
type Coord struct {
	Row int
	Col int
}

// C is shorthand for Coord{Row: row, Col: col}.
func C(row, col int) Coord { return Coord{Row: row, Col: col} }

// Add returns the coordinate offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord { return Coord{Row: c.Row + dr, Col: c.Col + dc} }

// Key returns the canonical "row,col" form of the coordinate.
func (c Coord) Key() string { return Encode(c) }

func (c Coord) String() string { return "(" + Encode(c) + ")" }

// Less orders coordinates row-major.
func (c Coord) Less(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

// Compare is a three-way row-major comparison suitable for slices.SortFunc.
func Compare(a, b Coord) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

// Encode renders c as "row,col" in base 10.
func Encode(c Coord) string {
	return strconv.Itoa(c.Row) + KeyDelimiter + strconv.Itoa(c.Col)
}

// MalformedKeyError reports a key that is not two integers joined by the
// delimiter.
type MalformedKeyError struct {
	Key    string
	Reason string
	Err    error
}

func (e *MalformedKeyError) Error() string {
	return fmt.Sprintf("malformed cell key %q: %s", e.Key, e.Reason)
}

func (e *MalformedKeyError) Unwrap() error { return e.Err }

// Decode parses a key produced by Encode. Only the canonical form is
// accepted, so every key that decodes also re-encodes to the same string.
func Decode(key string) (Coord, error) {
	rowPart, colPart, ok := strings.Cut(key, KeyDelimiter)
	if !ok {
		return Coord{}, &MalformedKeyError{Key: key, Reason: "missing delimiter"}
	}
	if strings.Contains(colPart, KeyDelimiter) {
		return Coord{}, &MalformedKeyError{Key: key, Reason: "too many components"}
	}
	row, err := parseComponent(key, rowPart)
	if err != nil {
		return Coord{}, err
	}
	col, err := parseComponent(key, colPart)
	if err != nil {
		return Coord{}, err
	}
	return Coord{Row: row, Col: col}, nil
}

// MustDecode is Decode for literal keys; it panics on malformed input.
func MustDecode(key string) Coord {
	c, err := Decode(key)
	if err != nil {
		panic(err)
	}
	return c
}

func parseComponent(key, s string) (int, error) {
	digits := strings.TrimPrefix(s, "-")
	switch {
	case digits == "":
		return 0, &MalformedKeyError{Key: key, Reason: "empty component"}
	case digits != "0" && digits[0] == '0':
		return 0, &MalformedKeyError{Key: key, Reason: "leading zero in " + strconv.Quote(s)}
	case s == "-0":
		return 0, &MalformedKeyError{Key: key, Reason: "negative zero"}
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, &MalformedKeyError{Key: key, Reason: "non-digit in " + strconv.Quote(s)}
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &MalformedKeyError{Key: key, Reason: "out of range", Err: err}
	}
	return v, nil
}
