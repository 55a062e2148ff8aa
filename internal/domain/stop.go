package domain

import (
	"fmt"
	"strconv"
)

// StopPosition is one of the ten canonical scale steps, 100 (lightest) to 1000 (darkest).
type StopPosition int

const (
	Stop100  StopPosition = 100
	Stop200  StopPosition = 200
	Stop300  StopPosition = 300
	Stop400  StopPosition = 400
	Stop500  StopPosition = 500
	Stop600  StopPosition = 600
	Stop700  StopPosition = 700
	Stop800  StopPosition = 800
	Stop900  StopPosition = 900
	Stop1000 StopPosition = 1000
)

// StopCount is the number of canonical stops.
const StopCount = 10

// StopIndex is the ordinal of a canonical stop, 0 for 100 through 9 for 1000.
type StopIndex int

// AllStops lists the canonical positions in ascending order.
var AllStops = [StopCount]StopPosition{
	Stop100, Stop200, Stop300, Stop400, Stop500,
	Stop600, Stop700, Stop800, Stop900, Stop1000,
}

// PositionToIndex maps a canonical position to its ordinal.
func PositionToIndex(p StopPosition) (StopIndex, error) {
	if p < Stop100 || p > Stop1000 || p%100 != 0 {
		return 0, NewError(KindCollection, fmt.Sprintf("stop position %d is not canonical", int(p)), nil)
	}
	return StopIndex(p/100 - 1), nil
}

// Position returns the canonical position for the ordinal.
func (i StopIndex) Position() StopPosition {
	return AllStops[i]
}

// Valid reports whether p is one of the canonical positions.
func (p StopPosition) Valid() bool {
	_, err := PositionToIndex(p)
	return err == nil
}

// Normalized maps the position onto [0,1], 100 → 0 and 1000 → 1.
func (p StopPosition) Normalized() float64 {
	return float64(p-Stop100) / float64(Stop1000-Stop100)
}

func (p StopPosition) String() string {
	return strconv.Itoa(int(p))
}

// ParseStop parses a canonical stop position from text such as "500".
func ParseStop(s string) (StopPosition, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, NewError(KindCollection, fmt.Sprintf("invalid stop %q", s), err)
	}
	p := StopPosition(n)
	if _, err := PositionToIndex(p); err != nil {
		return 0, err
	}
	return p, nil
}

// Stops is a fixed-size collection holding one value per canonical stop.
type Stops[T any] [StopCount]T

// At returns the value stored for position p.
func (s *Stops[T]) At(p StopPosition) (T, error) {
	i, err := PositionToIndex(p)
	if err != nil {
		var zero T
		return zero, err
	}
	return s[i], nil
}

// Set stores v for position p.
func (s *Stops[T]) Set(p StopPosition, v T) error {
	i, err := PositionToIndex(p)
	if err != nil {
		return err
	}
	s[i] = v
	return nil
}

// Each calls fn for every stop in ascending order.
func (s *Stops[T]) Each(fn func(p StopPosition, v T)) {
	for i, v := range s {
		fn(AllStops[i], v)
	}
}

// MapStops builds a collection by evaluating fn at every canonical position.
func MapStops[T any](fn func(p StopPosition) T) Stops[T] {
	var out Stops[T]
	for i, p := range AllStops {
		out[i] = fn(p)
	}
	return out
}
