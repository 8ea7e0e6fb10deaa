package scaler

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Direction selects the traversal order through a candidate scale list.
type Direction int

const (
	// Forwards advances to the next candidate, wrapping to the first.
	Forwards Direction = iota
	// Backwards retreats to the previous candidate, wrapping to the last.
	Backwards
)

// String returns the canonical flag spelling for the direction.
func (d Direction) String() string {
	switch d {
	case Backwards:
		return "backwards"
	default:
		return "forwards"
	}
}

// ParseDirection maps a flag or config value onto a Direction.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "forwards":
		return Forwards, nil
	case "backwards":
		return Backwards, nil
	default:
		return Forwards, fmt.Errorf("direction must be %q or %q, got %q", Forwards, Backwards, value)
	}
}

// ErrNoScales is returned when the candidate list is empty.
var ErrNoScales = errors.New("scale list is empty")

// Validate rejects unusable candidate lists. Order is preserved as given;
// the list is never sorted, so the caller's ordering defines "forwards".
func Validate(scales []float64) error {
	if len(scales) == 0 {
		return ErrNoScales
	}
	for i, s := range scales {
		if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("scale at position %d must be a positive number, got %v", i+1, s)
		}
	}
	return nil
}

// NearestIndex locates the candidate closest to current. Exact matches win
// outright; otherwise the smallest absolute distance decides, and on an
// exact tie the lower index wins.
func NearestIndex(scales []float64, current float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, s := range scales {
		if s == current {
			return i
		}
		if d := math.Abs(s - current); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Next computes the scale one step away from current in the given
// direction, wrapping around at both ends of the list.
func Next(scales []float64, current float64, dir Direction) (float64, error) {
	if err := Validate(scales); err != nil {
		return 0, err
	}
	n := len(scales)
	i := NearestIndex(scales, current)
	switch dir {
	case Backwards:
		i = (i - 1 + n) % n
	default:
		i = (i + 1) % n
	}
	return scales[i], nil
}
