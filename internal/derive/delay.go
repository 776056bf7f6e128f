package derive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidDelay reports a delay string whose magnitude is not numeric.
// A wrong delay would silently corrupt simulation results, so parsing
// never guesses.
var ErrInvalidDelay = errors.New("invalid delay")

// Unit is a simulated-time unit.
type Unit string

const (
	Milliseconds Unit = "ms"
	Microseconds Unit = "us"
	Seconds      Unit = "s"
)

// Delay is a normalized link delay: a magnitude and a time unit.
type Delay struct {
	Value float64
	Unit  Unit

	// text is the magnitude exactly as written in the source, kept so
	// generated programs echo "10" rather than a reformatted float.
	text string
}

// Magnitude returns the numeric part as written in the source document.
func (d Delay) Magnitude() string {
	if d.text != "" {
		return d.text
	}
	return strconv.FormatFloat(d.Value, 'g', -1, 64)
}

// String formats the delay with its unit suffix.
func (d Delay) String() string {
	return d.Magnitude() + string(d.Unit)
}

// ParseDelay normalizes a delay string with a trailing unit suffix.
// Suffixes are matched longest first: "ms", then "us", then a bare "s".
// A string with no unit suffix is a magnitude in milliseconds.
func ParseDelay(s string) (Delay, error) {
	var (
		magnitude string
		unit      Unit
	)
	switch {
	case strings.HasSuffix(s, "ms"):
		magnitude, unit = strings.TrimSuffix(s, "ms"), Milliseconds
	case strings.HasSuffix(s, "us"):
		magnitude, unit = strings.TrimSuffix(s, "us"), Microseconds
	case strings.HasSuffix(s, "s"):
		magnitude, unit = strings.TrimSuffix(s, "s"), Seconds
	default:
		magnitude, unit = s, Milliseconds
	}

	v, err := strconv.ParseFloat(magnitude, 64)
	if err != nil {
		return Delay{}, fmt.Errorf("%w: %q", ErrInvalidDelay, s)
	}
	return Delay{Value: v, Unit: unit, text: magnitude}, nil
}
