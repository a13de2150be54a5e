package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Cardinal is one of the 16 compass points, e.g. "N", "ENE", "SSW".
type Cardinal string

// compassStep is the angular width of one compass point.
const compassStep = 22.5

// compass lists the points clockwise from north.
var compass = [16]Cardinal{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Compass returns the 16 points clockwise from north.
func Compass() []Cardinal {
	out := make([]Cardinal, len(compass))
	copy(out, compass[:])
	return out
}

// ParseCardinal normalizes s and reports whether it is a compass point.
func ParseCardinal(s string) (Cardinal, bool) {
	c := Cardinal(strings.ToUpper(strings.TrimSpace(s)))
	for _, p := range compass {
		if p == c {
			return c, true
		}
	}
	return c, false
}

// UnmarshalJSON accepts any letter case and surrounding blanks. A blank
// direction decodes as absent; anything else must name a compass point.
func (c *Cardinal) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("wind direction: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		*c = ""
		return nil
	}
	p, ok := ParseCardinal(s)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCardinal, s)
	}
	*c = p
	return nil
}

// Degrees returns the bearing of c. Unknown points report false.
func (c Cardinal) Degrees() (float64, bool) {
	for i, p := range compass {
		if p == c {
			return float64(i) * compassStep, true
		}
	}
	return 0, false
}

// Nearest snaps a bearing to the compass point with the smallest absolute
// degree difference. The comparison is linear, not circular, and the first
// point wins on ties.
func Nearest(deg float64) Cardinal {
	best := compass[0]
	bestDiff := math.Inf(1)
	for i, p := range compass {
		diff := math.Abs(float64(i)*compassStep - deg)
		if diff < bestDiff {
			best, bestDiff = p, diff
		}
	}
	return best
}

// Rotate adds offset degrees to a bearing modulo 360.
func Rotate(deg, offset float64) float64 {
	r := math.Mod(deg+offset, 360)
	if r < 0 {
		r += 360
	}
	return r
}
