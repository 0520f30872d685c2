package palette

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Fallback replaces any colour stop that cannot be parsed.
var Fallback = colorful.Color{}

// ColorParseError reports a malformed hex colour stop.
type ColorParseError struct {
	Stop string
	Err  error
}

func (e *ColorParseError) Error() string {
	return fmt.Sprintf("palette: invalid colour stop %q: %v", e.Stop, e.Err)
}

func (e *ColorParseError) Unwrap() error { return e.Err }

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(hex string) (colorful.Color, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 7 {
		return Fallback, &ColorParseError{Stop: hex, Err: fmt.Errorf("expected 6 hex digits, got %d", len(s)-1)}
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Fallback, &ColorParseError{Stop: hex, Err: err}
	}
	return c, nil
}

// HexOrFallback parses a stop and substitutes Fallback on error.
func HexOrFallback(hex string) colorful.Color {
	c, err := ParseHex(hex)
	if err != nil {
		return Fallback
	}
	return c
}
