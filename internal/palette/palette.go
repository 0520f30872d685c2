// Package palette holds the fixed colour schemes the scenery is painted with
// and derives gradient textures and background colours from them.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ID selects one of the built-in palettes.
type ID int

const (
	FunkyFutures ID = iota
	Borkfest
	Slso8
	Ammo8
	Nyx8

	count
)

// ErrDegenerateGradient reports a palette with fewer than two colour stops.
var ErrDegenerateGradient = errors.New("palette: at least two colour stops required")

// ErrUnknown reports a palette name that does not resolve.
var ErrUnknown = errors.New("palette: unknown palette")

// Palette is an immutable ordered list of colour stops. The first stop is
// reserved as the background colour.
type Palette struct {
	Name  string
	Stops []colorful.Color
}

// New validates and parses a palette. Malformed stops are replaced with the
// fallback colour and reported through the returned error; fewer than two
// stops fails with ErrDegenerateGradient and no palette.
func New(name string, hex []string) (Palette, error) {
	if len(hex) < 2 {
		return Palette{}, fmt.Errorf("%s: %w", name, ErrDegenerateGradient)
	}
	p := Palette{Name: name, Stops: make([]colorful.Color, len(hex))}
	var errs []error
	for i, h := range hex {
		c, err := ParseHex(h)
		if err != nil {
			errs = append(errs, err)
			c = Fallback
		}
		p.Stops[i] = c
	}
	return p, errors.Join(errs...)
}

var table = [count]struct {
	name string
	hex  []string
}{
	FunkyFutures: {"funky-futures", []string{"#20063b", "#2b0f54", "#ab1f65", "#ff4f69", "#fff7f8", "#ff8142", "#ffda45", "#3368dc", "#49e7ec"}},
	Borkfest:     {"borkfest", []string{"#171711", "#202215", "#3a2802", "#963c3c", "#ca5a2e", "#ff7831", "#f39949", "#ebc275", "#dfd785"}},
	Slso8:        {"slso8", []string{"#0d2b45", "#203c56", "#544e68", "#8d697a", "#d08159", "#ffaa5e", "#ffd4a3", "#ffecd6"}},
	Ammo8:        {"ammo8", []string{"#040c06", "#112318", "#1e3a29", "#305d42", "#4d8061", "#89a257", "#bedc7f", "#eeffcc"}},
	Nyx8:         {"nyx8", []string{"#08141e", "#0f2a3f", "#20394f", "#4e495f", "#816271", "#997577", "#c3a38a", "#f6d6bd"}},
}

var palettes = buildPalettes()

func buildPalettes() [count]Palette {
	var out [count]Palette
	for id, entry := range table {
		p, err := New(entry.name, entry.hex)
		if err != nil {
			log.Printf("palette %s: %v", entry.name, err)
		}
		if len(p.Stops) < 2 {
			p = Palette{Name: entry.name, Stops: []colorful.Color{Fallback, {R: 1, G: 1, B: 1}}}
		}
		out[id] = p
	}
	return out
}

// All returns every selector in cycle order.
func All() []ID {
	ids := make([]ID, count)
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// Valid reports whether the selector resolves to a built-in palette.
func (id ID) Valid() bool { return id >= 0 && id < count }

func (id ID) resolve() Palette {
	if !id.Valid() {
		return palettes[FunkyFutures]
	}
	return palettes[id]
}

// Next returns the successor selector, wrapping to the first after the last.
func (id ID) Next() ID {
	if !id.Valid() {
		return FunkyFutures
	}
	return (id + 1) % count
}

// String returns the palette name used in config files and the overlay.
func (id ID) String() string { return id.resolve().Name }

// Parse resolves a palette by name, case-insensitively.
func Parse(name string) (ID, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	for id, entry := range table {
		if entry.name == name {
			return ID(id), nil
		}
	}
	return FunkyFutures, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Stops returns every colour stop including the reserved background stop.
func (id ID) Stops() []colorful.Color {
	stops := id.resolve().Stops
	return append([]colorful.Color(nil), stops...)
}

// Colors returns the stops as 8-bit colours.
func (id ID) Colors() []color.NRGBA {
	stops := id.resolve().Stops
	out := make([]color.NRGBA, len(stops))
	for i, c := range stops {
		out[i] = toNRGBA(c)
	}
	return out
}

// VisibleStops returns the stops painted by gradients. The background stop is
// dropped when at least two stops remain after it.
func (id ID) VisibleStops() []colorful.Color {
	stops := id.resolve().Stops
	if len(stops) > 2 {
		stops = stops[1:]
	}
	return append([]colorful.Color(nil), stops...)
}

// Background returns the reserved first stop.
func (id ID) Background() color.NRGBA {
	return toNRGBA(id.resolve().Stops[0])
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
