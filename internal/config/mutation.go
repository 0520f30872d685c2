package config

import (
	"fmt"
	"math"
)

// Field names a boolean option.
type Field int

const (
	FieldStars Field = iota
	FieldDust
	FieldNebulae
	FieldPlanets
	FieldTile
	FieldDarken
	FieldTransparency
	FieldAnimate
	FieldOverlay

	numFields
)

var fieldKeys = [numFields]string{
	FieldStars:        "stars",
	FieldDust:         "dust",
	FieldNebulae:      "nebulae",
	FieldPlanets:      "planets",
	FieldTile:         "tile",
	FieldDarken:       "darken",
	FieldTransparency: "transparency",
	FieldAnimate:      "animate",
	FieldOverlay:      "overlay",
}

// Key returns the persisted-config key of the field.
func (f Field) Key() string {
	if f < 0 || f >= numFields {
		return ""
	}
	return fieldKeys[f]
}

func fieldForKey(key string) (Field, bool) {
	for i, k := range fieldKeys {
		if k == key {
			return Field(i), true
		}
	}
	return 0, false
}

func (o *Options) field(f Field) *bool {
	switch f {
	case FieldStars:
		return &o.Stars
	case FieldDust:
		return &o.Dust
	case FieldNebulae:
		return &o.Nebulae
	case FieldPlanets:
		return &o.Planets
	case FieldTile:
		return &o.Tile
	case FieldDarken:
		return &o.Darken
	case FieldTransparency:
		return &o.Transparency
	case FieldAnimate:
		return &o.Animate
	case FieldOverlay:
		return &o.Overlay
	}
	return nil
}

// Get returns the value of a boolean option.
func (o Options) Get(f Field) bool {
	if p := o.field(f); p != nil {
		return *p
	}
	return false
}

// MutationKind enumerates the changes input handlers may request.
type MutationKind int

const (
	// MutateToggle flips one boolean field.
	MutateToggle MutationKind = iota
	// MutateNextPalette advances the palette selector.
	MutateNextPalette
	// MutateSetDensity replaces the density.
	MutateSetDensity
	// MutateScaleDensity multiplies the density, clamped to the bounds.
	MutateScaleDensity
	// MutateRefresh changes nothing but still regenerates everything.
	MutateRefresh
	// MutateReplace swaps in a whole new option set, as loaded from disk.
	MutateReplace
)

// Mutation is one requested change to the options.
type Mutation struct {
	Kind    MutationKind
	Field   Field
	Value   float64
	Options Options
}

// Toggle returns a mutation flipping f.
func Toggle(f Field) Mutation { return Mutation{Kind: MutateToggle, Field: f} }

// NextPalette returns a mutation advancing the palette.
func NextPalette() Mutation { return Mutation{Kind: MutateNextPalette} }

// SetDensity returns a mutation replacing the density.
func SetDensity(v float64) Mutation { return Mutation{Kind: MutateSetDensity, Value: v} }

// ScaleDensity returns a mutation multiplying the density by factor.
func ScaleDensity(factor float64) Mutation { return Mutation{Kind: MutateScaleDensity, Value: factor} }

// Refresh returns a mutation that only re-rolls the scenery.
func Refresh() Mutation { return Mutation{Kind: MutateRefresh} }

// Replace returns a mutation installing o wholesale.
func Replace(o Options) Mutation { return Mutation{Kind: MutateReplace, Options: o} }

func (m Mutation) String() string {
	switch m.Kind {
	case MutateToggle:
		return "toggle " + m.Field.Key()
	case MutateNextPalette:
		return "next palette"
	case MutateSetDensity:
		return fmt.Sprintf("density = %g", m.Value)
	case MutateScaleDensity:
		return fmt.Sprintf("density x %g", m.Value)
	case MutateRefresh:
		return "refresh"
	case MutateReplace:
		return "replace options"
	}
	return "unknown mutation"
}

// Apply mutates the options and reports whether anything must regenerate.
// A failed mutation leaves o unchanged.
func (o *Options) Apply(m Mutation) (bool, error) {
	switch m.Kind {
	case MutateToggle:
		p := o.field(m.Field)
		if p == nil {
			return false, fmt.Errorf("config: unknown field %d", int(m.Field))
		}
		*p = !*p
		return true, nil
	case MutateNextPalette:
		o.Palette = o.Palette.Next()
		return true, nil
	case MutateSetDensity:
		return o.setDensity(m.Value)
	case MutateScaleDensity:
		if !(m.Value > 0) || math.IsInf(m.Value, 0) {
			return false, fmt.Errorf("%w: factor %v", ErrInvalidDensity, m.Value)
		}
		v := math.Min(math.Max(o.Density*m.Value, MinDensity), MaxDensity)
		return o.setDensity(v)
	case MutateRefresh:
		return true, nil
	case MutateReplace:
		if err := m.Options.Validate(); err != nil {
			return false, err
		}
		changed := *o != m.Options
		*o = m.Options
		return changed, nil
	}
	return false, fmt.Errorf("config: unknown mutation kind %d", int(m.Kind))
}

func (o *Options) setDensity(v float64) (bool, error) {
	if !(v > 0) || math.IsInf(v, 0) {
		return false, fmt.Errorf("%w: %v", ErrInvalidDensity, v)
	}
	if v == o.Density {
		return false, nil
	}
	o.Density = v
	return true, nil
}

// Binding ties a key to the mutation it requests.
type Binding struct {
	Key      rune
	Label    string
	Mutation Mutation
}

// Bindings lists the keyboard shortcuts shared by every front-end.
var Bindings = []Binding{
	{Key: 'c', Label: "next palette", Mutation: NextPalette()},
	{Key: 't', Label: "tile", Mutation: Toggle(FieldTile)},
	{Key: 'd', Label: "dust", Mutation: Toggle(FieldDust)},
	{Key: 'a', Label: "transparency", Mutation: Toggle(FieldTransparency)},
	{Key: 's', Label: "stars", Mutation: Toggle(FieldStars)},
	{Key: 'n', Label: "nebulae", Mutation: Toggle(FieldNebulae)},
	{Key: 'w', Label: "darken", Mutation: Toggle(FieldDarken)},
	{Key: 'p', Label: "planets", Mutation: Toggle(FieldPlanets)},
	{Key: 'm', Label: "animate", Mutation: Toggle(FieldAnimate)},
	{Key: 'h', Label: "overlay", Mutation: Toggle(FieldOverlay)},
	{Key: ' ', Label: "regenerate", Mutation: Refresh()},
	{Key: '+', Label: "density up", Mutation: ScaleDensity(DensityFactor)},
	{Key: '-', Label: "density down", Mutation: ScaleDensity(1 / DensityFactor)},
}

// MutationForKey resolves a pressed key. Upper-case letters and '=' (the
// unshifted '+') are accepted too.
func MutationForKey(r rune) (Mutation, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if r == '=' {
		r = '+'
	}
	for _, b := range Bindings {
		if b.Key == r {
			return b.Mutation, true
		}
	}
	return Mutation{}, false
}

// ShortcutFor returns the key bound to toggling f.
func ShortcutFor(f Field) rune {
	for _, b := range Bindings {
		if b.Mutation.Kind == MutateToggle && b.Mutation.Field == f {
			return b.Key
		}
	}
	return 0
}

// MutationForParameter maps an options-panel key to its mutation.
func MutationForParameter(key string) (Mutation, bool) {
	if key == keyPalette {
		return NextPalette(), true
	}
	if f, ok := fieldForKey(key); ok {
		return Toggle(f), true
	}
	return Mutation{}, false
}
