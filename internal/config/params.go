package config

import (
	"strconv"

	"github.com/louis-kldzj/game-tools/internal/core"
)

const (
	keyDensity = "density"
	keyPalette = "palette"
)

// Parameters returns the options as panel groups.
func (o Options) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "Layers",
			Params: []core.Parameter{
				boolParam(FieldStars, "Stars", o.Stars),
				boolParam(FieldDust, "Dust", o.Dust),
				boolParam(FieldNebulae, "Nebulae", o.Nebulae),
				boolParam(FieldPlanets, "Planets", o.Planets),
			},
		},
		{
			Name: "Style",
			Params: []core.Parameter{
				{Key: keyPalette, Label: "Palette", Type: core.ParamTypeChoice, Value: o.Palette.String(), Shortcut: 'c'},
				floatParam(keyDensity, "Density", o.Density),
				boolParam(FieldTile, "Tile", o.Tile),
				boolParam(FieldDarken, "Darken", o.Darken),
				boolParam(FieldTransparency, "Transparency", o.Transparency),
			},
		},
		{
			Name: "Motion",
			Params: []core.Parameter{
				boolParam(FieldAnimate, "Animate", o.Animate),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the panel controls that change the options.
func (o Options) ParameterControls() []core.ParameterControl {
	controls := []core.ParameterControl{
		{Key: keyPalette, Label: "Palette", Type: core.ParamTypeChoice},
		{
			Key: keyDensity, Label: "Density", Type: core.ParamTypeFloat,
			Step: DensityFactor, Factor: true,
			Min: MinDensity, Max: MaxDensity, HasMin: true, HasMax: true,
		},
	}
	for f := FieldStars; f < FieldOverlay; f++ {
		controls = append(controls, core.ParameterControl{Key: f.Key(), Label: label(f), Type: core.ParamTypeBool})
	}
	return controls
}

func label(f Field) string {
	k := f.Key()
	if k == "" {
		return ""
	}
	return string(k[0]-'a'+'A') + k[1:]
}

func boolParam(f Field, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:      f.Key(),
		Label:    label,
		Type:     core.ParamTypeBool,
		Value:    strconv.FormatBool(value),
		Shortcut: ShortcutFor(f),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
