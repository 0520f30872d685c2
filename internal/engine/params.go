package engine

import (
	"math"

	"github.com/louis-kldzj/game-tools/internal/config"
	"github.com/louis-kldzj/game-tools/internal/core"
)

// Parameters returns the options as shown on the panel.
func (e *Engine) Parameters() core.ParameterSnapshot {
	return e.state.Options.Parameters()
}

// ParameterControls lists the panel controls.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return e.state.Options.ParameterControls()
}

// SetFloatParameter updates a numeric option from the panel.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	if key != "density" || math.IsNaN(value) {
		return false
	}
	value = math.Min(math.Max(value, config.MinDensity), config.MaxDensity)
	return e.Apply(config.SetDensity(value)) == nil
}

// ToggleParameter flips a boolean option or advances the palette.
func (e *Engine) ToggleParameter(key string) bool {
	m, ok := config.MutationForParameter(key)
	if !ok {
		return false
	}
	return e.Apply(m) == nil
}

// HandleKey applies the mutation bound to r. It reports whether r is bound.
func (e *Engine) HandleKey(r rune) bool {
	m, ok := config.MutationForKey(r)
	if !ok {
		return false
	}
	// Apply logs rejected mutations; a bound key is handled either way.
	_ = e.Apply(m)
	return true
}
