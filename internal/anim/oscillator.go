// Package anim drives the bounded ping-pong oscillation of scalar material
// parameters. Any material opts in by exposing a ValueHolder and an
// Oscillation; the driver never sees the concrete material type.
package anim

import (
	"math"

	"github.com/louis-kldzj/game-tools/internal/core"
)

const (
	// Range is the default distance between start and target.
	Range = 10.0
	// DefaultSpeed is the interpolation rate per second.
	DefaultSpeed = 0.5
	// arrival is the fraction of the span treated as having arrived, so the
	// exponential approach terminates.
	arrival = 1e-3
)

// ValueHolder exposes the animated scalar of a material.
type ValueHolder interface {
	Get() float64
	Set(v float64)
}

// Oscillation tracks the progress of one ping-pong animation.
type Oscillation interface {
	Progress() float64
	SetProgress(v float64)
	Start() float64
	Target() float64
	Advancing() bool
	Speed() float64
	HasReachedTarget() bool
	Flip()
}

// DefaultOscillation is the stock Oscillation.
type DefaultOscillation struct {
	progress  float64
	start     float64
	target    float64
	advancing bool
	speed     float64
}

// Begin returns an oscillation from start towards start+delta.
func Begin(start, delta, speed float64) *DefaultOscillation {
	o := &DefaultOscillation{speed: speed}
	o.Reset(start, start+delta)
	return o
}

// Reset restarts the oscillation between start and target, advancing.
func (o *DefaultOscillation) Reset(start, target float64) {
	o.start = start
	o.target = target
	o.progress = start
	o.advancing = true
}

func (o *DefaultOscillation) Progress() float64     { return o.progress }
func (o *DefaultOscillation) SetProgress(v float64) { o.progress = v }
func (o *DefaultOscillation) Start() float64        { return o.start }
func (o *DefaultOscillation) Target() float64       { return o.target }
func (o *DefaultOscillation) Advancing() bool       { return o.advancing }
func (o *DefaultOscillation) Speed() float64        { return o.speed }

// HasReachedTarget compares progress against the target in the direction of
// travel.
func (o *DefaultOscillation) HasReachedTarget() bool {
	if o.target >= o.start {
		return o.progress >= o.target
	}
	return o.progress <= o.target
}

// Flip swaps start and target and reverses direction.
func (o *DefaultOscillation) Flip() {
	o.start, o.target = o.target, o.start
	o.advancing = !o.advancing
}

// Step advances one pair by dt seconds and returns the new value.
func Step(v ValueHolder, o Oscillation, dt float64) float64 {
	if o.HasReachedTarget() {
		o.Flip()
	}
	start, target := o.Start(), o.Target()
	cur := o.Progress()
	if math.IsNaN(cur) {
		cur = start
	}
	k := o.Speed() * dt
	if !(k > 0) {
		k = 0
	} else if k > 1 {
		k = 1
	}
	next := cur + (target-cur)*k
	if math.Abs(target-next) <= arrival*math.Abs(target-start) {
		next = target
	}
	lo, hi := math.Min(start, target), math.Max(start, target)
	next = math.Min(math.Max(next, lo), hi)
	o.SetProgress(next)
	v.Set(next)
	return next
}

type entry struct {
	id    core.InstanceID
	value ValueHolder
	osc   Oscillation
}

// Oscillator holds every registered pair and advances them each tick.
type Oscillator struct {
	entries []entry
}

// New returns an empty oscillator.
func New() *Oscillator { return &Oscillator{} }

// Add registers a pair under id, replacing any previous registration.
func (a *Oscillator) Add(id core.InstanceID, v ValueHolder, o Oscillation) {
	a.Remove(id)
	a.entries = append(a.entries, entry{id: id, value: v, osc: o})
}

// Remove drops the registration for id.
func (a *Oscillator) Remove(id core.InstanceID) bool {
	for i, e := range a.entries {
		if e.id == id {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveCategory drops every registration owned by cat and returns how many
// were removed.
func (a *Oscillator) RemoveCategory(cat core.Category) int {
	kept := a.entries[:0]
	for _, e := range a.entries {
		if e.id.Category != cat {
			kept = append(kept, e)
		}
	}
	removed := len(a.entries) - len(kept)
	for i := len(kept); i < len(a.entries); i++ {
		a.entries[i] = entry{}
	}
	a.entries = kept
	return removed
}

// Len reports the number of registered pairs.
func (a *Oscillator) Len() int { return len(a.entries) }

// Tick advances every pair by dt seconds when animate is set and returns
// how many were advanced.
func (a *Oscillator) Tick(dt float64, animate bool) int {
	if !animate || !(dt > 0) {
		return 0
	}
	for _, e := range a.entries {
		Step(e.value, e.osc, dt)
	}
	return len(a.entries)
}
