package anim

import (
	"testing"

	"github.com/louis-kldzj/game-tools/internal/core"
)

type holder struct{ v float64 }

func (h *holder) Get() float64  { return h.v }
func (h *holder) Set(v float64) { h.v = v }

func TestStepStaysWithinBounds(t *testing.T) {
	h := &holder{v: 4}
	o := Begin(4, Range, 2)
	lo, hi := 4.0, 4+Range
	for i := 0; i < 5000; i++ {
		v := Step(h, o, 1.0/60)
		if v < lo || v > hi {
			t.Fatalf("tick %d: value %v outside [%v, %v]", i, v, lo, hi)
		}
		if h.v != v {
			t.Fatalf("holder not updated: %v != %v", h.v, v)
		}
	}
}

func TestFlipsOnceBeforeOppositeBound(t *testing.T) {
	h := &holder{v: 0}
	o := Begin(0, Range, 3)
	flips := 0
	advancing := o.Advancing()
	reachedTop := false
	for i := 0; i < 10000 && !(reachedTop && h.v == 0); i++ {
		Step(h, o, 1.0/30)
		if o.Advancing() != advancing {
			flips++
			advancing = o.Advancing()
		}
		if h.v == Range {
			reachedTop = true
		}
	}
	if !reachedTop || h.v != 0 {
		t.Fatalf("oscillation stalled: top=%v value=%v", reachedTop, h.v)
	}
	if flips != 1 {
		t.Fatalf("expected exactly one flip between bounds, got %d", flips)
	}
}

func TestNegativeDeltaTravelsDown(t *testing.T) {
	h := &holder{v: 5}
	o := Begin(5, -2, 4)
	for i := 0; i < 1000; i++ {
		v := Step(h, o, 0.05)
		if v < 3 || v > 5 {
			t.Fatalf("value %v outside [3, 5]", v)
		}
	}
}

func TestOversizedStepSnapsToTarget(t *testing.T) {
	h := &holder{}
	o := Begin(0, 1, 100)
	if v := Step(h, o, 1); v != 1 {
		t.Fatalf("expected snap to target, got %v", v)
	}
	if !o.HasReachedTarget() {
		t.Fatalf("expected target reached")
	}
}

func TestOscillatorTickRespectsAnimateToggle(t *testing.T) {
	a := New()
	h := &holder{v: 1}
	a.Add(core.InstanceID{Category: core.Nebula}, h, Begin(1, Range, DefaultSpeed))
	if n := a.Tick(0.1, false); n != 0 || h.v != 1 {
		t.Fatalf("advanced while animate off: n=%d v=%v", n, h.v)
	}
	if n := a.Tick(0.1, true); n != 1 || h.v <= 1 {
		t.Fatalf("expected advance: n=%d v=%v", n, h.v)
	}
}

func TestRemoveCategory(t *testing.T) {
	a := New()
	for i := 0; i < 3; i++ {
		a.Add(core.InstanceID{Category: core.Planets, Index: i}, &holder{}, Begin(0, 1, 1))
	}
	a.Add(core.InstanceID{Category: core.Nebula}, &holder{}, Begin(0, 1, 1))
	if n := a.RemoveCategory(core.Planets); n != 3 {
		t.Fatalf("removed %d, want 3", n)
	}
	if a.Len() != 1 {
		t.Fatalf("len %d, want 1", a.Len())
	}
	if !a.Remove(core.InstanceID{Category: core.Nebula}) || a.Len() != 0 {
		t.Fatalf("remove by id failed")
	}
}

func TestAddReplacesSameID(t *testing.T) {
	a := New()
	id := core.InstanceID{Category: core.Stars, Generation: 2, Index: 7}
	a.Add(id, &holder{}, Begin(0, 1, 1))
	a.Add(id, &holder{}, Begin(0, 1, 1))
	if a.Len() != 1 {
		t.Fatalf("duplicate registration, len %d", a.Len())
	}
}
