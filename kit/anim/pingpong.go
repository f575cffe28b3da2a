// Package anim holds the fixed-step animation state used by the demos.
package anim

import "time"

// settle absorbs float drift when the value lands on a bound.
const settle = 1e-9

// PingPong is a scalar in [0,1] that advances by Step per tick and reverses direction
// when it reaches either bound.
type PingPong struct {
	Value float64
	Step  float64

	falling bool
}

// NewPingPong starts at 0 moving up.
func NewPingPong(step float64) *PingPong {
	return &PingPong{Step: step}
}

// Direction is +1 while rising and -1 while falling.
func (p *PingPong) Direction() int {
	if p.falling {
		return -1
	}
	return 1
}

// Tick advances one fixed step.
func (p *PingPong) Tick() {
	if p.falling {
		p.Value -= p.Step
	} else {
		p.Value += p.Step
	}
	switch {
	case p.Value >= 1-settle:
		p.Value = 1
		p.falling = true
	case p.Value <= settle:
		p.Value = 0
		p.falling = false
	}
}

// Clock converts elapsed wall time into whole fixed ticks of length Period, so the
// animation speed does not depend on the frame rate.
type Clock struct {
	Period time.Duration

	acc time.Duration
}

// Advance adds dt and returns how many ticks became due.
func (c *Clock) Advance(dt time.Duration) int {
	if c.Period <= 0 {
		return 1
	}
	if dt < 0 {
		dt = 0
	}
	c.acc += dt
	n := int(c.acc / c.Period)
	c.acc -= time.Duration(n) * c.Period
	return n
}
