package engine

// Clock tracks the elapsed simulation time of one integrator. Only the
// integrator mutates it, at the end of each sub-step; everyone else reads
// copies. There is no shared process clock: integrators advance alone.
type Clock struct {
	time     float64
	steps    int
	subSteps int
}

// Time reports the elapsed simulation time.
func (c Clock) Time() float64 { return c.time }

// Steps reports completed step calls, counting a sub-stepped request once.
func (c Clock) Steps() int { return c.steps }

// SubSteps reports every advancement, including silent sub-steps.
func (c Clock) SubSteps() int { return c.subSteps }

func (c *Clock) advance(dt float64) {
	c.time += dt
	c.subSteps++
}

func (c *Clock) complete() { c.steps++ }

func (c *Clock) reset() { *c = Clock{} }
