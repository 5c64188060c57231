package device

import "mnaspice/pkg/mna"

// Inductor is a zero-volt short circuit at DC and a companion
// resistor-plus-source at each transient step, per the active
// IntegrationMethod. It requests a branch-current variable at Init.
type Inductor struct {
	name     string
	nodes    []int
	L        float64
	extraVar ExtraVar
	iPrev    float64
	iPrev2   float64
	vPrev    float64
}

// NewInductor creates an inductor of l henries between node indices
// n1 and n2. l must be positive.
func NewInductor(name string, n1, n2 int, l float64) *Inductor {
	return &Inductor{name: name, nodes: []int{n1, n2}, L: l}
}

func (d *Inductor) Name() string           { return d.name }
func (d *Inductor) Nodes() []int           { return d.nodes }
func (d *Inductor) SetNodes(nodes []int)   { d.nodes = nodes }
func (d *Inductor) ExtraVar() ExtraVar     { return d.extraVar }
func (d *Inductor) AllocateExtraVar(idx int) { d.extraVar.Allocate(idx) }
func (d *Inductor) Init()                  { d.extraVar.Request() }
func (d *Inductor) Free()                  {}

// StampNonlinear treats the inductor as a zero-volt voltage source:
// at DC, an inductor is a short circuit.
func (d *Inductor) StampNonlinear(ctx *mna.StampContext, it *IterationState) {
	n1, n2 := d.nodes[0], d.nodes[1]
	k := d.extraVar.Index

	ctx.AddA(n1, k, 1)
	ctx.AddA(k, n1, 1)
	ctx.AddA(n2, k, -1)
	ctx.AddA(k, n2, -1)
}

func (d *Inductor) StampTransient(ctx *mna.StampContext, ts *TimeStepState) {
	n1, n2 := d.nodes[0], d.nodes[1]
	k := d.extraVar.Index
	m := ts.Method
	h := ts.H

	rEq := m.Beta0 * d.L / h
	vEq := (m.Beta1*d.L/h)*d.iPrev + (m.Beta2*d.L/h)*d.iPrev2
	if m.Trapezoidal {
		vEq += d.vPrev
	}

	ctx.AddA(n1, k, 1)
	ctx.AddA(k, n1, 1)
	ctx.AddA(n2, k, -1)
	ctx.AddA(k, n2, -1)
	ctx.AddA(k, k, -rEq)
	ctx.AddZ(k, -vEq)
}

// UpdateState shifts the inductor's current/voltage history after a
// converged transient step.
func (d *Inductor) UpdateState(x []float64, ts *TimeStepState) {
	v1, v2 := 0.0, 0.0
	if n1 := d.nodes[0]; n1 >= 0 {
		v1 = x[n1]
	}
	if n2 := d.nodes[1]; n2 >= 0 {
		v2 = x[n2]
	}

	d.iPrev2 = d.iPrev
	d.iPrev = x[d.extraVar.Index]
	d.vPrev = v1 - v2
}
