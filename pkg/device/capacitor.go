package device

import "mnaspice/pkg/mna"

// Capacitor is an open circuit at DC and a companion resistor-plus-
// source at each transient step, per the active IntegrationMethod.
type Capacitor struct {
	name    string
	nodes   []int
	C       float64
	vPrev   float64
	vPrev2  float64
	iPrev   float64
}

// NewCapacitor creates a capacitor of c farads between node indices
// n1 and n2. c must be positive.
func NewCapacitor(name string, n1, n2 int, c float64) *Capacitor {
	return &Capacitor{name: name, nodes: []int{n1, n2}, C: c}
}

func (d *Capacitor) Name() string         { return d.name }
func (d *Capacitor) Nodes() []int         { return d.nodes }
func (d *Capacitor) SetNodes(nodes []int) { d.nodes = nodes }
func (d *Capacitor) ExtraVar() ExtraVar   { return ExtraVar{} }
func (d *Capacitor) AllocateExtraVar(int) {}
func (d *Capacitor) Init()                {}
func (d *Capacitor) Free()                {}

// StampNonlinear is a no-op: at DC a capacitor is an open circuit.
func (d *Capacitor) StampNonlinear(ctx *mna.StampContext, it *IterationState) {}

func (d *Capacitor) StampTransient(ctx *mna.StampContext, ts *TimeStepState) {
	n1, n2 := d.nodes[0], d.nodes[1]
	m := ts.Method
	h := ts.H

	gEq := m.Alpha0 * d.C / h
	iEq := (m.Alpha1*d.C/h)*d.vPrev + (m.Alpha2*d.C/h)*d.vPrev2
	if m.Trapezoidal {
		iEq += d.iPrev
	}

	ctx.AddA(n1, n1, gEq)
	ctx.AddA(n2, n2, gEq)
	ctx.AddA(n1, n2, -gEq)
	ctx.AddA(n2, n1, -gEq)
	ctx.AddZ(n1, -iEq)
	ctx.AddZ(n2, iEq)
}

// UpdateState shifts the capacitor's voltage/current history after a
// converged transient step, deriving the branch current from the
// companion model just stamped.
func (d *Capacitor) UpdateState(x []float64, ts *TimeStepState) {
	v1, v2 := 0.0, 0.0
	if n1 := d.nodes[0]; n1 >= 0 {
		v1 = x[n1]
	}
	if n2 := d.nodes[1]; n2 >= 0 {
		v2 = x[n2]
	}
	vNew := v1 - v2

	m := ts.Method
	h := ts.H
	gEq := m.Alpha0 * d.C / h
	iEqHistory := (m.Alpha1*d.C/h)*d.vPrev + (m.Alpha2*d.C/h)*d.vPrev2
	if m.Trapezoidal {
		iEqHistory += d.iPrev
	}
	iNew := gEq*vNew - iEqHistory

	d.vPrev2 = d.vPrev
	d.vPrev = vNew
	d.iPrev = iNew
}
