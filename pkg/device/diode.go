package device

import (
	"math"

	"mnaspice/internal/consts"
	"mnaspice/pkg/mna"
)

// diodeUpperClamp bounds the junction voltage used for linearization
// from above so a wild Newton guess never drives exp() to overflow.
// The lower bound, -15*n*Vt, depends on the ideality factor and is
// computed per call in stamp.
const diodeUpperClamp = 0.7

// gMin floors the linearized conductance so a reverse-biased diode
// never contributes a zero row to the Jacobian.
const gMin = 1e-12

// Diode is a nonlinear Shockley diode, linearized about the current
// Newton guess on every StampNonlinear call.
type Diode struct {
	name  string
	nodes []int
	Is    float64 // saturation current
	N     float64 // ideality factor
}

// NewDiode creates a diode with anode n1 and cathode n2.
func NewDiode(name string, n1, n2 int, is, n float64) *Diode {
	return &Diode{name: name, nodes: []int{n1, n2}, Is: is, N: n}
}

func (d *Diode) Name() string           { return d.name }
func (d *Diode) Nodes() []int           { return d.nodes }
func (d *Diode) SetNodes(nodes []int)   { d.nodes = nodes }
func (d *Diode) ExtraVar() ExtraVar     { return ExtraVar{} }
func (d *Diode) AllocateExtraVar(int)   {}
func (d *Diode) Init()                  {}
func (d *Diode) Free()                  {}

func (d *Diode) stamp(ctx *mna.StampContext, x []float64) {
	n1, n2 := d.nodes[0], d.nodes[1]

	va, vc := 0.0, 0.0
	if n1 >= 0 {
		va = x[n1]
	}
	if n2 >= 0 {
		vc = x[n2]
	}
	vd := va - vc

	nVt := d.N * consts.ThermalVoltage
	lowerClamp := -15 * nVt
	if vd > diodeUpperClamp {
		vd = diodeUpperClamp
	}
	if vd < lowerClamp {
		vd = lowerClamp
	}

	e := math.Exp(vd / nVt)
	id := d.Is * (e - 1)
	gEq := d.Is / nVt * e
	if gEq < gMin {
		gEq = gMin
	}
	iEq := id - gEq*vd

	ctx.AddA(n1, n1, gEq)
	ctx.AddA(n2, n2, gEq)
	ctx.AddA(n1, n2, -gEq)
	ctx.AddA(n2, n1, -gEq)
	ctx.AddZ(n1, -iEq)
	ctx.AddZ(n2, iEq)
}

func (d *Diode) StampNonlinear(ctx *mna.StampContext, it *IterationState) {
	d.stamp(ctx, it.XCurrent)
}

// StampTransient delegates to the DC stamp: the diode's own
// capacitance is outside this module's scope, so its transient
// behavior is the same memoryless nonlinearity as at DC, linearized
// about the previous time step's solution.
func (d *Diode) StampTransient(ctx *mna.StampContext, ts *TimeStepState) {
	d.stamp(ctx, ts.XPrev)
}

func (d *Diode) UpdateState(x []float64, ts *TimeStepState) {}
