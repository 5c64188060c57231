package device

import "mnaspice/pkg/mna"

// Resistor stamps a fixed conductance between its two terminals. It
// has no state and no transient behavior of its own.
type Resistor struct {
	name  string
	nodes []int
	R     float64
}

// NewResistor creates a resistor of r ohms between node indices n1
// and n2. r must be positive.
func NewResistor(name string, n1, n2 int, r float64) *Resistor {
	return &Resistor{name: name, nodes: []int{n1, n2}, R: r}
}

func (d *Resistor) Name() string         { return d.name }
func (d *Resistor) Nodes() []int         { return d.nodes }
func (d *Resistor) SetNodes(nodes []int) { d.nodes = nodes }
func (d *Resistor) ExtraVar() ExtraVar   { return ExtraVar{} }
func (d *Resistor) AllocateExtraVar(int) {}
func (d *Resistor) Init()                {}
func (d *Resistor) Free()                {}

func (d *Resistor) stamp(ctx *mna.StampContext) {
	n1, n2 := d.nodes[0], d.nodes[1]
	g := 1.0 / d.R

	ctx.AddA(n1, n1, g)
	ctx.AddA(n2, n2, g)
	ctx.AddA(n1, n2, -g)
	ctx.AddA(n2, n1, -g)
}

func (d *Resistor) StampNonlinear(ctx *mna.StampContext, it *IterationState) {
	d.stamp(ctx)
}

func (d *Resistor) StampTransient(ctx *mna.StampContext, ts *TimeStepState) {
	d.stamp(ctx)
}

func (d *Resistor) UpdateState(x []float64, ts *TimeStepState) {}
