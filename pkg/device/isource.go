package device

import "mnaspice/pkg/mna"

// CurrentSource is an independent DC current source forcing I amps
// from terminal n1 to terminal n2. It stamps only the RHS.
type CurrentSource struct {
	name  string
	nodes []int
	I     float64
}

// NewCurrentSource creates a current source forcing i amps from node
// n1 to node n2.
func NewCurrentSource(name string, n1, n2 int, i float64) *CurrentSource {
	return &CurrentSource{name: name, nodes: []int{n1, n2}, I: i}
}

func (d *CurrentSource) Name() string         { return d.name }
func (d *CurrentSource) Nodes() []int         { return d.nodes }
func (d *CurrentSource) SetNodes(nodes []int) { d.nodes = nodes }
func (d *CurrentSource) ExtraVar() ExtraVar   { return ExtraVar{} }
func (d *CurrentSource) AllocateExtraVar(int) {}
func (d *CurrentSource) Init()                {}
func (d *CurrentSource) Free()                {}

func (d *CurrentSource) stamp(ctx *mna.StampContext) {
	n1, n2 := d.nodes[0], d.nodes[1]
	ctx.AddZ(n1, -d.I)
	ctx.AddZ(n2, d.I)
}

func (d *CurrentSource) StampNonlinear(ctx *mna.StampContext, it *IterationState) {
	d.stamp(ctx)
}

func (d *CurrentSource) StampTransient(ctx *mna.StampContext, ts *TimeStepState) {
	d.stamp(ctx)
}

func (d *CurrentSource) UpdateState(x []float64, ts *TimeStepState) {}
