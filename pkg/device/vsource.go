package device

import "mnaspice/pkg/mna"

// VoltageSource is an independent DC voltage source forcing V volts
// between n1 (+) and n2 (-). It requests a branch-current variable
// at Init time.
type VoltageSource struct {
	name     string
	nodes    []int
	V        float64
	extraVar ExtraVar
}

// NewVoltageSource creates a voltage source forcing v volts between
// node n1 (+) and node n2 (-).
func NewVoltageSource(name string, n1, n2 int, v float64) *VoltageSource {
	return &VoltageSource{name: name, nodes: []int{n1, n2}, V: v}
}

func (d *VoltageSource) Name() string           { return d.name }
func (d *VoltageSource) Nodes() []int           { return d.nodes }
func (d *VoltageSource) SetNodes(nodes []int)   { d.nodes = nodes }
func (d *VoltageSource) ExtraVar() ExtraVar     { return d.extraVar }
func (d *VoltageSource) AllocateExtraVar(idx int) { d.extraVar.Allocate(idx) }
func (d *VoltageSource) Init()                  { d.extraVar.Request() }
func (d *VoltageSource) Free()                  {}

func (d *VoltageSource) stamp(ctx *mna.StampContext) {
	n1, n2 := d.nodes[0], d.nodes[1]
	k := d.extraVar.Index

	ctx.AddA(n1, k, 1)
	ctx.AddA(k, n1, 1)
	ctx.AddA(n2, k, -1)
	ctx.AddA(k, n2, -1)
	ctx.AddZ(k, d.V)
}

func (d *VoltageSource) StampNonlinear(ctx *mna.StampContext, it *IterationState) {
	d.stamp(ctx)
}

func (d *VoltageSource) StampTransient(ctx *mna.StampContext, ts *TimeStepState) {
	d.stamp(ctx)
}

func (d *VoltageSource) UpdateState(x []float64, ts *TimeStepState) {}
