// Package device implements the six circuit-element variants and the
// polymorphic lifecycle contract the Circuit and DC driver dispatch
// against uniformly.
package device

import "mnaspice/pkg/mna"

// ExtraVarState encodes the three-state protocol a device uses to
// request a branch-current variable, replacing the source's raw
// -1/-2/>=0 sentinel convention with a self-documenting tagged enum.
type ExtraVarState int

const (
	// ExtraVarNone means the device needs no branch-current variable.
	ExtraVarNone ExtraVarState = iota
	// ExtraVarRequested means Init asked for one; Finalize has not
	// yet granted an index.
	ExtraVarRequested
	// ExtraVarAllocated means the Circuit has granted an index.
	ExtraVarAllocated
)

// ExtraVar tracks a device's branch-current variable, if any.
type ExtraVar struct {
	State ExtraVarState
	Index int
}

// Request marks the extra variable as needed; Circuit.Finalize will
// grant it an index during its second pass.
func (e *ExtraVar) Request() { e.State = ExtraVarRequested }

// Allocate grants idx to a requested extra variable.
func (e *ExtraVar) Allocate(idx int) {
	e.State = ExtraVarAllocated
	e.Index = idx
}

// Legacy returns the -1/-2/>=0 sentinel the wire-level protocol
// documents, for callers that still reason in those terms.
func (e ExtraVar) Legacy() int {
	switch e.State {
	case ExtraVarRequested:
		return -2
	case ExtraVarAllocated:
		return e.Index
	default:
		return -1
	}
}

// IterationState is handed to StampNonlinear on every Newton-Raphson
// iteration. Linear devices ignore it.
type IterationState struct {
	Iter     int
	XCurrent []float64
	TolAbs   float64
	TolRel   float64
}

// TimeStepState is handed to StampTransient / UpdateState. Method is
// the integration rule currently in effect; H is the step size; XPrev
// is the solution vector from the last converged time step, which the
// diode linearizes about in its StampTransient (the other memoryless
// devices do not read it).
type TimeStepState struct {
	Time   float64
	H      float64
	Method mna.IntegrationMethod
	XPrev  []float64
}

// Device is the uniform polymorphic contract every circuit element
// implements. The core never inspects which concrete variant it is
// holding; it only calls these operations.
type Device interface {
	// Name returns the device's display name (e.g. "R1").
	Name() string
	// Nodes returns the terminal references: node indices before
	// Circuit.Finalize, variable indices (ground = -1) after.
	Nodes() []int
	SetNodes(nodes []int)
	// ExtraVar reports this device's branch-current variable state.
	ExtraVar() ExtraVar
	// AllocateExtraVar grants idx to a device that requested one
	// during Init. Called only by Circuit.Finalize.
	AllocateExtraVar(idx int)

	// Init runs once at finalize time, before extra-variable
	// allocation. A device that needs a branch current calls its own
	// ExtraVar.Request().
	Init()
	// StampNonlinear appends this device's Jacobian/RHS contribution
	// for the current Newton guess. Linear devices ignore it.
	StampNonlinear(ctx *mna.StampContext, it *IterationState)
	// StampTransient appends the transient-equivalent contribution,
	// consulting ts.Method and stored history. Memoryless devices
	// delegate to StampNonlinear.
	StampTransient(ctx *mna.StampContext, ts *TimeStepState)
	// UpdateState shifts stored history after a converged transient
	// step. No-op for memoryless devices.
	UpdateState(x []float64, ts *TimeStepState)
	// Free releases device-owned resources. No-op for every variant
	// in this package (none hold external resources) but kept to
	// satisfy the lifecycle contract uniformly.
	Free()
}
