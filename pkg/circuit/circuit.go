// Package circuit owns node and device bookkeeping and the
// finalization protocol that assigns the global variable index space.
package circuit

import (
	"errors"
	"fmt"
	"strings"

	"mnaspice/pkg/device"
)

// ErrAlreadyFinalized is returned by AddNode/AddDevice once the
// circuit has been finalized.
var ErrAlreadyFinalized = errors.New("circuit: already finalized")

// ErrNoVariables is returned by Finalize when the circuit has zero
// non-ground nodes.
var ErrNoVariables = errors.New("circuit: no non-ground nodes")

// Node is a named terminal. Index 0 is always ground, with name "0"
// and VarIndex -1.
type Node struct {
	Name     string
	VarIndex int
}

// Circuit owns the ordered collection of nodes and devices and
// coordinates the finalization protocol.
type Circuit struct {
	nodes        []Node
	nodeIndex    map[string]int
	devices      []device.Device
	numVars      int
	numExtraVars int
	finalized    bool
}

// New creates an empty circuit with the ground node already present
// at index 0.
func New() *Circuit {
	c := &Circuit{
		nodeIndex: make(map[string]int),
	}
	c.nodes = append(c.nodes, Node{Name: "0", VarIndex: -1})
	c.nodeIndex["0"] = 0
	return c
}

func isGroundName(name string) bool {
	switch strings.ToLower(name) {
	case "0", "gnd", "ground":
		return true
	}
	return false
}

// AddNode is idempotent: ground aliases always return 0; an existing
// name returns its index; otherwise a node is appended and its new
// index returned. Rejected after Finalize.
func (c *Circuit) AddNode(name string) (int, error) {
	if c.finalized {
		return -1, ErrAlreadyFinalized
	}
	if isGroundName(name) {
		return 0, nil
	}
	if idx, ok := c.nodeIndex[name]; ok {
		return idx, nil
	}
	idx := len(c.nodes)
	c.nodes = append(c.nodes, Node{Name: name, VarIndex: -1})
	c.nodeIndex[name] = idx
	return idx, nil
}

// GetNode looks up a node's index by name, returning -1 if absent.
func (c *Circuit) GetNode(name string) int {
	if isGroundName(name) {
		return 0
	}
	if idx, ok := c.nodeIndex[name]; ok {
		return idx
	}
	return -1
}

// GetVarIndex returns the variable index assigned to a node index,
// or -1 if out of range or unassigned.
func (c *Circuit) GetVarIndex(nodeIndex int) int {
	if nodeIndex < 0 || nodeIndex >= len(c.nodes) {
		return -1
	}
	return c.nodes[nodeIndex].VarIndex
}

// AddDevice appends d to the ordered device collection. Rejected
// after Finalize.
func (c *Circuit) AddDevice(d device.Device) error {
	if c.finalized {
		return ErrAlreadyFinalized
	}
	c.devices = append(c.devices, d)
	return nil
}

// Devices returns the ordered device collection.
func (c *Circuit) Devices() []device.Device { return c.devices }

// NumVars returns the finalized variable count (node voltages plus
// allocated extra variables).
func (c *Circuit) NumVars() int { return c.numVars }

// NumExtraVars returns the number of allocated branch-current
// variables.
func (c *Circuit) NumExtraVars() int { return c.numExtraVars }

// Finalized reports whether Finalize has run.
func (c *Circuit) Finalized() bool { return c.finalized }

// Nodes returns the ordered node collection, including ground at
// index 0.
func (c *Circuit) Nodes() []Node { return c.nodes }

// Finalize assigns variable indices to non-ground nodes, runs each
// device's Init (granting any requested extra variable), and rewrites
// every device's terminal references from node indices to variable
// indices. After this call the circuit's topology is immutable.
func (c *Circuit) Finalize() error {
	if c.finalized {
		return ErrAlreadyFinalized
	}

	varIdx := 0
	for i := range c.nodes {
		if i == 0 {
			c.nodes[i].VarIndex = -1
			continue
		}
		c.nodes[i].VarIndex = varIdx
		varIdx++
	}

	c.numVars = varIdx
	if c.numVars <= 0 {
		return ErrNoVariables
	}
	c.numExtraVars = 0

	for _, d := range c.devices {
		d.Init()
		if d.ExtraVar().State == device.ExtraVarRequested {
			d.AllocateExtraVar(c.numVars + c.numExtraVars)
			c.numExtraVars++
		}
	}

	c.numVars += c.numExtraVars

	// Unconditionally rewrite terminal node-indices to variable
	// indices, removing the ambiguity of leaving this to the caller.
	for _, d := range c.devices {
		nodes := d.Nodes()
		rewritten := make([]int, len(nodes))
		for i, nodeIdx := range nodes {
			if nodeIdx < 0 || nodeIdx >= len(c.nodes) {
				rewritten[i] = -1
				continue
			}
			rewritten[i] = c.nodes[nodeIdx].VarIndex
		}
		d.SetNodes(rewritten)
	}

	c.finalized = true
	return nil
}

// String renders a short summary of the circuit's bookkeeping state.
func (c *Circuit) String() string {
	return fmt.Sprintf("Circuit: %d nodes, %d devices, %d vars (%d extra), finalized=%v",
		len(c.nodes), len(c.devices), c.numVars, c.numExtraVars, c.finalized)
}
