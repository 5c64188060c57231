package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"mnaspice/pkg/circuit"
	"mnaspice/pkg/device"
)

type CircuitSuite struct {
	suite.Suite
}

func TestCircuitSuite(t *testing.T) {
	suite.Run(t, new(CircuitSuite))
}

func (s *CircuitSuite) TestGroundAliasesShareIndexZero() {
	c := circuit.New()
	for _, name := range []string{"0", "gnd", "GND", "ground", "Ground"} {
		idx, err := c.AddNode(name)
		require.NoError(s.T(), err)
		require.Equal(s.T(), 0, idx)
	}
}

func (s *CircuitSuite) TestAddNodeIsIdempotent() {
	c := circuit.New()
	a, err := c.AddNode("1")
	require.NoError(s.T(), err)
	b, err := c.AddNode("1")
	require.NoError(s.T(), err)
	require.Equal(s.T(), a, b)
}

func (s *CircuitSuite) TestFinalizeAssignsVarIndicesSkippingGround() {
	c := circuit.New()
	n1, _ := c.AddNode("1")
	n2, _ := c.AddNode("2")
	c.AddDevice(device.NewResistor("R1", n1, n2, 1000.0))

	require.NoError(s.T(), c.Finalize())
	require.Equal(s.T(), -1, c.GetVarIndex(0))
	require.Equal(s.T(), 0, c.GetVarIndex(n1))
	require.Equal(s.T(), 1, c.GetVarIndex(n2))
}

func (s *CircuitSuite) TestFinalizeRewritesDeviceTerminalsToVarIndices() {
	c := circuit.New()
	n1, _ := c.AddNode("1")
	gnd := c.GetNode("0")
	r := device.NewResistor("R1", n1, gnd, 1000.0)
	c.AddDevice(r)

	require.NoError(s.T(), c.Finalize())
	// Node index 1 maps to var index 0; ground maps to -1.
	require.Equal(s.T(), []int{0, -1}, r.Nodes())
}

func (s *CircuitSuite) TestFinalizeAllocatesExtraVarForVoltageSource() {
	c := circuit.New()
	n1, _ := c.AddNode("1")
	gnd := c.GetNode("0")
	v := device.NewVoltageSource("V1", n1, gnd, 5.0)
	c.AddDevice(v)

	require.NoError(s.T(), c.Finalize())
	require.Equal(s.T(), 1, c.NumExtraVars())
	require.Equal(s.T(), device.ExtraVarAllocated, v.ExtraVar().State)
	require.Equal(s.T(), 2, c.NumVars()) // 1 node var + 1 extra var
}

func (s *CircuitSuite) TestFinalizeRejectsEmptyCircuit() {
	c := circuit.New()
	require.ErrorIs(s.T(), c.Finalize(), circuit.ErrNoVariables)
}

func (s *CircuitSuite) TestAddNodeRejectedAfterFinalize() {
	c := circuit.New()
	c.AddNode("1")
	c.AddDevice(device.NewResistor("R1", 1, 0, 1000.0))
	require.NoError(s.T(), c.Finalize())

	_, err := c.AddNode("2")
	require.ErrorIs(s.T(), err, circuit.ErrAlreadyFinalized)
}

func (s *CircuitSuite) TestFinalizeTwiceIsAnError() {
	c := circuit.New()
	c.AddNode("1")
	c.AddDevice(device.NewResistor("R1", 1, 0, 1000.0))
	require.NoError(s.T(), c.Finalize())

	require.ErrorIs(s.T(), c.Finalize(), circuit.ErrAlreadyFinalized)
}
