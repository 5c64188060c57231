package device

import (
	"testing"

	"mnaspice/pkg/mna"
)

func TestInductorDCStampMatchesZeroVoltSource(t *testing.T) {
	ind := NewInductor("L1", 0, 1, 1e-3)
	ind.Init()
	ind.AllocateExtraVar(2)

	vsrc := NewVoltageSource("Vshort", 0, 1, 0.0)
	vsrc.Init()
	vsrc.AllocateExtraVar(2)

	ctxInd, err := mna.NewStampContext(3)
	if err != nil {
		t.Fatal(err)
	}
	ind.StampNonlinear(ctxInd, nil)
	outInd := make([]float64, 9)
	ctxInd.AssembleDense(outInd)

	ctxV, err := mna.NewStampContext(3)
	if err != nil {
		t.Fatal(err)
	}
	vsrc.StampNonlinear(ctxV, nil)
	outV := make([]float64, 9)
	ctxV.AssembleDense(outV)

	for i := range outInd {
		if outInd[i] != outV[i] {
			t.Errorf("A[%d] = %v, want %v (zero-volt-source stamp)", i, outInd[i], outV[i])
		}
	}
	if ctxInd.Z()[2] != ctxV.Z()[2] {
		t.Errorf("z[branch] = %v, want %v", ctxInd.Z()[2], ctxV.Z()[2])
	}
}
