package device

import (
	"testing"

	"mnaspice/pkg/mna"
)

func TestVoltageSourceRequestsExtraVar(t *testing.T) {
	v := NewVoltageSource("V1", 0, 1, 5.0)
	v.Init()
	if v.ExtraVar().State != ExtraVarRequested {
		t.Fatalf("ExtraVar().State = %v, want ExtraVarRequested", v.ExtraVar().State)
	}
}

func TestVoltageSourceStampKVLRow(t *testing.T) {
	v := NewVoltageSource("V1", 0, 1, 5.0)
	v.Init()
	v.AllocateExtraVar(2)

	ctx, err := mna.NewStampContext(3)
	if err != nil {
		t.Fatal(err)
	}
	v.StampNonlinear(ctx, nil)

	out := make([]float64, 9)
	ctx.AssembleDense(out)

	// Branch row (index 2) enforces v[0] - v[1] = V.
	if out[2*3+0] != 1 || out[2*3+1] != -1 {
		t.Errorf("branch row = [%v %v], want [1 -1]", out[2*3+0], out[2*3+1])
	}
	// KCL columns mirror the branch row.
	if out[0*3+2] != 1 || out[1*3+2] != -1 {
		t.Errorf("KCL column = [%v %v], want [1 -1]", out[0*3+2], out[1*3+2])
	}
	if ctx.Z()[2] != 5.0 {
		t.Errorf("z[branch] = %v, want 5.0", ctx.Z()[2])
	}
}
