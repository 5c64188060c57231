package device

import (
	"testing"

	"mnaspice/pkg/mna"
)

func TestCapacitorOpenAtDC(t *testing.T) {
	c := NewCapacitor("C1", 0, 1, 1e-6)
	ctx, err := mna.NewStampContext(2)
	if err != nil {
		t.Fatal(err)
	}
	c.StampNonlinear(ctx, nil)

	if len(ctx.Triplets()) != 0 {
		t.Errorf("expected no stamp at DC, got %d triplets", len(ctx.Triplets()))
	}
	for _, v := range ctx.Z() {
		if v != 0 {
			t.Errorf("expected no RHS contribution at DC, got %v", ctx.Z())
		}
	}
}

func TestCapacitorTransientStampSymmetric(t *testing.T) {
	c := NewCapacitor("C1", 0, 1, 1e-6)
	ctx, err := mna.NewStampContext(2)
	if err != nil {
		t.Fatal(err)
	}
	c.StampTransient(ctx, &TimeStepState{H: 1e-6, Method: mna.BackwardEuler})

	out := make([]float64, 4)
	ctx.AssembleDense(out)
	if out[0] != out[3] || out[1] != -out[0] || out[2] != -out[0] {
		t.Errorf("transient stamp not symmetric: %v", out)
	}
}
