package mna

import "testing"

func TestNewStampContextRejectsNonPositive(t *testing.T) {
	for _, n := range []int{0, -1, -5} {
		if _, err := NewStampContext(n); err != ErrInvalidSize {
			t.Errorf("NewStampContext(%d): want ErrInvalidSize, got %v", n, err)
		}
	}
}

func TestAddADuplicatesSum(t *testing.T) {
	ctx, err := NewStampContext(2)
	if err != nil {
		t.Fatal(err)
	}
	ctx.AddA(0, 0, 1.0)
	ctx.AddA(0, 0, 2.0)

	out := make([]float64, 4)
	ctx.AssembleDense(out)
	if out[0] != 3.0 {
		t.Errorf("A[0][0] = %v, want 3.0", out[0])
	}
}

func TestAddAOutOfRangeDropped(t *testing.T) {
	ctx, err := NewStampContext(2)
	if err != nil {
		t.Fatal(err)
	}
	ctx.AddA(-1, 0, 5.0)
	ctx.AddA(0, 5, 5.0)
	ctx.AddA(5, 5, 5.0)

	if len(ctx.Triplets()) != 0 {
		t.Errorf("expected all out-of-range stamps to be dropped, got %d triplets", len(ctx.Triplets()))
	}
}

func TestAddAZeroValueDropped(t *testing.T) {
	ctx, err := NewStampContext(2)
	if err != nil {
		t.Fatal(err)
	}
	ctx.AddA(0, 0, 0)
	if len(ctx.Triplets()) != 0 {
		t.Errorf("expected zero-value stamp to be dropped, got %d triplets", len(ctx.Triplets()))
	}
}

func TestAddZOutOfRangeDropped(t *testing.T) {
	ctx, err := NewStampContext(2)
	if err != nil {
		t.Fatal(err)
	}
	ctx.AddZ(-1, 1.0)
	ctx.AddZ(5, 1.0)
	for _, v := range ctx.Z() {
		if v != 0 {
			t.Errorf("expected z unaffected by out-of-range AddZ, got %v", ctx.Z())
		}
	}
}

func TestResetClearsTripletsAndZ(t *testing.T) {
	ctx, err := NewStampContext(2)
	if err != nil {
		t.Fatal(err)
	}
	ctx.AddA(0, 0, 1.0)
	ctx.AddZ(0, 1.0)
	ctx.Reset()

	if len(ctx.Triplets()) != 0 {
		t.Errorf("expected no triplets after Reset, got %d", len(ctx.Triplets()))
	}
	for _, v := range ctx.Z() {
		if v != 0 {
			t.Errorf("expected z zeroed after Reset, got %v", ctx.Z())
		}
	}
}

func TestAllocExtraVarGrowsSpace(t *testing.T) {
	ctx, err := NewStampContext(2)
	if err != nil {
		t.Fatal(err)
	}
	idx := ctx.AllocExtraVar()
	if idx != 2 {
		t.Errorf("AllocExtraVar() = %d, want 2", idx)
	}
	if ctx.NumVars() != 3 {
		t.Errorf("NumVars() = %d, want 3", ctx.NumVars())
	}
	if len(ctx.Z()) != 3 {
		t.Errorf("len(Z()) = %d, want 3", len(ctx.Z()))
	}

	// A stamp into the newly allocated row/column must still land.
	ctx.AddA(idx, idx, 7.0)
	out := make([]float64, 9)
	ctx.AssembleDense(out)
	if out[idx*3+idx] != 7.0 {
		t.Errorf("A[%d][%d] = %v, want 7.0", idx, idx, out[idx*3+idx])
	}
}

func TestAssembleDenseRowMajor(t *testing.T) {
	ctx, err := NewStampContext(2)
	if err != nil {
		t.Fatal(err)
	}
	ctx.AddA(0, 1, 4.0)

	out := make([]float64, 4)
	ctx.AssembleDense(out)
	if out[1] != 4.0 {
		t.Errorf("A[0][1] stored at out[1] = %v, want 4.0", out[1])
	}
	if out[2] != 0 {
		t.Errorf("A[1][0] = %v, want 0 (asymmetric stamp)", out[2])
	}
}
