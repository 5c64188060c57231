package mna

import (
	"math"
	"testing"
)

func TestSolveIdentity(t *testing.T) {
	a := []float64{1, 0, 0, 1}
	b := []float64{3, 4}

	x, err := Solve(2, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if x[0] != 3 || x[1] != 4 {
		t.Errorf("x = %v, want [3 4]", x)
	}
}

func TestSolveRequiresPivoting(t *testing.T) {
	// Row 0 has a zero pivot candidate; partial pivoting must swap
	// rows to avoid a spurious singular result.
	a := []float64{
		0, 1,
		1, 1,
	}
	b := []float64{2, 3}

	x, err := Solve(2, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x[0]-1) > 1e-9 || math.Abs(x[1]-2) > 1e-9 {
		t.Errorf("x = %v, want [1 2]", x)
	}
}

func TestSolveSingular(t *testing.T) {
	a := []float64{
		1, 1,
		1, 1,
	}
	b := []float64{1, 2}

	if _, err := Solve(2, a, b); err != ErrSingular {
		t.Errorf("Solve() error = %v, want ErrSingular", err)
	}
}

func TestSolveDoesNotMutateInputs(t *testing.T) {
	a := []float64{2, 0, 0, 2}
	b := []float64{4, 6}
	aCopy := append([]float64(nil), a...)
	bCopy := append([]float64(nil), b...)

	if _, err := Solve(2, a, b); err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != aCopy[i] {
			t.Errorf("Solve mutated a at index %d", i)
		}
	}
	for i := range b {
		if b[i] != bCopy[i] {
			t.Errorf("Solve mutated b at index %d", i)
		}
	}
}
