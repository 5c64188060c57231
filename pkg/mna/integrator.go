package mna

// IntegrationMethod is an immutable table of coefficients that turns
// a differential element into an equivalent resistor-plus-source at
// each time step.
type IntegrationMethod struct {
	Name            string
	Order           int
	Alpha0          float64
	Alpha1          float64
	Alpha2          float64
	Beta0           float64
	Beta1           float64
	Beta2           float64
	RequiredHistory int
	// Trapezoidal is true for the one method whose reactive stamps
	// add the previous current/voltage into the history term on top
	// of the alpha/beta contribution.
	Trapezoidal bool
}

// BackwardEuler is a first-order, one-step-history method.
var BackwardEuler = IntegrationMethod{
	Name: "backward-euler", Order: 1,
	Alpha0: 1, Alpha1: 1, Alpha2: 0,
	Beta0: 1, Beta1: 1, Beta2: 0,
	RequiredHistory: 1,
}

// TrapezoidalMethod is second-order and averages the current and previous
// derivative.
var TrapezoidalMethod = IntegrationMethod{
	Name: "trapezoidal", Order: 2,
	Alpha0: 2, Alpha1: 2, Alpha2: 0,
	Beta0: 2, Beta1: 2, Beta2: 0,
	RequiredHistory: 1,
	Trapezoidal:     true,
}

// Gear2 is the second-order Gear/BDF2 method, requiring two steps of
// history.
var Gear2 = IntegrationMethod{
	Name: "gear2", Order: 2,
	Alpha0: 1.5, Alpha1: 2, Alpha2: -0.5,
	Beta0: 1.5, Beta1: 2, Beta2: -0.5,
	RequiredHistory: 2,
}
