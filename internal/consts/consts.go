package consts

const (
	CHARGE    = 1.6021918e-19 // Elementary charge (C)
	BOLTZMANN = 1.3806226e-23 // Boltzmann constant (J/K)
	KELVIN    = 273.15        // Kelvin temperature (K)

	// ThermalVoltage is the fixed room-temperature thermal voltage
	// k*T/q used by the diode stamp, rather than recomputed per-call
	// from BOLTZMANN/CHARGE/temperature — this module has no
	// temperature-sweep scope.
	ThermalVoltage = 0.025852
)
