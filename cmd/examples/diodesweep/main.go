// Command diodesweep builds a resistor-diode circuit, sweeps the
// driving voltage source across a DC operating-point analysis at each
// step, and plots the resulting diode V-I curve to a PNG.
package main

import (
	"fmt"
	"log"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"mnaspice/pkg/analysis"
	"mnaspice/pkg/circuit"
	"mnaspice/pkg/device"
)

// buildCircuit wires a diode, in series with a current-limiting
// resistor, driven by an independent voltage source of vSource volts.
// Returns the circuit and the node index of the diode anode.
func buildCircuit(vSource float64) (*circuit.Circuit, int) {
	ckt := circuit.New()

	n1, _ := ckt.AddNode("1")
	n2, _ := ckt.AddNode("2")
	gnd, _ := ckt.AddNode("0")

	ckt.AddDevice(device.NewVoltageSource("Vsweep", n1, gnd, vSource))
	ckt.AddDevice(device.NewResistor("Rs", n1, n2, 10.0))
	ckt.AddDevice(device.NewDiode("D1", n2, gnd, 2.52e-9, 1.752)) // 1N4148 parameters

	return ckt, n2
}

func main() {
	const (
		vStart = 0.0
		vStop  = 1.2
		vStep  = 0.02
	)

	var points plotter.XYs

	for v := vStart; v <= vStop; v += vStep {
		ckt, anode := buildCircuit(v)
		if err := ckt.Finalize(); err != nil {
			log.Fatalf("finalizing circuit at Vsweep=%.3f: %v", v, err)
		}

		x, _, err := analysis.OperatingPoint(ckt, analysis.DefaultConvergence())
		if err != nil {
			log.Fatalf("operating point at Vsweep=%.3f: %v", v, err)
		}

		const rs = 10.0
		vd := x[ckt.GetVarIndex(anode)]
		id := (v - vd) / rs

		points = append(points, plotter.XY{X: vd, Y: id * 1000})
	}

	p := plot.New()
	p.Title.Text = "Diode V-I Characteristic"
	p.X.Label.Text = "Diode voltage (V)"
	p.Y.Label.Text = "Diode current (mA)"

	line, err := plotter.NewLine(points)
	if err != nil {
		log.Fatalf("creating plot line: %v", err)
	}
	p.Add(line)
	p.Legend.Add("D1", line)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, "diode_vi.png"); err != nil {
		log.Fatalf("saving plot: %v", err)
	}

	fmt.Println("wrote diode_vi.png")
}
