// Command mnaspice reads a netlist and runs DC operating-point
// analysis on it, printing node voltages and branch currents.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"mnaspice/pkg/analysis"
	"mnaspice/pkg/circuit"
	"mnaspice/pkg/device"
	"mnaspice/pkg/netlist"
	"mnaspice/pkg/util"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("Usage: mnaspice <netlist_file>")
	}

	content, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("reading netlist file: %v", err)
	}

	nd, err := netlist.Parse(string(content))
	if err != nil {
		log.Fatalf("parsing netlist: %v", err)
	}

	if nd.Directive != netlist.AnalysisOP {
		log.Fatalf("%s analysis is not implemented; only .op is supported", nd.Directive)
	}

	ckt, err := netlist.BuildCircuit(nd)
	if err != nil {
		log.Fatalf("building circuit: %v", err)
	}

	if err := ckt.Finalize(); err != nil {
		log.Fatalf("finalizing circuit: %v", err)
	}

	x, iters, err := analysis.OperatingPoint(ckt, analysis.DefaultConvergence())
	if err != nil {
		log.Fatalf("operating-point analysis: %v", err)
	}

	if nd.Title != "" {
		fmt.Printf("%s\n", nd.Title)
	}
	fmt.Printf("converged in %d iterations\n\n", iters)
	printNodeVoltages(ckt, x)
	printBranchCurrents(ckt, x)
}

func printNodeVoltages(ckt *circuit.Circuit, x []float64) {
	names := make([]string, 0, len(ckt.Nodes()))
	values := make(map[string]float64)

	for _, n := range ckt.Nodes() {
		if n.VarIndex < 0 {
			continue
		}
		names = append(names, n.Name)
		values[n.Name] = x[n.VarIndex]
	}
	sort.Strings(names)

	fmt.Println("Node Voltages:")
	for _, name := range names {
		fmt.Printf("  V(%s) = %s\n", name, util.FormatValueFactor(values[name], "V"))
	}
}

func printBranchCurrents(ckt *circuit.Circuit, x []float64) {
	names := make([]string, 0)
	values := make(map[string]float64)

	for _, d := range ckt.Devices() {
		ev := d.ExtraVar()
		if ev.State != device.ExtraVarAllocated {
			continue
		}
		names = append(names, d.Name())
		values[d.Name()] = x[ev.Index]
	}
	if len(names) == 0 {
		return
	}
	sort.Strings(names)

	fmt.Println("\nBranch Currents:")
	for _, name := range names {
		fmt.Printf("  I(%s) = %s\n", name, util.FormatValueFactor(values[name], "A"))
	}
}
