// Package netlist parses a SPICE-like netlist into element records and
// builds a Circuit from them. Element records cover the R, I, V, C,
// L, D element set; BJT/MOSFET/transformer/mutual-inductance letters
// are out of scope here.
package netlist

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"mnaspice/pkg/circuit"
	"mnaspice/pkg/device"
)

// Directive records which analysis a .op/.tran/.ac/.dc line asked
// for. Only AnalysisOP is wired to a driver in this build; the others
// are recorded for the CLI to report as unimplemented.
type Directive int

const (
	AnalysisOP Directive = iota
	AnalysisTRAN
	AnalysisAC
	AnalysisDC
)

func (d Directive) String() string {
	switch d {
	case AnalysisTRAN:
		return ".tran"
	case AnalysisAC:
		return ".ac"
	case AnalysisDC:
		return ".dc"
	default:
		return ".op"
	}
}

// DiodeModel holds the optional .model parameters for a diode.
type DiodeModel struct {
	Is float64
	N  float64
}

// Element is one parsed netlist line: a device record with a type
// letter, a name, node labels, a primary value, and optional named
// parameters (diodes accept Is=/n=).
type Element struct {
	Type   string
	Name   string
	Nodes  []string
	Value  float64
	Params map[string]string
}

// NetlistData is the parsed netlist: elements in file order, any
// .model definitions, the requested analysis directive, and the
// circuit title (the text of the first line, when that line is a *
// comment).
type NetlistData struct {
	Title     string
	Elements  []Element
	Models    map[string]DiodeModel
	Directive Directive
}

// unitMap implements spec's exact SI-suffix table: case-insensitive,
// one suffix per value. Longest-match-first ordering matters only for
// the regex alternation below, not for this map.
var unitMap = map[string]float64{
	"t":   1e12,
	"g":   1e9,
	"meg": 1e6,
	"k":   1e3,
	"mil": 25.4e-6,
	"m":   1e-3,
	"u":   1e-6,
	"n":   1e-9,
	"p":   1e-12,
	"f":   1e-15,
}

var valueRe = regexp.MustCompile(`(?i)^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)(meg|mil|[tgkmunpf])?$`)

// ParseValue parses a numeric literal with an optional SI suffix,
// case-insensitively, per the suffix table above.
func ParseValue(val string) (float64, error) {
	matches := valueRe.FindStringSubmatch(strings.TrimSpace(val))
	if matches == nil {
		return 0, fmt.Errorf("netlist: invalid value %q", val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, err
	}

	if matches[2] != "" {
		if mult, ok := unitMap[strings.ToLower(matches[2])]; ok {
			num *= mult
		}
	}

	return num, nil
}

// Parse reads a netlist, honoring *//# comments (full-line and
// inline) and + line continuation. Lines beginning with "." are
// directives; only .model and the four analysis directives are
// interpreted.
func Parse(input string) (*NetlistData, error) {
	nd := &NetlistData{Models: make(map[string]DiodeModel)}

	scanner := bufio.NewScanner(strings.NewReader(input))
	first := true
	var pending string

	flush := func() error {
		if pending == "" {
			return nil
		}
		line := pending
		pending = ""
		if strings.HasPrefix(line, ".") {
			return parseDirective(nd, line)
		}
		elem, err := parseElement(line)
		if err != nil {
			return err
		}
		nd.Elements = append(nd.Elements, *elem)
		return nil
	}

	for scanner.Scan() {
		raw := scanner.Text()
		if first {
			first = false
			if strings.HasPrefix(strings.TrimSpace(raw), "*") {
				nd.Title = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "*"))
				continue
			}
		}

		line := stripComment(raw)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "+") {
			pending += " " + strings.TrimSpace(strings.TrimPrefix(line, "+"))
			continue
		}

		if err := flush(); err != nil {
			return nil, err
		}
		pending = line
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return nd, nil
}

func stripComment(line string) string {
	for _, marker := range []string{"*", "#", "//"} {
		if idx := strings.Index(line, marker); idx >= 0 {
			line = line[:idx]
		}
	}
	return line
}

func parseDirective(nd *NetlistData, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return fmt.Errorf("netlist: empty directive")
	}

	switch strings.ToLower(fields[0]) {
	case ".model":
		return parseModel(nd, fields[1:])
	case ".op":
		nd.Directive = AnalysisOP
	case ".tran":
		nd.Directive = AnalysisTRAN
	case ".ac":
		nd.Directive = AnalysisAC
	case ".dc":
		nd.Directive = AnalysisDC
	default:
		// Any other dot-prefixed line (.end, .ic, .width, ...) is a
		// directive this build doesn't act on; ignored, not rejected.
	}
	return nil
}

func parseModel(nd *NetlistData, fields []string) error {
	if len(fields) < 2 {
		return fmt.Errorf("netlist: .model requires a name and type")
	}
	name := fields[0]
	origTypeField := fields[1]

	// The type letter and the parameter list's opening paren are
	// often glued together with no space, e.g. "D(IS=2.52e-9": split
	// on an embedded "(" and fold the remainder into the param fields.
	typeField := origTypeField
	paramFields := fields[2:]
	if idx := strings.Index(typeField, "("); idx >= 0 {
		rest := typeField[idx+1:]
		typeField = typeField[:idx]
		paramFields = append([]string{rest}, paramFields...)
	}
	if strings.ToUpper(typeField) != "D" {
		return fmt.Errorf("netlist: unsupported model type %q", origTypeField)
	}

	model := DiodeModel{Is: 1e-14, N: 1.0}

	rest := strings.Join(paramFields, " ")
	rest = strings.Trim(rest, "()")
	for _, pair := range strings.Fields(rest) {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		v, err := ParseValue(kv[1])
		if err != nil {
			return fmt.Errorf("netlist: model %s: %w", name, err)
		}
		switch strings.ToLower(kv[0]) {
		case "is":
			model.Is = v
		case "n":
			model.N = v
		}
	}

	nd.Models[name] = model
	return nil
}

func parseElement(line string) (*Element, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return nil, fmt.Errorf("netlist: invalid element line %q", line)
	}

	elem := &Element{
		Name:   fields[0],
		Type:   strings.ToUpper(fields[0][:1]),
		Params: make(map[string]string),
	}

	switch elem.Type {
	case "D":
		if len(fields) < 3 {
			return nil, fmt.Errorf("netlist: diode %s requires anode and cathode", elem.Name)
		}
		elem.Nodes = fields[1:3]
		for _, kv := range fields[3:] {
			parts := strings.SplitN(kv, "=", 2)
			if len(parts) == 2 {
				elem.Params[strings.ToLower(parts[0])] = parts[1]
			} else {
				elem.Params["model"] = kv
			}
		}
		return elem, nil

	default: // R, I, V, C, L
		if len(fields) < 4 {
			return nil, fmt.Errorf("netlist: element %s requires two nodes and a value", elem.Name)
		}
		elem.Nodes = fields[1:3]
		val, err := ParseValue(fields[3])
		if err != nil {
			return nil, fmt.Errorf("netlist: %s: %w", elem.Name, err)
		}
		elem.Value = val
		return elem, nil
	}
}

// BuildCircuit constructs a Circuit from parsed elements, adding
// nodes in first-reference order and one device per element.
func BuildCircuit(nd *NetlistData) (*circuit.Circuit, error) {
	c := circuit.New()

	nodeIdx := func(name string) (int, error) {
		return c.AddNode(name)
	}

	for _, e := range nd.Elements {
		n1, err := nodeIdx(e.Nodes[0])
		if err != nil {
			return nil, err
		}
		n2, err := nodeIdx(e.Nodes[1])
		if err != nil {
			return nil, err
		}

		var dev device.Device
		switch e.Type {
		case "R":
			if e.Value <= 0 {
				return nil, fmt.Errorf("netlist: resistor %s must be positive", e.Name)
			}
			dev = device.NewResistor(e.Name, n1, n2, e.Value)
		case "I":
			dev = device.NewCurrentSource(e.Name, n1, n2, e.Value)
		case "V":
			dev = device.NewVoltageSource(e.Name, n1, n2, e.Value)
		case "C":
			if e.Value <= 0 {
				return nil, fmt.Errorf("netlist: capacitor %s must be positive", e.Name)
			}
			dev = device.NewCapacitor(e.Name, n1, n2, e.Value)
		case "L":
			if e.Value <= 0 {
				return nil, fmt.Errorf("netlist: inductor %s must be positive", e.Name)
			}
			dev = device.NewInductor(e.Name, n1, n2, e.Value)
		case "D":
			is, n := 1e-14, 1.0
			if modelName, ok := e.Params["model"]; ok {
				if m, exists := nd.Models[modelName]; exists {
					is, n = m.Is, m.N
				}
			}
			if v, ok := e.Params["is"]; ok {
				if parsed, err := ParseValue(v); err == nil {
					is = parsed
				}
			}
			if v, ok := e.Params["n"]; ok {
				if parsed, err := ParseValue(v); err == nil {
					n = parsed
				}
			}
			dev = device.NewDiode(e.Name, n1, n2, is, n)
		default:
			return nil, fmt.Errorf("netlist: unsupported element type %q", e.Type)
		}

		if err := c.AddDevice(dev); err != nil {
			return nil, err
		}
	}

	return c, nil
}
