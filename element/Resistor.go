package element

import "circuitlu/mna"

// Resistor 电阻
type Resistor struct {
	Base
	Resistance float64
}

// NewResistor 创建电阻，r 单位欧姆
func NewResistor(n1, n2 mna.NodeID, r float64) *Resistor {
	return &Resistor{Base: newBase(n1, n2, 0), Resistance: r}
}

func (*Resistor) Type() string { return "R" }

func (resistor *Resistor) Stamp(m *mna.MNA, t *Time) {
	m.StampResistor(resistor.Pins[0], resistor.Pins[1], resistor.Resistance)
}

func (resistor *Resistor) CalculateCurrent(m *mna.MNA, t *Time) {
	if resistor.Resistance > 1e-9 {
		resistor.Current = resistor.voltageDiff(m) / resistor.Resistance
	} else {
		resistor.Current = resistor.voltageDiff(m) * 1e9
	}
}
