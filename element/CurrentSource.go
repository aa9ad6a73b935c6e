package element

import "circuitlu/mna"

// CurrentSource 独立电流源，电流由 Pins[0] 经电流源流向 Pins[1]
type CurrentSource struct {
	Base
	Value float64
}

// NewCurrentSource 创建直流电流源，i 单位安培
func NewCurrentSource(n1, n2 mna.NodeID, i float64) *CurrentSource {
	return &CurrentSource{Base: newBase(n1, n2, 0), Value: i}
}

func (*CurrentSource) Type() string { return "I" }

func (source *CurrentSource) DoStep(m *mna.MNA, t *Time) {
	m.StampCurrentSource(source.Pins[0], source.Pins[1], source.Value)
}

func (source *CurrentSource) CalculateCurrent(m *mna.MNA, t *Time) {
	source.Current = source.Value
}
