package element

import "circuitlu/mna"

// VCVS 电压控制电压源：V(Pins[0]) - V(Pins[1]) = Gain * (V(Pins[2]) - V(Pins[3]))
type VCVS struct {
	Base
	Gain float64
}

// NewVCVS 创建电压控制电压源，out+ out- 为输出引脚，in+ in- 为控制引脚
func NewVCVS(out1, out2, in1, in2 mna.NodeID, gain float64) *VCVS {
	base := newBase(out1, out2, 1)
	base.Pins = append(base.Pins, in1, in2)
	return &VCVS{Base: base, Gain: gain}
}

func (*VCVS) Type() string { return "E" }

func (vcvs *VCVS) Stamp(m *mna.MNA, t *Time) {
	p := vcvs.Pins
	m.StampVCVS(p[0], p[1], p[2], p[3], vcvs.VoltSource[0], vcvs.Gain)
}

func (vcvs *VCVS) CalculateCurrent(m *mna.MNA, t *Time) {
	vcvs.Current = m.GetVoltageSourceCurrent(vcvs.VoltSource[0])
}

// VCCS 电压控制电流源：Gain * (V(Pins[2]) - V(Pins[3])) 由 Pins[0] 经电流源流向 Pins[1]
type VCCS struct {
	Base
	Gain float64
}

// NewVCCS 创建电压控制电流源
func NewVCCS(out1, out2, in1, in2 mna.NodeID, gain float64) *VCCS {
	base := newBase(out1, out2, 0)
	base.Pins = append(base.Pins, in1, in2)
	return &VCCS{Base: base, Gain: gain}
}

func (*VCCS) Type() string { return "G" }

func (vccs *VCCS) Stamp(m *mna.MNA, t *Time) {
	p := vccs.Pins
	m.StampVCCS(p[0], p[1], p[2], p[3], vccs.Gain)
}

func (vccs *VCCS) CalculateCurrent(m *mna.MNA, t *Time) {
	vccs.Current = vccs.Gain * (m.GetNodeVoltage(vccs.Pins[2]) - m.GetNodeVoltage(vccs.Pins[3]))
}
