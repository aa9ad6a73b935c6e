package element

import "circuitlu/mna"

// Inductor 电感，伴随模型为电阻并联电流源
//
//	后向欧拉: R = L/dt，Is = I(n-1)
//	梯形积分: R = 2L/dt，Is = V(n-1)/R + I(n-1)
type Inductor struct {
	Base
	Inductance     float64
	InitialCurrent float64 // 初始电流
	compResistance float64
	curSourceValue float64
	voltDiff       float64
}

// NewInductor 创建电感，l 单位亨利
func NewInductor(n1, n2 mna.NodeID, l float64) *Inductor {
	return &Inductor{Base: newBase(n1, n2, 0), Inductance: l}
}

func (*Inductor) Type() string { return "L" }

func (inductor *Inductor) Stamp(m *mna.MNA, t *Time) {
	inductor.voltDiff = 0
	inductor.Current = inductor.InitialCurrent
	inductor.compResistance = inductor.Inductance / t.TimeStep
	if t.IsTrapezoidal {
		inductor.compResistance *= 2
	}
	m.StampResistor(inductor.Pins[0], inductor.Pins[1], inductor.compResistance)
}

func (inductor *Inductor) StartIteration(m *mna.MNA, t *Time) {
	inductor.curSourceValue = inductor.Current
	if t.IsTrapezoidal {
		inductor.curSourceValue += inductor.voltDiff / inductor.compResistance
	}
}

func (inductor *Inductor) DoStep(m *mna.MNA, t *Time) {
	m.StampCurrentSource(inductor.Pins[0], inductor.Pins[1], inductor.curSourceValue)
}

func (inductor *Inductor) CalculateCurrent(m *mna.MNA, t *Time) {
	inductor.voltDiff = inductor.voltageDiff(m)
	inductor.Current = inductor.voltDiff/inductor.compResistance + inductor.curSourceValue
}
