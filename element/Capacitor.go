package element

import "circuitlu/mna"

// Capacitor 电容，伴随模型为电阻并联电流源
//
//	后向欧拉: R = dt/C，Is = -V(n-1)/R
//	梯形积分: R = dt/(2C)，Is = -V(n-1)/R - I(n-1)
type Capacitor struct {
	Base
	Capacitance    float64
	InitialVoltage float64 // 初始电压
	compResistance float64 // 伴随电阻
	curSourceValue float64 // 伴随电流源
	voltDiff       float64 // 上一步两端电压
}

// NewCapacitor 创建电容，c 单位法拉
func NewCapacitor(n1, n2 mna.NodeID, c float64) *Capacitor {
	return &Capacitor{Base: newBase(n1, n2, 0), Capacitance: c}
}

func (*Capacitor) Type() string { return "C" }

func (capacitor *Capacitor) Stamp(m *mna.MNA, t *Time) {
	capacitor.voltDiff = capacitor.InitialVoltage
	capacitor.Current = 0
	capacitor.compResistance = t.TimeStep / capacitor.Capacitance
	if t.IsTrapezoidal {
		capacitor.compResistance /= 2
	}
	m.StampResistor(capacitor.Pins[0], capacitor.Pins[1], capacitor.compResistance)
}

func (capacitor *Capacitor) StartIteration(m *mna.MNA, t *Time) {
	capacitor.curSourceValue = -capacitor.voltDiff / capacitor.compResistance
	if t.IsTrapezoidal {
		capacitor.curSourceValue -= capacitor.Current
	}
}

func (capacitor *Capacitor) DoStep(m *mna.MNA, t *Time) {
	m.StampCurrentSource(capacitor.Pins[0], capacitor.Pins[1], capacitor.curSourceValue)
}

func (capacitor *Capacitor) CalculateCurrent(m *mna.MNA, t *Time) {
	capacitor.voltDiff = capacitor.voltageDiff(m)
	capacitor.Current = capacitor.voltDiff/capacitor.compResistance + capacitor.curSourceValue
}

// VoltageDiff 两端电压
func (capacitor *Capacitor) VoltageDiff() float64 { return capacitor.voltDiff }
