package element

import "circuitlu/mna"

// Switch 定时开关，OnTime <= t < OffTime 时闭合（OffTime <= OnTime 表示闭合后不再断开）
//
// 状态变化时只加盖电导差值，被修改的两行会被标记失效，
// 下一次求解只从这两行中较早的内部行开始重新分解。
type Switch struct {
	Base
	OnTime        float64
	OffTime       float64
	OnResistance  float64 // 导通电阻
	OffResistance float64 // 关断电阻
	closed        bool
}

// NewSwitch 创建定时开关，onTime 时刻闭合
func NewSwitch(n1, n2 mna.NodeID, onTime float64) *Switch {
	return &Switch{
		Base:          newBase(n1, n2, 0),
		OnTime:        onTime,
		OnResistance:  1e-3,
		OffResistance: 1e9,
	}
}

func (*Switch) Type() string { return "S" }

// IsClosed 当前是否闭合
func (sw *Switch) IsClosed() bool { return sw.closed }

func (sw *Switch) stateAt(t float64) bool {
	if t < sw.OnTime {
		return false
	}
	return sw.OffTime <= sw.OnTime || t < sw.OffTime
}

func (sw *Switch) conductance() float64 {
	if sw.closed {
		return 1 / sw.OnResistance
	}
	return 1 / sw.OffResistance
}

func (sw *Switch) Stamp(m *mna.MNA, t *Time) {
	sw.closed = sw.stateAt(t.Time)
	m.StampConductance(sw.Pins[0], sw.Pins[1], sw.conductance())
}

func (sw *Switch) StartIteration(m *mna.MNA, t *Time) {
	closed := sw.stateAt(t.Time)
	if closed == sw.closed {
		return
	}
	g := sw.conductance()
	sw.closed = closed
	m.StampConductance(sw.Pins[0], sw.Pins[1], sw.conductance()-g)
}

func (sw *Switch) CalculateCurrent(m *mna.MNA, t *Time) {
	sw.Current = sw.voltageDiff(m) * sw.conductance()
}
