// Package element 线性电路元件及其MNA加盖规则
//
// 元件生命周期（每次仿真）：
//
//	Stamp            仿真开始前加盖一次矩阵系数（时间步长固定时矩阵不变）
//	StartIteration   每个时间步开始，更新历史量
//	DoStep           每个时间步加盖右侧激励，必要时修改矩阵
//	CalculateCurrent 每个时间步求解后，根据节点电压更新元件状态
package element

import (
	"fmt"

	"circuitlu/mna"
)

// Time 仿真时间信息
type Time struct {
	Time          float64 // 当前时间
	TimeStep      float64 // 时间步长
	IsTrapezoidal bool    // 梯形积分（否则为后向欧拉）
}

// Element 元件接口
type Element interface {
	Type() string             // 元件类型名
	Nodes() []mna.NodeID      // 引脚节点
	GetVoltageSourceCnt() int // 需要的电压源数量
	SetVoltSource(n int, id mna.VoltageID)
	Stamp(m *mna.MNA, t *Time)
	StartIteration(m *mna.MNA, t *Time)
	DoStep(m *mna.MNA, t *Time)
	CalculateCurrent(m *mna.MNA, t *Time)
	GetCurrent() float64 // 流经元件的电流（由第一个引脚流入）
}

// Base 元件公共部分，嵌入后只需实现关心的生命周期方法
type Base struct {
	Pins       []mna.NodeID    // 引脚节点
	VoltSource []mna.VoltageID // 分配的电压源
	Current    float64         // 元件电流
}

func (base *Base) Nodes() []mna.NodeID                   { return base.Pins }
func (base *Base) GetVoltageSourceCnt() int              { return len(base.VoltSource) }
func (base *Base) SetVoltSource(n int, id mna.VoltageID) { base.VoltSource[n] = id }
func (base *Base) GetCurrent() float64                   { return base.Current }
func (Base) Stamp(m *mna.MNA, t *Time)                   {}
func (Base) StartIteration(m *mna.MNA, t *Time)          {}
func (Base) DoStep(m *mna.MNA, t *Time)                  {}
func (Base) CalculateCurrent(m *mna.MNA, t *Time)        {}

// voltageDiff 两引脚电压差
func (base *Base) voltageDiff(m *mna.MNA) float64 {
	return m.GetNodeVoltage(base.Pins[0]) - m.GetNodeVoltage(base.Pins[1])
}

// newBase 创建两引脚元件，vs 为需要的电压源数量
func newBase(n1, n2 mna.NodeID, vs int) Base {
	base := Base{
		Pins:       []mna.NodeID{n1, n2},
		VoltSource: make([]mna.VoltageID, vs),
	}
	for i := range base.VoltSource {
		base.VoltSource[i] = -1
	}
	return base
}

// String 元件描述，如 "R[0 -1]"
func String(e Element) string {
	return fmt.Sprintf("%s%v", e.Type(), e.Nodes())
}
