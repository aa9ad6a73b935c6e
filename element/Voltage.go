package element

import (
	"math"

	"circuitlu/mna"
)

// Waveform 电压源波形
type Waveform int

const (
	WfDC     Waveform = iota // 直流
	WfAC                     // 正弦
	WfSquare                 // 方波
)

// VoltageSource 独立电压源，正极为 Pins[0]
//
// 矩阵部分只在 Stamp 中加盖一次，电压值在每个时间步通过 UpdateVoltageSource 写入右侧向量，
// 因此时变电压源不会引起重新分解。
type VoltageSource struct {
	Base
	Waveform   Waveform
	MaxVoltage float64 // 幅值（直流时为电压值）
	Bias       float64 // 偏置电压
	Frequency  float64 // 频率 Hz
	Phase      float64 // 相位 rad
	DutyCycle  float64 // 方波占空比 (0,1)
}

// NewVoltageSource 创建直流电压源
func NewVoltageSource(n1, n2 mna.NodeID, v float64) *VoltageSource {
	return &VoltageSource{Base: newBase(n1, n2, 1), MaxVoltage: v, DutyCycle: 0.5}
}

// NewSineSource 创建正弦电压源
func NewSineSource(n1, n2 mna.NodeID, amplitude, frequency float64) *VoltageSource {
	return &VoltageSource{
		Base:       newBase(n1, n2, 1),
		Waveform:   WfAC,
		MaxVoltage: amplitude,
		Frequency:  frequency,
		DutyCycle:  0.5,
	}
}

func (*VoltageSource) Type() string { return "V" }

// GetVoltage t 时刻的电压
func (source *VoltageSource) GetVoltage(t float64) float64 {
	w := 2*math.Pi*source.Frequency*t + source.Phase
	switch source.Waveform {
	case WfAC:
		return math.Sin(w)*source.MaxVoltage + source.Bias
	case WfSquare:
		if math.Mod(w, 2*math.Pi) > 2*math.Pi*source.DutyCycle {
			return -source.MaxVoltage + source.Bias
		}
		return source.MaxVoltage + source.Bias
	default:
		return source.MaxVoltage + source.Bias
	}
}

func (source *VoltageSource) Stamp(m *mna.MNA, t *Time) {
	m.StampVoltageSource(source.Pins[0], source.Pins[1], source.VoltSource[0], source.GetVoltage(t.Time))
}

func (source *VoltageSource) DoStep(m *mna.MNA, t *Time) {
	m.UpdateVoltageSource(source.VoltSource[0], source.GetVoltage(t.Time))
}

func (source *VoltageSource) CalculateCurrent(m *mna.MNA, t *Time) {
	source.Current = m.GetVoltageSourceCurrent(source.VoltSource[0])
}
