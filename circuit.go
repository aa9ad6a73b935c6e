package circuitlu

import (
	"errors"
	"fmt"
	"math"

	"circuitlu/element"
	"circuitlu/mna"
)

// ErrConfig 仿真参数错误
var ErrConfig = errors.New("circuit: invalid config")

// Config 仿真参数
type Config struct {
	EndTime       float64 // 仿真结束时间
	TimeStep      float64 // 固定时间步长
	IsTrapezoidal bool    // 梯形积分（否则为后向欧拉）
	Verbose       bool    // 输出求解日志
	ResidualTol   float64 // 大于0时每步校验残差
	Reorder       bool    // 首次分解前重排方程顺序
}

// DefaultConfig 默认仿真参数
func DefaultConfig() Config {
	return Config{
		EndTime:  1e-3,
		TimeStep: 1e-5,
		Reorder:  true,
	}
}

// Validate 检查仿真参数
func (c Config) Validate() error {
	switch {
	case !(c.TimeStep > 0) || math.IsInf(c.TimeStep, 0):
		return fmt.Errorf("%w: time step %g", ErrConfig, c.TimeStep)
	case c.EndTime < 0 || math.IsNaN(c.EndTime):
		return fmt.Errorf("%w: end time %g", ErrConfig, c.EndTime)
	case c.ResidualTol < 0:
		return fmt.Errorf("%w: residual tolerance %g", ErrConfig, c.ResidualTol)
	}
	return nil
}

// Circuit 电路
type Circuit struct {
	NodesNum          int               // 节点数量（不含地节点）
	VoltageSourcesNum int               // 已分配的电压源数量
	Elements          []element.Element // 元件列表
}

// NewCircuit 初始化，nodes 为不含地节点的节点数量
func NewCircuit(nodes int) *Circuit {
	return &Circuit{NodesNum: nodes}
}

// Add 添加元件并分配电压源编号
func (cir *Circuit) Add(elements ...element.Element) error {
	for _, ele := range elements {
		for _, n := range ele.Nodes() {
			if n < mna.Gnd || n >= cir.NodesNum {
				return fmt.Errorf("circuit: %s 引脚节点 %d 超出范围 [-1,%d)", element.String(ele), n, cir.NodesNum)
			}
		}
		for i := 0; i < ele.GetVoltageSourceCnt(); i++ {
			ele.SetVoltSource(i, cir.VoltageSourcesNum)
			cir.VoltageSourcesNum++
		}
		cir.Elements = append(cir.Elements, ele)
	}
	return nil
}

// MNA 创建方程并加盖全部元件
func (cir *Circuit) MNA(config Config) (*mna.MNA, *element.Time, error) {
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}
	m, err := mna.NewMNA(cir.NodesNum, cir.VoltageSourcesNum, mna.Config{
		Verbose:           config.Verbose,
		ResidualTolerance: config.ResidualTol,
	})
	if err != nil {
		return nil, nil, err
	}
	t := &element.Time{TimeStep: config.TimeStep, IsTrapezoidal: config.IsTrapezoidal}
	for _, ele := range cir.Elements {
		ele.Stamp(m, t)
	}
	if config.Reorder {
		m.Reorder()
	}
	return m, t, nil
}

// Simulate 进行固定步长瞬态仿真
//
// 矩阵在开始前加盖一次，每个时间步只清空并重新加盖右侧向量，
// 矩阵不变时分解结果直接复用；元件修改矩阵时只重新分解失效的行。
// setup 在仿真开始前调用，可用于设置调试器。
func (cir *Circuit) Simulate(config Config, setup func(m *mna.MNA)) (*mna.MNA, error) {
	m, t, err := cir.MNA(config)
	if err != nil {
		return nil, err
	}
	if setup != nil {
		setup(m)
	}
	m.Debug.Init(m)
	steps := int(math.Floor(config.EndTime/config.TimeStep + 1e-9))
	for step := 1; step <= steps; step++ {
		t.Time = float64(step) * config.TimeStep
		m.Time = t.Time
		for _, ele := range cir.Elements {
			ele.StartIteration(m, t)
		}
		m.ClearRightSide()
		for _, ele := range cir.Elements {
			ele.DoStep(m, t)
		}
		if err := m.Solve(); err != nil {
			m.Debug.Error(err)
			return m, fmt.Errorf("circuit: step %d: %w", step, err)
		}
		for _, ele := range cir.Elements {
			ele.CalculateCurrent(m, t)
		}
		if m.Debug.IsDebug() {
			m.Debug.Update(m)
		}
	}
	return m, nil
}
