package mna

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"circuitlu/maths"
)

// NodeID 节点
type NodeID = int

// VoltageID 电压源
type VoltageID = int

// Gnd 地节点，所有加盖操作忽略地节点
const Gnd NodeID = -1

// ErrResidual 求解残差超出容差
var ErrResidual = errors.New("mna: residual exceeds tolerance")

// Config 求解参数
type Config struct {
	Verbose           bool    // 输出主元钳位日志
	ResidualTolerance float64 // 大于0时每次求解后校验 ‖A·x - z‖₂
}

// MNA (Modified Nodal Analysis) 电路方程构建器
//
// 方程 A·x = z 中前 NodesNum 行为节点KCL方程，其后 VoltageSourcesNum 行为电压源约束方程。
// 矩阵系数直接写入 maths.Solver 的实时矩阵，每次修改矩阵都会标记对应行失效，
// 只改变右侧向量 z 时分解结果可以直接复用。
type MNA struct {
	Config
	Debug             Debug        // 调试信息
	Time              float64      // 当前仿真时间，由时间循环维护
	LastFrontier      int          // 最近一次求解前的分解前沿，等于 Size() 表示直接复用
	NodesNum          int          // 电路节点数量（不含地节点）
	VoltageSourcesNum int          // 电压源数量
	solver            maths.Solver // 系数矩阵与LU分解
	Z                 []float64    // 右侧激励向量
	X                 []float64    // 解向量
}

// NewMNA 创建MNA方程构建器
//
//	nodesNum: 电路节点数量（不含地节点）
//	vsNum: 电压源数量
func NewMNA(nodesNum, vsNum int, config Config) (*MNA, error) {
	if nodesNum < 0 || vsNum < 0 {
		return nil, fmt.Errorf("mna: invalid circuit size nodes=%d voltage sources=%d", nodesNum, vsNum)
	}
	n := nodesNum + vsNum
	solver, err := maths.NewLU(n)
	if err != nil {
		return nil, fmt.Errorf("mna: %w", err)
	}
	return &MNA{
		Config:            config,
		Debug:             &debug{},
		NodesNum:          nodesNum,
		VoltageSourcesNum: vsNum,
		solver:            solver,
		Z:                 make([]float64, n),
		X:                 make([]float64, n),
	}, nil
}

// ------------------------------ 系统信息查询 ------------------------------

func (m *MNA) Size() int                 { return len(m.X) }
func (m *MNA) Solver() maths.Solver      { return m.solver }
func (m *MNA) GetX() []float64           { return m.X }
func (m *MNA) GetZ() []float64           { return m.Z }
func (m *MNA) GetNodeNum() int           { return m.NodesNum }
func (m *MNA) GetVoltageSourcesNum() int { return m.VoltageSourcesNum }

// GetNodeVoltage 从解向量中获取节点电压，地节点或无效节点返回0
func (m *MNA) GetNodeVoltage(i NodeID) float64 {
	if i > Gnd && i < m.NodesNum {
		return m.X[i]
	}
	return 0
}

// GetVoltageSourceCurrent 从解向量中获取流经电压源的电流
func (m *MNA) GetVoltageSourceCurrent(vs VoltageID) float64 {
	if vs > -1 && vs < m.VoltageSourcesNum {
		return m.X[m.NodesNum+vs]
	}
	return 0
}

// ------------------------------ MNA矩阵操作 ------------------------------

// StampMatrix 将值累加到矩阵(i,j)，并标记第i行需要重新分解
func (m *MNA) StampMatrix(i, j NodeID, value float64) {
	if i > Gnd && j > Gnd && value != 0 {
		m.solver.Increment(i, j, value)
		m.solver.MarkRowDirty(i)
	}
}

// StampMatrixSet 直接设置矩阵(i,j)，值变化时标记第i行需要重新分解
func (m *MNA) StampMatrixSet(i, j NodeID, value float64) {
	if i > Gnd && j > Gnd && m.solver.Get(i, j) != value {
		m.solver.Set(i, j, value)
		m.solver.MarkRowDirty(i)
	}
}

// StampRightSide 将值累加到右侧向量第i项
func (m *MNA) StampRightSide(i NodeID, value float64) {
	if i > Gnd {
		m.Z[i] += value
	}
}

// StampRightSideSet 直接设置右侧向量第i项
func (m *MNA) StampRightSideSet(i NodeID, value float64) {
	if i > Gnd {
		m.Z[i] = value
	}
}

// ClearMatrix 清空系数矩阵，之后需要重新加盖全部线性元件
func (m *MNA) ClearMatrix() {
	m.solver.Zero()
	m.solver.Invalidate()
}

// ClearRightSide 清空右侧向量，不影响分解结果
func (m *MNA) ClearRightSide() {
	clear(m.Z)
}

// ------------------------------ 无源元件加盖 ------------------------------

// StampConductance 电导加盖，修改矩阵中的四个元素
func (m *MNA) StampConductance(n1, n2 NodeID, g float64) {
	m.StampMatrix(n1, n1, g)
	m.StampMatrix(n2, n2, g)
	m.StampMatrix(n1, n2, -g)
	m.StampMatrix(n2, n1, -g)
}

// StampResistor 电阻加盖，r过小时按 1e9 电导处理避免除零
func (m *MNA) StampResistor(n1, n2 NodeID, r float64) {
	g := 1e9
	if r > 1e-9 {
		g = 1 / r
	}
	m.StampConductance(n1, n2, g)
}

// ------------------------------ 独立源加盖 ------------------------------

// StampCurrentSource 电流源加盖，电流 i 在外部由 n1 流向 n2
func (m *MNA) StampCurrentSource(n1, n2 NodeID, i float64) {
	m.StampRightSide(n1, -i)
	m.StampRightSide(n2, i)
}

// StampVoltageSource 电压源加盖：引入电流未知量并建立 V(n1) - V(n2) = v 约束
func (m *MNA) StampVoltageSource(n1, n2 NodeID, vs VoltageID, v float64) {
	if vs < 0 {
		return
	}
	vsRow := m.NodesNum + vs
	// KCL方程: I(vs) 对 n1/n2 节点的贡献
	m.StampMatrix(n1, vsRow, 1)
	m.StampMatrix(n2, vsRow, -1)
	// 电压源约束方程
	m.StampMatrix(vsRow, n1, 1)
	m.StampMatrix(vsRow, n2, -1)
	m.StampRightSideSet(vsRow, v)
}

// UpdateVoltageSource 更新电压源电压，只修改右侧向量
func (m *MNA) UpdateVoltageSource(vs VoltageID, v float64) {
	if vs < 0 {
		return
	}
	m.StampRightSideSet(m.NodesNum+vs, v)
}

// ------------------------------ 受控源加盖 ------------------------------

// StampVCCS 电压控制电流源：电流 gain*(V(vn1)-V(vn2)) 由 cn1 流向 cn2
func (m *MNA) StampVCCS(cn1, cn2, vn1, vn2 NodeID, gain float64) {
	m.StampMatrix(cn1, vn1, gain)
	m.StampMatrix(cn1, vn2, -gain)
	m.StampMatrix(cn2, vn1, -gain)
	m.StampMatrix(cn2, vn2, gain)
}

// StampCCCS 电流控制电流源：电流 gain*I(cs) 由 cn1 流向 cn2
func (m *MNA) StampCCCS(cn1, cn2 NodeID, cs VoltageID, gain float64) {
	if cs < 0 {
		return
	}
	csCol := m.NodesNum + cs
	m.StampMatrix(cn1, csCol, gain)
	m.StampMatrix(cn2, csCol, -gain)
}

// StampVCVS 电压控制电压源：V(on1) - V(on2) = gain*(V(cn1) - V(cn2))
func (m *MNA) StampVCVS(on1, on2, cn1, cn2 NodeID, vs VoltageID, gain float64) {
	if vs < 0 {
		return
	}
	vsRow := m.NodesNum + vs
	m.StampMatrix(on1, vsRow, 1)
	m.StampMatrix(on2, vsRow, -1)
	m.StampMatrix(vsRow, on1, 1)
	m.StampMatrix(vsRow, on2, -1)
	m.StampMatrix(vsRow, cn1, -gain)
	m.StampMatrix(vsRow, cn2, gain)
	m.StampRightSideSet(vsRow, 0)
}

// ------------------------------ 求解 ------------------------------

// Solve 分解（必要时）并求解 A·x = z，结果写入 X
func (m *MNA) Solve() error {
	clamped := m.solver.Stats().ClampedPivots
	m.LastFrontier = m.solver.Frontier()
	m.solver.Factorize()
	if s := m.solver.Stats(); m.Verbose && s.ClampedPivots > clamped {
		log.Printf("mna: t=%g 主元钳位 %d 次，结果可能不准确", m.Time, s.ClampedPivots-clamped)
	}
	copy(m.X, m.Z)
	if err := m.solver.Solve(m.X); err != nil {
		return fmt.Errorf("mna solve: %w", err)
	}
	if m.ResidualTolerance > 0 {
		res, err := m.solver.Residual(m.Z, m.X)
		if err != nil {
			return fmt.Errorf("mna residual: %w", err)
		}
		if res > m.ResidualTolerance {
			return fmt.Errorf("%w: %g > %g (t=%g)", ErrResidual, res, m.ResidualTolerance, m.Time)
		}
	}
	return nil
}

// String 返回矩阵A、向量Z与X的文本形式
func (m *MNA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "MNA Matrix (size=%d):\n", m.Size())
	sb.WriteString(fmt.Sprint(m.solver))
	fmt.Fprintf(&sb, "Z: %v\nX: %v\n", m.Z, m.X)
	return sb.String()
}
