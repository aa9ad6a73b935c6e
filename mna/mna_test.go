package mna

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 电压源 5V 接节点0，电阻 100Ω 接地
func TestVoltageSourceResistor(t *testing.T) {
	m, err := NewMNA(1, 1, Config{})
	require.NoError(t, err)
	m.StampVoltageSource(0, Gnd, 0, 5)
	m.StampResistor(0, Gnd, 100)
	require.NoError(t, m.Solve())

	assert.InDelta(t, 5.0, m.GetNodeVoltage(0), 1e-9)
	// 负号表示电流方向
	assert.InDelta(t, -0.05, m.GetVoltageSourceCurrent(0), 1e-9)
	assert.Zero(t, m.GetNodeVoltage(Gnd))
	assert.Zero(t, m.GetVoltageSourceCurrent(3))
}

// 电流源 0.02A 从节点0抽出，经 100Ω 接 5V
func TestCurrentSource(t *testing.T) {
	m, err := NewMNA(2, 1, Config{})
	require.NoError(t, err)
	m.StampVoltageSource(1, Gnd, 0, 5)
	m.StampResistor(1, 0, 100)
	m.StampCurrentSource(0, Gnd, 0.02)
	m.Reorder()
	require.NoError(t, m.Solve())
	assert.Zero(t, m.Solver().Stats().ClampedPivots)

	assert.InDelta(t, 5.0, m.GetNodeVoltage(1), 1e-9)
	assert.InDelta(t, 3.0, m.GetNodeVoltage(0), 1e-9)
}

// 分压器 10V, 1k, 3k
func TestVoltageDivider(t *testing.T) {
	m, err := NewMNA(2, 1, Config{ResidualTolerance: 1e-9})
	require.NoError(t, err)
	m.StampVoltageSource(0, Gnd, 0, 10)
	m.StampResistor(0, 1, 1000)
	m.StampResistor(1, Gnd, 3000)
	require.NoError(t, m.Solve())

	assert.InDelta(t, 7.5, m.GetNodeVoltage(1), 1e-9)
	assert.InDelta(t, -2.5e-3, m.GetVoltageSourceCurrent(0), 1e-12)
}

// 只修改右侧向量时复用分解结果
func TestRightSideReuse(t *testing.T) {
	m, err := NewMNA(2, 1, Config{})
	require.NoError(t, err)
	m.StampVoltageSource(0, Gnd, 0, 1)
	m.StampResistor(0, 1, 1000)
	m.StampResistor(1, Gnd, 1000)
	require.NoError(t, m.Solve())
	assert.Equal(t, 0, m.LastFrontier)

	for _, v := range []float64{2, 4, 8} {
		m.ClearRightSide()
		m.UpdateVoltageSource(0, v)
		require.NoError(t, m.Solve())
		assert.Equal(t, m.Size(), m.LastFrontier)
		assert.InDelta(t, v/2, m.GetNodeVoltage(1), 1e-9)
	}
	assert.Equal(t, 1, m.Solver().Stats().Factorizations)
}

// 修改矩阵只从最早失效的内部行开始重新分解
func TestStampMarksDirty(t *testing.T) {
	m, err := NewMNA(3, 1, Config{})
	require.NoError(t, err)
	m.StampVoltageSource(0, Gnd, 0, 6)
	m.StampResistor(0, 1, 1000)
	m.StampResistor(1, 2, 1000)
	m.StampResistor(2, Gnd, 1000)
	require.NoError(t, m.Solve())
	assert.InDelta(t, 2.0, m.GetNodeVoltage(2), 1e-9)

	// 节点2再并联 1k 接地
	m.StampResistor(2, Gnd, 1000)
	assert.Equal(t, 2, m.Solver().Frontier())
	require.NoError(t, m.Solve())
	assert.Equal(t, 2, m.LastFrontier)
	// 6V 经 2k 对 500Ω 分压
	assert.InDelta(t, 1.2, m.GetNodeVoltage(2), 1e-9)

	// 设置相同的值不会使分解失效
	m.StampMatrixSet(2, 2, m.Solver().Get(2, 2))
	assert.Equal(t, m.Size(), m.Solver().Frontier())
}

func TestClearMatrix(t *testing.T) {
	m, err := NewMNA(1, 1, Config{})
	require.NoError(t, err)
	m.StampVoltageSource(0, Gnd, 0, 5)
	m.StampResistor(0, Gnd, 100)
	require.NoError(t, m.Solve())

	m.ClearMatrix()
	assert.Equal(t, 0, m.Solver().Frontier())
	for i := 0; i < m.Size(); i++ {
		for j := 0; j < m.Size(); j++ {
			assert.Zero(t, m.Solver().Get(i, j))
		}
	}
	m.StampVoltageSource(0, Gnd, 0, 5)
	m.StampResistor(0, Gnd, 50)
	require.NoError(t, m.Solve())
	assert.InDelta(t, -0.1, m.GetVoltageSourceCurrent(0), 1e-9)
}

// 串联电压源：重排后不再出现零主元
func TestReorderSeriesSources(t *testing.T) {
	m, err := NewMNA(2, 2, Config{ResidualTolerance: 1e-9})
	require.NoError(t, err)
	m.StampVoltageSource(0, 1, 0, 3)
	m.StampVoltageSource(1, Gnd, 1, 2)
	m.StampResistor(0, Gnd, 1000)

	assert.Positive(t, m.Reorder())
	require.NoError(t, m.Solve())
	assert.Zero(t, m.Solver().Stats().ClampedPivots)
	assert.InDelta(t, 5.0, m.GetNodeVoltage(0), 1e-9)
	assert.InDelta(t, 2.0, m.GetNodeVoltage(1), 1e-9)
	// 电流 5mA 从电阻流出，两电压源串联
	assert.InDelta(t, -5e-3, m.GetVoltageSourceCurrent(0), 1e-12)
	assert.InDelta(t, -5e-3, m.GetVoltageSourceCurrent(1), 1e-12)
}

func TestReorderNoop(t *testing.T) {
	m, err := NewMNA(2, 0, Config{})
	require.NoError(t, err)
	m.StampResistor(0, 1, 10)
	m.StampResistor(1, Gnd, 10)
	m.StampCurrentSource(Gnd, 0, 1)
	assert.Equal(t, 0, m.Reorder())
	assert.Equal(t, []int{0, 1}, m.Solver().(interface{ Permutation() []int }).Permutation())
}

// VCVS 增益2：输入 1.5V，输出 3V
func TestVCVS(t *testing.T) {
	m, err := NewMNA(2, 2, Config{ResidualTolerance: 1e-9})
	require.NoError(t, err)
	m.StampVoltageSource(0, Gnd, 0, 1.5)
	m.StampResistor(0, Gnd, 1000)
	m.StampVCVS(1, Gnd, 0, Gnd, 1, 2)
	m.StampResistor(1, Gnd, 1000)
	m.Reorder()
	require.NoError(t, m.Solve())
	assert.InDelta(t, 3.0, m.GetNodeVoltage(1), 1e-9)
	assert.InDelta(t, -3e-3, m.GetVoltageSourceCurrent(1), 1e-12)
}

// VCCS 跨导 1mS：输入 2V，电流 2mA 流入 1kΩ 负载
func TestVCCS(t *testing.T) {
	m, err := NewMNA(2, 1, Config{})
	require.NoError(t, err)
	m.StampVoltageSource(0, Gnd, 0, 2)
	m.StampVCCS(Gnd, 1, 0, Gnd, 1e-3)
	m.StampResistor(1, Gnd, 1000)
	m.Reorder()
	require.NoError(t, m.Solve())
	assert.InDelta(t, 2.0, m.GetNodeVoltage(1), 1e-9)
}

// CCCS 增益10：控制电流取自电压源支路
func TestCCCS(t *testing.T) {
	m, err := NewMNA(2, 1, Config{})
	require.NoError(t, err)
	m.StampVoltageSource(0, Gnd, 0, 1)
	m.StampResistor(0, Gnd, 1000)
	// I(vs) = -1mA，电流 10*I(vs) 由地流向节点1
	m.StampCCCS(Gnd, 1, 0, 10)
	m.StampResistor(1, Gnd, 100)
	m.Reorder()
	require.NoError(t, m.Solve())
	assert.InDelta(t, -1.0, m.GetNodeVoltage(1), 1e-9)
}

func TestResidualCheck(t *testing.T) {
	m, err := NewMNA(2, 0, Config{ResidualTolerance: 1e-9})
	require.NoError(t, err)
	// 奇异矩阵：两节点之间只有电阻，没有到地的通路
	m.StampResistor(0, 1, 1)
	m.StampCurrentSource(Gnd, 0, 1)
	err = m.Solve()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResidual)
}

func TestVerboseLog(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	m, err := NewMNA(2, 0, Config{Verbose: true})
	require.NoError(t, err)
	m.StampResistor(0, 1, 1)
	require.NoError(t, m.Solve())
	assert.True(t, strings.Contains(buf.String(), "主元钳位"), buf.String())
}

func TestNewMNABadSize(t *testing.T) {
	_, err := NewMNA(-1, 0, Config{})
	assert.Error(t, err)
	m, err := NewMNA(0, 0, Config{})
	require.NoError(t, err)
	assert.NoError(t, m.Solve())
	assert.Contains(t, m.String(), "size=0")
}
