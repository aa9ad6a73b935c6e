package debug

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"circuitlu/mna"
)

var _ mna.Debug = (*Record)(nil)
var _ mna.Debug = (*Charts)(nil)
var _ mna.Debug = (*Plot)(nil)

// run 电压源经两个 1kΩ 分压，电压按步数递增
func run(t *testing.T, d mna.Debug, steps int) *mna.MNA {
	t.Helper()
	m, err := mna.NewMNA(2, 1, mna.Config{})
	require.NoError(t, err)
	m.Debug = d
	m.StampVoltageSource(0, mna.Gnd, 0, 0)
	m.StampResistor(0, 1, 1000)
	m.StampResistor(1, mna.Gnd, 1000)
	m.Reorder()
	m.Debug.Init(m)
	for step := 1; step <= steps; step++ {
		m.Time = float64(step) * 1e-3
		m.ClearRightSide()
		m.UpdateVoltageSource(0, float64(step))
		require.NoError(t, m.Solve())
		if m.Debug.IsDebug() {
			m.Debug.Update(m)
		}
	}
	return m
}

func TestRecord(t *testing.T) {
	record := &Record{}
	run(t, record, 4)

	require.Equal(t, 4, record.Len())
	assert.Equal(t, []string{"电压源(0)"}, record.CurrentStr)
	assert.InDeltaSlice(t, []float64{4, 2}, record.Voltage[3], 1e-12)
	assert.InDelta(t, -2e-3, record.Current[3][0], 1e-12)
	assert.Equal(t, []float64{0, 0, 4}, record.Incentive[3])
	assert.Equal(t, []int{0, 3, 3, 3}, record.Frontier)
	assert.Equal(t, 1, record.Factorize)
	for _, r := range record.Residual {
		assert.Less(t, r, 1e-12)
	}

	var buf bytes.Buffer
	require.NoError(t, record.Render(&buf))
	var decoded Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, record.Time, decoded.Time)

	// 重新初始化清空历史
	record.Init(&mna.MNA{VoltageSourcesNum: 2})
	assert.Zero(t, record.Len())
	assert.Len(t, record.CurrentStr, 2)
}

func TestCharts(t *testing.T) {
	charts := &Charts{}
	assert.ErrorIs(t, charts.Render(&bytes.Buffer{}), ErrEmpty)

	run(t, charts, 5)
	var buf bytes.Buffer
	require.NoError(t, charts.Render(&buf))
	html := buf.String()
	for _, s := range []string{"电压曲线", "电流曲线", "激励曲线", "求解信息", "Node(1)", "电压源(0)"} {
		assert.Contains(t, html, s)
	}

	rec := httptest.NewRecorder()
	charts.Handler(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "电压曲线")
}

func TestPlot(t *testing.T) {
	plot := &Plot{}
	assert.ErrorIs(t, plot.Render(&bytes.Buffer{}), ErrEmpty)

	run(t, plot, 5)
	var buf bytes.Buffer
	require.NoError(t, plot.Render(&buf))
	assert.Contains(t, buf.String(), "<svg")

	filename := filepath.Join(t.TempDir(), "voltage.png")
	require.NoError(t, plot.Save(filename))
	assert.FileExists(t, filename)
}
