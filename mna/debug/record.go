package debug

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"circuitlu/mna"
)

// ErrEmpty 没有记录任何时间步
var ErrEmpty = errors.New("debug: no recorded steps")

// Record 记录历史状态
type Record struct {
	Time       []float64   // 时间列
	Voltage    [][]float64 // 节点电压列
	Current    [][]float64 // 电压源电流列
	CurrentStr []string    // 电流信息
	Incentive  [][]float64 // 激励列
	Residual   []float64   // 残差列 ‖A·x - z‖₂
	Frontier   []int       // 求解前的分解前沿
	Swaps      int         // 行交换次数
	Factorize  int         // 实际分解次数
	Clamped    int         // 主元钳位次数
}

// Init 初始化
func (list *Record) Init(m *mna.MNA) {
	*list = Record{}
	for id := 0; id < m.VoltageSourcesNum; id++ {
		list.CurrentStr = append(list.CurrentStr, fmt.Sprintf("电压源(%d)", id))
	}
}

func (*Record) IsDebug() bool { return true }

// Update 记录数据
func (list *Record) Update(m *mna.MNA) {
	X, Z := m.GetX(), m.GetZ()
	list.Time = append(list.Time, m.Time)
	list.Voltage = append(list.Voltage, append([]float64{}, X[:m.NodesNum]...))
	list.Current = append(list.Current, append([]float64{}, X[m.NodesNum:]...))
	list.Incentive = append(list.Incentive, append([]float64{}, Z...))
	res, err := m.Solver().Residual(Z, X)
	if err != nil {
		list.Error(err)
	}
	list.Residual = append(list.Residual, res)
	s := m.Solver().Stats()
	list.Frontier = append(list.Frontier, m.LastFrontier)
	list.Swaps, list.Factorize, list.Clamped = s.Swaps, s.Factorizations, s.ClampedPivots
}

// Len 已记录的时间步数
func (list *Record) Len() int { return len(list.Time) }

// Render 格式和输出内容
func (list *Record) Render(w io.Writer) error { return json.NewEncoder(w).Encode(list) }

func (list *Record) Error(err error) { log.Println(err) }
