package maths

import (
	"fmt"
	"strings"
)

// denseStore 稠密矩形存储（行优先连续缓冲区）
// 本身不具备线性代数语义，只提供行级访问与消元所需的批量操作
type denseStore struct {
	rows, cols int
	data       []float64 // 一维数组存储所有元素，第i行为 data[i*cols:(i+1)*cols]
}

// newDenseStore 创建指定维度的零矩阵存储
func newDenseStore(rows, cols int) *denseStore {
	if rows < 0 || cols < 0 {
		panic("invalid matrix dimensions: cannot be negative")
	}
	return &denseStore{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
}

// Rows 返回行数
func (m *denseStore) Rows() int {
	return m.rows
}

// Cols 返回列数
func (m *denseStore) Cols() int {
	return m.cols
}

// Row 返回第i行的视图（与底层共享存储，越界panic）
func (m *denseStore) Row(i int) []float64 {
	if i < 0 || i >= m.rows {
		panic(outOfRange(opAccess, "row", i, m.rows))
	}
	start := i * m.cols
	return m.data[start : start+m.cols : start+m.cols]
}

// checkCol 列索引越界检查
func (m *denseStore) checkCol(j int) {
	if j < 0 || j >= m.cols {
		panic(outOfRange(opAccess, "col", j, m.cols))
	}
}

// Get 获取元素
func (m *denseStore) Get(i, j int) float64 {
	m.checkCol(j)
	return m.Row(i)[j]
}

// Set 设置元素
func (m *denseStore) Set(i, j int, value float64) {
	m.checkCol(j)
	m.Row(i)[j] = value
}

// Increment 累加元素
func (m *denseStore) Increment(i, j int, value float64) {
	m.checkCol(j)
	m.Row(i)[j] += value
}

// SwapRows 交换两整行，O(cols)
func (m *denseStore) SwapRows(a, b int) {
	if a == b {
		return
	}
	ra, rb := m.Row(a), m.Row(b)
	for j := range ra {
		ra[j], rb[j] = rb[j], ra[j]
	}
}

// CopySegment 将 src 第 row 行 [fromCol, fromCol+count) 区段复制到自身同一位置
func (m *denseStore) CopySegment(src *denseStore, row, fromCol, count int) {
	if src.cols != m.cols {
		panic(fmt.Sprintf("dimension mismatch: source cols=%d, target cols=%d", src.cols, m.cols))
	}
	if count <= 0 {
		return
	}
	end := fromCol + count
	copy(m.Row(row)[fromCol:end], src.Row(row)[fromCol:end])
}

// PartialSAF 部分行缩放累加（消元核心）
// 对 col ∈ [fromCol, cols)：target[col] += scale * pivot[col]
func (m *denseStore) PartialSAF(pivot, target, fromCol int, scale float64) {
	p := m.Row(pivot)[fromCol:]
	t := m.Row(target)[fromCol:]
	t = t[:len(p)]
	for j, v := range p {
		t[j] += scale * v
	}
}

// Zero 清空为零矩阵
func (m *denseStore) Zero() {
	clear(m.data)
}

// String 格式化输出矩阵
func (m *denseStore) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		for _, v := range m.Row(i) {
			fmt.Fprintf(&sb, "%8.4f ", v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
