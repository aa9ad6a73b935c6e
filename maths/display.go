package maths

import (
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Stats 分解器诊断计数，仅用于调试，不影响计算结果
type Stats struct {
	Size           int // 方程数量
	Frontier       int // 当前前沿
	Swaps          int // 行交换次数
	Factorizations int // 实际执行的分解次数（不含直接复用）
	Eliminations   int // 行消元次数
	ClampedPivots  int // 主元钳位次数
}

// Stats 返回诊断计数快照
func (l *LU) Stats() Stats {
	s := l.stats
	s.Size = l.n
	s.Frontier = l.maxK
	return s
}

// PermutationString 以 "0->1  1->0  2->2" 格式输出置换映射
func (l *LU) PermutationString() string {
	return l.perm.String()
}

// writeRows 按外部行输出存储 m 的内容，每个元素标注列号
func (l *LU) writeRows(sb *strings.Builder, m *denseStore) {
	for i := 0; i < l.n; i++ {
		row := m.Row(l.perm.forward[i])
		for j, v := range row {
			if j > 0 && v >= 0 {
				sb.WriteByte('+')
			}
			fmt.Fprintf(sb, "%g(%d)", v, j)
		}
		sb.WriteByte('\n')
	}
}

// DisplayMatrix 输出实时系数矩阵
func (l *LU) DisplayMatrix(w io.Writer) error {
	var sb strings.Builder
	l.writeRows(&sb, l.mat)
	_, err := io.WriteString(w, sb.String())
	return err
}

// DisplayLU 输出分解缓冲区及置换映射
func (l *LU) DisplayLU(w io.Writer) error {
	var sb strings.Builder
	l.writeRows(&sb, l.lu)
	sb.WriteString("perm: ")
	sb.WriteString(l.perm.String())
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

// String 返回实时系数矩阵的文本形式
func (l *LU) String() string {
	var sb strings.Builder
	l.writeRows(&sb, l.mat)
	return sb.String()
}

// Condition 估算实时系数矩阵的2-范数条件数，奇异矩阵返回 +Inf
func (l *LU) Condition() float64 {
	if l.n == 0 {
		return 1
	}
	a := mat.NewDense(l.n, l.n, nil)
	for i := 0; i < l.n; i++ {
		a.SetRow(i, l.mat.Row(l.perm.forward[i]))
	}
	c := mat.Cond(a, 2)
	if math.IsNaN(c) {
		return math.Inf(1)
	}
	return c
}
