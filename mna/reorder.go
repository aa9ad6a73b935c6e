package mna

import (
	"log"
	"math"
)

// pivotThreshold 当前主元不小于列最大值的该比例时保持原顺序
const pivotThreshold = 0.1

// Reorder 在首次分解前调整方程的消元顺序，减少零主元
//
// 电压源约束方程在自身列上系数为0，节点方程消元后也可能出现零主元（例如只经电阻连到电压源的节点）。
// 在矩阵副本上按阈值部分选主元做一次试消元，把选出的行顺序通过 SwapRows 应用到求解器。
// 交换只改变消元顺序，不改变方程本身；元件之后的加盖保持结构不变时该顺序可以一直复用。
// 返回交换次数。
func (m *MNA) Reorder() int {
	s := m.solver
	n := s.Size()
	order := make([]int, n) // order[k] 为第k个位置上的外部行
	a := make([][]float64, n)
	for k := range a {
		order[k] = s.ExternalRow(k)
		a[k] = make([]float64, n)
		for j := range a[k] {
			a[k][j] = s.Get(order[k], j)
		}
	}
	swaps := 0
	for k := 0; k < n; k++ {
		best := k
		for i := k + 1; i < n; i++ {
			if math.Abs(a[i][k]) > math.Abs(a[best][k]) {
				best = i
			}
		}
		if best != k && math.Abs(a[k][k]) < pivotThreshold*math.Abs(a[best][k]) {
			s.SwapRows(order[k], order[best])
			order[k], order[best] = order[best], order[k]
			a[k], a[best] = a[best], a[k]
			swaps++
		}
		pivot := a[k][k]
		if pivot == 0 {
			continue
		}
		for i := k + 1; i < n; i++ {
			f := a[i][k] / pivot
			if f == 0 {
				continue
			}
			for j := k + 1; j < n; j++ {
				a[i][j] -= f * a[k][j]
			}
		}
	}
	if m.Verbose && swaps > 0 {
		log.Printf("mna: 重排方程顺序 %d 次", swaps)
	}
	return swaps
}
