package maths

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// LU 带增量前沿的稠密LU分解器
//
// 实时系数矩阵与分解缓冲区均按内部行序存储，外部调用始终使用原始（外部）行索引：
//
//	mat[perm.Internal(i)] 保存外部第i个方程的系数
//	lu  保存分解结果：严格下三角为消元因子L（单位对角线隐含），其余为U
//
// maxK 为已分解前沿：内部行 [0,maxK) 的消元已提交到 lu 中，Factorize 只重做 [maxK,n)。
// 系数矩阵的修改不会自动移动前沿，调用方修改前沿之下的行后必须调用
// MarkRowDirty/MarkDirtyFrom/Invalidate（或 SwapRows）声明失效。
//
// LU 不是并发安全的，同一实例上的调用必须串行。
type LU struct {
	n     int
	mat   *denseStore  // 实时系数矩阵
	lu    *denseStore  // 分解缓冲区
	y     []float64    // 求解暂存向量（内部行序）
	r     []float64    // 残差暂存向量
	perm  *Permutation // 外部行 → 内部行
	maxK  int          // 已分解前沿
	stats Stats        // 诊断计数
}

// NewLU 创建固定维度的LU分解器
// 参数:
//
//	size - 方程数量，允许为0，构造后不可更改
//
// 返回:
//
//	分解器实例，size为负时返回 ErrBadSize
func NewLU(size int) (*LU, error) {
	if size < 0 {
		return nil, mathsErrorf(opNewLU, fmt.Errorf("%w: %d", ErrBadSize, size))
	}
	return &LU{
		n:    size,
		mat:  newDenseStore(size, size),
		lu:   newDenseStore(size, size),
		y:    make([]float64, size),
		r:    make([]float64, size),
		perm: NewPermutation(size),
	}, nil
}

// Size 方程数量
func (l *LU) Size() int { return l.n }

// Frontier 已分解前沿，n 表示分解完整可直接复用
func (l *LU) Frontier() int { return l.maxK }

// Permutation 返回当前置换映射的副本
func (l *LU) Permutation() []int { return l.perm.Slice() }

// InternalRow 外部行对应的内部存储行
func (l *LU) InternalRow(row int) int { return l.perm.Internal(row) }

// ExternalRow 内部存储行对应的外部行
func (l *LU) ExternalRow(row int) int { return l.perm.External(row) }

// Get 获取外部第row行第col列的系数
func (l *LU) Get(row, col int) float64 {
	return l.mat.Get(l.perm.Internal(row), col)
}

// Set 设置系数（不改变前沿）
func (l *LU) Set(row, col int, value float64) {
	l.mat.Set(l.perm.Internal(row), col, value)
}

// Increment 累加系数（不改变前沿）
func (l *LU) Increment(row, col int, value float64) {
	l.mat.Increment(l.perm.Internal(row), col, value)
}

// Row 外部第row行系数的视图，修改视图不改变前沿
func (l *LU) Row(row int) []float64 {
	return l.mat.Row(l.perm.Internal(row))
}

// Zero 清空系数矩阵（不改变前沿）
func (l *LU) Zero() {
	l.mat.Zero()
}

// SwapRows 交换外部行 a、b 的内部位置
// 存储行与映射同时交换，外部看到的矩阵不变，只改变消元顺序；
// 任何交换都会使已有分解失效（前沿归零）。索引越界时 panic。
func (l *LU) SwapRows(a, b int) {
	if a < 0 || a >= l.n {
		panic(outOfRange(opSwapRows, "a", a, l.n))
	}
	if b < 0 || b >= l.n {
		panic(outOfRange(opSwapRows, "b", b, l.n))
	}
	if a == b {
		return
	}
	l.mat.SwapRows(l.perm.forward[a], l.perm.forward[b])
	l.perm.Swap(a, b)
	l.maxK = 0
	l.stats.Swaps++
}

// MarkDirtyFrom 声明内部行 row 及其后的行需要重新分解
func (l *LU) MarkDirtyFrom(row int) {
	if row < 0 {
		row = 0
	}
	if row < l.maxK {
		l.maxK = row
	}
}

// MarkRowDirty 声明外部行 row 的系数已被修改
func (l *LU) MarkRowDirty(row int) {
	l.MarkDirtyFrom(l.perm.Internal(row))
}

// Invalidate 丢弃全部分解结果
func (l *LU) Invalidate() {
	l.maxK = 0
}

// clampPivot 主元钳位：|主元| < PivotEpsilon 时按符号替换为 ±PivotEpsilon
func (l *LU) clampPivot(row []float64, k int) float64 {
	pivot := row[k]
	if math.Abs(pivot) < PivotEpsilon {
		if pivot < 0 {
			pivot = -PivotEpsilon
		} else {
			pivot = PivotEpsilon
		}
		row[k] = pivot
		l.stats.ClampedPivots++
	}
	return pivot
}

// Factorize 增量LU分解（不选主元，行顺序由 SwapRows 决定）
//
// 算法步骤:
//  1. 前沿已等于 n 时直接返回（分解可复用）
//  2. 将实时矩阵内部行 [maxK, n) 复制到分解缓冲区
//  3. 对每个主元列 k ∈ [0, n-1)：
//     a. 主元钳位（|主元| < 1e-10 时按符号钳位）
//     b. 对行 i ∈ [max(k+1, maxK), n)：L[i][k] = A[i][k] / 主元
//     c. |L[i][k]| > 1e-12 时执行 A[i][k+1:] -= L[i][k] * A[k][k+1:]
//  4. 钳位最后一个主元，前沿置为 n
//
// 前沿之上的行已经完成全部消元，作为主元行只读使用，不会被重复处理。
func (l *LU) Factorize() {
	n := l.n
	if n == 0 || l.maxK == n {
		return
	}
	// 复制受影响的行
	for i := l.maxK; i < n; i++ {
		l.lu.CopySegment(l.mat, i, 0, n)
	}
	for k := 0; k < n-1; k++ {
		pivot := l.clampPivot(l.lu.Row(k), k)
		for i := max(k+1, l.maxK); i < n; i++ {
			row := l.lu.Row(i)
			row[k] /= pivot
			if factor := row[k]; math.Abs(factor) > MultiplierEpsilon {
				l.lu.PartialSAF(k, i, k+1, -factor)
				l.stats.Eliminations++
			}
		}
	}
	l.clampPivot(l.lu.Row(n-1), n-1)
	l.maxK = n
	l.stats.Factorizations++
}

// Solve 利用分解结果原地求解 A·x = b
// 参数:
//
//	b - 按外部行索引的右侧向量，求解后被解向量覆盖
//
// 返回:
//
//	长度不等于 n 时返回 ErrDimensionMismatch
//
// 注意:
//
//	调用前必须已完成 Factorize（前沿为 n），否则结果无意义且不报错。
//	只置换行不置换列，因此解向量按未知量（列）顺序写回，无需逆置换。
func (l *LU) Solve(b []float64) error {
	n := l.n
	if len(b) != n {
		return mathsErrorf(opSolve, fmt.Errorf("%w: len(b)=%d, size=%d", ErrDimensionMismatch, len(b), n))
	}
	if n == 0 {
		return nil
	}
	y := l.y
	// 应用置换
	for i, v := range b {
		y[l.perm.forward[i]] = v
	}
	// 前向替换：L 为单位下三角
	for i := 1; i < n; i++ {
		row := l.lu.Row(i)
		sum := 0.0
		for j, v := range row[:i] {
			sum += v * y[j]
		}
		y[i] -= sum
	}
	// 后向替换
	y[n-1] /= l.lu.Row(n - 1)[n-1]
	for i := n - 2; i >= 0; i-- {
		row := l.lu.Row(i)
		sum := 0.0
		for j := i + 1; j < n; j++ {
			sum += row[j] * y[j]
		}
		y[i] = (y[i] - sum) / row[i]
	}
	copy(b, y)
	return nil
}

// SolveTo 将 b 复制到 x 后原地求解，b 不被修改
func (l *LU) SolveTo(b, x []float64) error {
	if len(b) != len(x) {
		return mathsErrorf(opSolve, fmt.Errorf("%w: len(b)=%d, len(x)=%d", ErrDimensionMismatch, len(b), len(x)))
	}
	copy(x, b)
	return l.Solve(x)
}

// Multiply 使用实时系数矩阵计算 result = A·x（按外部行），不分配内存
// 存储层的批量乘法不感知行置换，这里逐行经置换映射计算。
func (l *LU) Multiply(x, result []float64) error {
	if len(x) != l.n || len(result) != l.n {
		return mathsErrorf(opMultiply, fmt.Errorf("%w: len(x)=%d, len(result)=%d, size=%d", ErrDimensionMismatch, len(x), len(result), l.n))
	}
	clear(result)
	for i := range result {
		row := l.mat.Row(l.perm.forward[i])
		sum := 0.0
		for j, v := range row {
			sum += v * x[j]
		}
		result[i] = sum
	}
	return nil
}

// Residual 返回残差 ‖A·x - b‖₂
func (l *LU) Residual(b, x []float64) (float64, error) {
	if len(b) != l.n {
		return 0, mathsErrorf(opResidual, fmt.Errorf("%w: len(b)=%d, size=%d", ErrDimensionMismatch, len(b), l.n))
	}
	if err := l.Multiply(x, l.r); err != nil {
		return 0, err
	}
	if l.n == 0 {
		return 0, nil
	}
	floats.Sub(l.r, b)
	return floats.Norm(l.r, 2), nil
}
