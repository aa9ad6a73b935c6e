package maths

// 数值阈值
const (
	PivotEpsilon      = 1e-10 // 主元钳位阈值：|主元| 小于该值时按符号钳位为 ±PivotEpsilon
	MultiplierEpsilon = 1e-12 // 消元因子阈值：|因子| 不大于该值时跳过该行消元
)

// Solver 稠密线性方程组求解接口（A·x = b）
// 所有行索引均为外部行索引，置换仅在内部生效
type Solver interface {
	// 基础属性方法
	Size() int     // 方程数量
	Frontier() int // 已分解前沿

	// 行映射方法（越界panic）
	InternalRow(row int) int // 外部行 → 内部行
	ExternalRow(row int) int // 内部行 → 外部行

	// 系数访问方法（不改变分解前沿）
	Get(row, col int) float64              // 获取系数
	Set(row, col int, value float64)       // 设置系数
	Increment(row, col int, value float64) // 累加系数
	Zero()                                 // 清空系数矩阵

	// 分解失效标记
	SwapRows(a, b int)     // 交换两行（重置前沿）
	MarkDirtyFrom(row int) // 内部行 row 及之后的行需要重新分解
	MarkRowDirty(row int)  // 外部行 row 已被修改
	Invalidate()           // 全部重新分解

	// 求解方法
	Factorize()                               // 增量LU分解
	Solve(b []float64) error                  // 原地求解
	Multiply(x, result []float64) error       // result = A·x
	Residual(b, x []float64) (float64, error) // ‖A·x - b‖₂

	// 诊断方法
	Stats() Stats
}

var _ Solver = (*LU)(nil)
