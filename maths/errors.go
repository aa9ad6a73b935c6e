package maths

import (
	"errors"
	"fmt"
)

// 哨兵错误，统一以 "maths: " 为前缀，调用方通过 errors.Is 匹配
var (
	// ErrBadSize 矩阵尺寸非法（负数）
	ErrBadSize = errors.New("maths: invalid matrix size")
	// ErrOutOfRange 行或列索引越界
	ErrOutOfRange = errors.New("maths: index out of range")
	// ErrDimensionMismatch 向量长度与矩阵尺寸不一致
	ErrDimensionMismatch = errors.New("maths: dimension mismatch")
)

// 操作名称，用于错误包装
const (
	opNewLU    = "NewLU"
	opSwapRows = "SwapRows"
	opSolve    = "Solve"
	opMultiply = "Multiply"
	opResidual = "Residual"
	opAccess   = "Access"
)

// mathsErrorf 使用操作名包装错误，保留底层哨兵
func mathsErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// outOfRange 构造越界错误（用于 panic）
func outOfRange(op, what string, index, limit int) error {
	return mathsErrorf(op, fmt.Errorf("%w: %s=%d (size %d)", ErrOutOfRange, what, index, limit))
}
