package maths

import (
	"fmt"
	"strings"
)

// Permutation 行置换映射
//
//	forward[外部行] = 内部存储行
//	inverse[内部存储行] = 外部行
//
// 构造时为单位置换，之后只能通过 Swap 修改，始终保持双射
type Permutation struct {
	forward []int
	inverse []int
}

// NewPermutation 创建长度为 n 的单位置换
func NewPermutation(n int) *Permutation {
	p := &Permutation{
		forward: make([]int, n),
		inverse: make([]int, n),
	}
	p.Reset()
	return p
}

// Len 置换长度
func (p *Permutation) Len() int {
	return len(p.forward)
}

// Reset 恢复为单位置换
func (p *Permutation) Reset() {
	for i := range p.forward {
		p.forward[i] = i
		p.inverse[i] = i
	}
}

// Internal 外部行 → 内部存储行（越界panic）
func (p *Permutation) Internal(row int) int {
	if row < 0 || row >= len(p.forward) {
		panic(outOfRange(opAccess, "row", row, len(p.forward)))
	}
	return p.forward[row]
}

// External 内部存储行 → 外部行（越界panic）
func (p *Permutation) External(row int) int {
	if row < 0 || row >= len(p.inverse) {
		panic(outOfRange(opAccess, "row", row, len(p.inverse)))
	}
	return p.inverse[row]
}

// Swap 交换外部行 a、b 的映射，并同步更新逆映射
func (p *Permutation) Swap(a, b int) {
	p.forward[a], p.forward[b] = p.forward[b], p.forward[a]
	p.inverse[p.forward[a]] = a
	p.inverse[p.forward[b]] = b
}

// IsBijection 检查映射是否为 [0,n) 上的双射且与逆映射一致
func (p *Permutation) IsBijection() bool {
	seen := make([]bool, len(p.forward))
	for ext, in := range p.forward {
		if in < 0 || in >= len(seen) || seen[in] || p.inverse[in] != ext {
			return false
		}
		seen[in] = true
	}
	return true
}

// Slice 返回映射副本（外部行 → 内部行）
func (p *Permutation) Slice() []int {
	return append([]int(nil), p.forward...)
}

// String 以 "0->1  1->0  2->2" 格式输出映射
func (p *Permutation) String() string {
	parts := make([]string, len(p.forward))
	for i, v := range p.forward {
		parts[i] = fmt.Sprintf("%d->%d", i, v)
	}
	return strings.Join(parts, "  ")
}
