package maths

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDisplayPermutation 交换第0、1行后映射输出为 0->1, 1->0, 2->2
func TestDisplayPermutation(t *testing.T) {
	lu := newLUFromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 10}})
	lu.SwapRows(0, 1)
	assert.Equal(t, "0->1  1->0  2->2", lu.PermutationString())

	lu.Factorize()
	var sb strings.Builder
	require.NoError(t, lu.DisplayLU(&sb))
	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "perm: 0->1  1->0  2->2", lines[3])
}

func TestDisplayMatrix(t *testing.T) {
	lu := newLUFromRows(t, [][]float64{{1, -2}, {3, 4}})
	var sb strings.Builder
	require.NoError(t, lu.DisplayMatrix(&sb))
	assert.Equal(t, "1(0)-2(1)\n3(0)+4(1)\n", sb.String())

	// 交换后仍按外部行输出
	lu.SwapRows(0, 1)
	sb.Reset()
	require.NoError(t, lu.DisplayMatrix(&sb))
	assert.Equal(t, "1(0)-2(1)\n3(0)+4(1)\n", sb.String())
	assert.Equal(t, sb.String(), lu.String())
}

func TestDisplayLUFactors(t *testing.T) {
	lu := newLUFromRows(t, [][]float64{{2, 1}, {4, 5}})
	lu.Factorize()
	var sb strings.Builder
	require.NoError(t, lu.DisplayLU(&sb))
	// L[1][0] = 2, U = [[2,1],[0,3]]
	assert.Equal(t, "2(0)+1(1)\n2(0)+3(1)\nperm: 0->0  1->1\n", sb.String())
}

func TestStats(t *testing.T) {
	lu := newLUFromRows(t, [][]float64{{2, 1}, {4, 5}})
	lu.Factorize()
	lu.Factorize()
	s := lu.Stats()
	assert.Equal(t, Stats{Size: 2, Frontier: 2, Factorizations: 1, Eliminations: 1}, s)
}

func TestCondition(t *testing.T) {
	id := newLUFromRows(t, [][]float64{{1, 0}, {0, 1}})
	assert.InDelta(t, 1.0, id.Condition(), 1e-12)

	diag := newLUFromRows(t, [][]float64{{10, 0}, {0, 1}})
	assert.InDelta(t, 10.0, diag.Condition(), 1e-9)

	singular := newLUFromRows(t, [][]float64{{1, 2}, {2, 4}})
	assert.True(t, singular.Condition() > 1e12 || math.IsInf(singular.Condition(), 1))
}
