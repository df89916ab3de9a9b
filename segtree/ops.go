package segtree

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// 本文件提供若干常用的操作策略。调用方也可以完全自定义 Ops，
// 只要 Combine 满足结合律、Compose 满足"先旧后新"的合成语义即可。

// SumOps 返回区间求和策略：标记为加到每个位置上的增量。
func SumOps() Ops[int64, int64] {
	return Ops[int64, int64]{
		Combine: func(a, b int64) int64 { return a + b },
		Apply: func(tag, val int64, length int) int64 {
			// 区间内每个位置都增加 tag，总和增加 tag * length。
			return val + tag*int64(length)
		},
		Compose:  func(old, next int64) int64 { return old + next },
		Identity: 0,
		Neutral:  0,
	}
}

// MinOps 返回区间最小值策略：标记为加到每个位置上的增量。
// 单位元取 MaxInt64，使空区间不影响合并结果。
func MinOps() Ops[int64, int64] {
	return Ops[int64, int64]{
		Combine: func(a, b int64) int64 { return min(a, b) },
		Apply: func(tag, val int64, _ int) int64 {
			// 整段同加一个增量，最小值同样平移。
			return val + tag
		},
		Compose:  func(old, next int64) int64 { return old + next },
		Identity: math.MaxInt64,
		Neutral:  0,
	}
}

// MaxOps 返回区间最大值策略：标记为加到每个位置上的增量。
func MaxOps() Ops[int64, int64] {
	return Ops[int64, int64]{
		Combine: func(a, b int64) int64 { return max(a, b) },
		Apply: func(tag, val int64, _ int) int64 {
			return val + tag
		},
		Compose:  func(old, next int64) int64 { return old + next },
		Identity: math.MinInt64,
		Neutral:  0,
	}
}

// AssignConcatOps 返回字符串拼接策略：聚合为按顺序拼接，标记为整段赋值。
// 拼接不满足交换律，常用于验证路径方向的正确性。
func AssignConcatOps() Ops[string, string] {
	return Ops[string, string]{
		Combine: func(a, b string) string { return a + b },
		Apply: func(tag, _ string, length int) string {
			// 赋值标记把区间内每个位置都替换为 tag。
			return strings.Repeat(tag, length)
		},
		// 赋值语义下后一个标记覆盖前一个。
		Compose:  func(_, next string) string { return next },
		Identity: "",
		Neutral:  "",
	}
}

// DecimalSumOps 返回高精度小数求和策略，适用于金额类聚合。
// 标记为加到每个位置上的增量。
func DecimalSumOps() Ops[decimal.Decimal, decimal.Decimal] {
	return Ops[decimal.Decimal, decimal.Decimal]{
		Combine: func(a, b decimal.Decimal) decimal.Decimal { return a.Add(b) },
		Apply: func(tag, val decimal.Decimal, length int) decimal.Decimal {
			return val.Add(tag.Mul(decimal.NewFromInt(int64(length))))
		},
		Compose:  func(old, next decimal.Decimal) decimal.Decimal { return old.Add(next) },
		Identity: decimal.Zero,
		Neutral:  decimal.Zero,
	}
}
