// Package segtree 提供了支持懒惰传播（Lazy Propagation）的泛型线段树。
// 它在一段线性空间上维护可结合聚合值，区间更新和区间查询的时间复杂度均为 O(log N)。
// 聚合操作不要求满足交换律：每个节点同时维护正序与逆序两个聚合值，
// 使得调用方（如重链剖分的路径查询）可以按任意方向读取区间。
package segtree

import (
	"github.com/wyfcoding/treequery/xerrors"
)

// Ops 定义线段树的操作策略，由调用方以纯函数的形式提供。
// T 为聚合值类型，U 为懒惰标记（待生效更新）类型。
type Ops[T, U any] struct {
	// Combine 合并相邻两个区间的聚合值，必须满足结合律，不要求交换律。
	Combine func(a, b T) T
	// Apply 将标记作用于一个区间的聚合值，length 为该区间的长度。
	Apply func(tag U, val T, length int) T
	// Compose 合成两个标记，语义为"先 old 后 next"。
	Compose func(old, next U) U
	// Identity 是 Combine 的单位元，空区间查询返回该值。
	Identity T
	// Neutral 表示"无待生效更新"的标记，仅用于填充已清空的懒惰槽位。
	Neutral U
}

// validate 检查策略的三个函数是否齐全。
func (ops Ops[T, U]) validate() error {
	if ops.Combine == nil || ops.Apply == nil || ops.Compose == nil {
		return xerrors.ErrNilOperation
	}
	return nil
}

// LazyTree 是带懒惰传播的线段树。
// 节点采用 1-indexed 堆式编号（根为 1，子节点为 2i 和 2i+1），占用 4N 空间。
// 不变量：任一节点的聚合值已经反映了作用于它或其祖先的全部更新；
// 子节点的待生效标记在下一次访问时才被下推。
//
// LazyTree 本身不做内部加锁，并发调用方需要自行串行化
//（查询也会触发标记下推，属于写操作）。
type LazyTree[T, U any] struct {
	tree  []T  // 正序聚合值（从左到右 Combine）。
	rtree []T  // 逆序聚合值（从右到左 Combine）。
	lazy  []U  // 待下推的懒惰标记。
	has   []bool
	ops   Ops[T, U]
	n     int // 线性空间的大小。
}

// NewLazyTree 基于初始值序列构建线段树，复杂度 O(N)。
// values 不允许为空；策略函数缺失时返回 ErrNilOperation。
func NewLazyTree[T, U any](values []T, ops Ops[T, U]) (*LazyTree[T, U], error) {
	if err := ops.validate(); err != nil {
		return nil, err
	}
	n := len(values)
	if n == 0 {
		return nil, xerrors.ErrEmptyTree
	}

	t := &LazyTree[T, U]{
		tree:  make([]T, 4*n),
		rtree: make([]T, 4*n),
		lazy:  make([]U, 4*n),
		has:   make([]bool, 4*n),
		ops:   ops,
		n:     n,
	}
	t.build(1, 0, n, values)
	return t, nil
}

// Len 返回线性空间的大小。
func (t *LazyTree[T, U]) Len() int {
	return t.n
}

// build 递归构建。区间约定为左闭右开 [start, end)。
func (t *LazyTree[T, U]) build(node, start, end int, values []T) {
	if end-start == 1 {
		t.tree[node] = values[start]
		t.rtree[node] = values[start]
		return
	}
	mid := (start + end) / 2
	t.build(2*node, start, mid, values)
	t.build(2*node+1, mid, end, values)
	t.pull(node)
}

// pull 由子节点的聚合值重建当前节点的聚合值。
// 逆序聚合交换左右操作数，保证 rtree 始终是区间从右到左的合并结果。
func (t *LazyTree[T, U]) pull(node int) {
	t.tree[node] = t.ops.Combine(t.tree[2*node], t.tree[2*node+1])
	t.rtree[node] = t.ops.Combine(t.rtree[2*node+1], t.rtree[2*node])
}

// applyTag 将标记立即作用于节点聚合值，并在非叶子节点上记录待下推标记。
func (t *LazyTree[T, U]) applyTag(node, start, end int, tag U) {
	t.tree[node] = t.ops.Apply(tag, t.tree[node], end-start)
	t.rtree[node] = t.ops.Apply(tag, t.rtree[node], end-start)

	if end-start > 1 {
		if t.has[node] {
			t.lazy[node] = t.ops.Compose(t.lazy[node], tag)
		} else {
			t.lazy[node] = tag
			t.has[node] = true
		}
	}
}

// pushDown 将当前节点的待生效标记下推给两个子节点，然后清空槽位。
func (t *LazyTree[T, U]) pushDown(node, start, end int) {
	if !t.has[node] {
		return
	}
	mid := (start + end) / 2
	t.applyTag(2*node, start, mid, t.lazy[node])
	t.applyTag(2*node+1, mid, end, t.lazy[node])
	t.lazy[node] = t.ops.Neutral
	t.has[node] = false
}

// Update 将标记作用于区间 [left, right) 内的每一个位置，复杂度 O(log N)。
// left == right 为合法的空操作。
func (t *LazyTree[T, U]) Update(left, right int, tag U) error {
	if left < 0 || left > right || right > t.n {
		return xerrors.ErrInvalidRange.Clone().
			WithContext("left", left).
			WithContext("right", right).
			WithContext("n", t.n)
	}
	if left == right {
		return nil
	}
	t.update(1, 0, t.n, left, right, tag)
	return nil
}

// update 是 Update 的递归辅助函数。
func (t *LazyTree[T, U]) update(node, start, end, left, right int, tag U) {
	// 情况1: 当前节点区间与目标区间完全不重叠。
	if right <= start || end <= left {
		return
	}

	// 情况2: 当前节点区间被目标区间完全覆盖，打标记后停止下降。
	if left <= start && end <= right {
		t.applyTag(node, start, end, tag)
		return
	}

	// 情况3: 部分重叠，先下推已有标记再递归，最后重建聚合值。
	t.pushDown(node, start, end)
	mid := (start + end) / 2
	t.update(2*node, start, mid, left, right, tag)
	t.update(2*node+1, mid, end, left, right, tag)
	t.pull(node)
}

// Query 返回区间 [left, right) 内全部值从左到右的合并结果，复杂度 O(log N)。
// left == right 返回单位元。
func (t *LazyTree[T, U]) Query(left, right int) (T, error) {
	fwd, _, err := t.queryBoth(left, right)
	return fwd, err
}

// QueryRev 返回区间 [left, right) 内全部值从右到左的合并结果。
// 重链剖分在沿路径向上行走时依赖该方向。
func (t *LazyTree[T, U]) QueryRev(left, right int) (T, error) {
	_, rev, err := t.queryBoth(left, right)
	return rev, err
}

// queryBoth 同时返回正序与逆序合并结果，单次遍历完成。
func (t *LazyTree[T, U]) queryBoth(left, right int) (T, T, error) {
	if left < 0 || left > right || right > t.n {
		return t.ops.Identity, t.ops.Identity, xerrors.ErrInvalidRange.Clone().
			WithContext("left", left).
			WithContext("right", right).
			WithContext("n", t.n)
	}
	if left == right {
		return t.ops.Identity, t.ops.Identity, nil
	}
	fwd, rev := t.query(1, 0, t.n, left, right)
	return fwd, rev, nil
}

// query 是查询的递归辅助函数，返回交集部分的 (正序, 逆序) 聚合值。
func (t *LazyTree[T, U]) query(node, start, end, left, right int) (T, T) {
	// 情况1: 完全不重叠。
	if right <= start || end <= left {
		return t.ops.Identity, t.ops.Identity
	}

	// 情况2: 完全覆盖，直接读取节点聚合值。
	if left <= start && end <= right {
		return t.tree[node], t.rtree[node]
	}

	// 情况3: 部分重叠，下推标记后递归合并。
	t.pushDown(node, start, end)
	mid := (start + end) / 2
	lf, lr := t.query(2*node, start, mid, left, right)
	rf, rr := t.query(2*node+1, mid, end, left, right)

	return t.ops.Combine(lf, rf), t.ops.Combine(rr, lr)
}

// Get 读取单个位置的当前值。
func (t *LazyTree[T, U]) Get(idx int) (T, error) {
	return t.Query(idx, idx+1)
}
