package hld

import (
	"github.com/wyfcoding/treequery/segtree"
	"github.com/wyfcoding/treequery/xerrors"
)

// Engine 是树上路径查询引擎的门面，组合剖分元数据与懒惰线段树，
// 对外提供 LCA、路径聚合/更新与子树聚合/更新。
// T 为聚合值类型，U 为更新标记类型，操作策略由调用方通过 segtree.Ops 注入。
//
// Engine 不做内部加锁：所有操作都是确定性的纯 CPU 计算，
// 并发调用方需要自行串行化（查询会触发标记下推，同样属于写操作），
// 或使用 SyncEngine 包装。
type Engine[T, U any] struct {
	tree *Tree
	lift *AncestorTable
	seg  *segtree.LazyTree[T, U]
	ops  segtree.Ops[T, U]
}

// New 构建引擎：校验并剖分输入树，再把初始值按线性位置重排后建线段树。
// adj 为邻接表（无向边或父子有向边均可），values 与节点一一对应。
// 构建失败不返回部分可用的引擎。
func New[T, U any](adj [][]int, root int, values []T, ops segtree.Ops[T, U]) (*Engine[T, U], error) {
	tree, err := NewTree(adj, root)
	if err != nil {
		return nil, err
	}
	if len(values) != tree.Len() {
		return nil, xerrors.ErrValueCountMismatch.Clone().
			WithContext("values", len(values)).
			WithContext("n", tree.Len())
	}

	// 按线性位置重排初始值，使每条重链、每棵子树都映射为连续区间。
	linear := make([]T, tree.Len())
	for v := range tree.Len() {
		linear[tree.pos[v]] = values[v]
	}

	seg, err := segtree.NewLazyTree(linear, ops)
	if err != nil {
		return nil, err
	}

	return &Engine[T, U]{
		tree: tree,
		seg:  seg,
		ops:  ops,
	}, nil
}

// Len 返回节点数。
func (e *Engine[T, U]) Len() int {
	return e.tree.Len()
}

// Root 返回根节点编号。
func (e *Engine[T, U]) Root() int {
	return e.tree.Root()
}

// Tree 返回剖分元数据的只读视图。
func (e *Engine[T, U]) Tree() *Tree {
	return e.tree
}

// checkNode 校验节点编号在 [0, n) 内。
func (e *Engine[T, U]) checkNode(v int) error {
	if v < 0 || v >= e.tree.n {
		return xerrors.ErrNodeOutOfRange.Clone().
			WithContext("node", v).
			WithContext("n", e.tree.n)
	}
	return nil
}

// LCA 返回 u 与 v 的最近公共祖先。
// 每轮把链头更深的一端跳到其链头的父节点，O(log N) 次跳跃。
func (e *Engine[T, U]) LCA(u, v int) (int, error) {
	if err := e.checkNode(u); err != nil {
		return -1, err
	}
	if err := e.checkNode(v); err != nil {
		return -1, err
	}

	t := e.tree
	for t.head[u] != t.head[v] {
		if t.depth[t.head[u]] < t.depth[t.head[v]] {
			u, v = v, u
		}
		u = t.parent[t.head[u]]
	}
	// 同链后深度小的一端即为 LCA。
	if t.depth[u] < t.depth[v] {
		return u, nil
	}
	return v, nil
}

// PathQuery 返回 u 到 v 路径（含两端）上全部值按路径方向的合并结果。
//
// 聚合不要求交换律，因此走链时维护两个累加器：
// accU 收集 u 侧（方向 u → LCA），每段链区间用逆序查询得到自底向上的顺序；
// accV 收集 v 侧（方向 LCA → v），每段链区间用正序查询并拼在已收集结果之前。
// 循环结束后再查询同链剩余段，按 accU ⊕ mid ⊕ accV 合并。
func (e *Engine[T, U]) PathQuery(u, v int) (T, error) {
	if err := e.checkNode(u); err != nil {
		return e.ops.Identity, err
	}
	if err := e.checkNode(v); err != nil {
		return e.ops.Identity, err
	}

	t := e.tree
	accU := e.ops.Identity
	accV := e.ops.Identity

	for t.head[u] != t.head[v] {
		if t.depth[t.head[u]] >= t.depth[t.head[v]] {
			h := t.head[u]
			seg, err := e.seg.QueryRev(t.pos[h], t.pos[u]+1)
			if err != nil {
				return e.ops.Identity, err
			}
			accU = e.ops.Combine(accU, seg)
			u = t.parent[h]
		} else {
			h := t.head[v]
			seg, err := e.seg.Query(t.pos[h], t.pos[v]+1)
			if err != nil {
				return e.ops.Identity, err
			}
			accV = e.ops.Combine(seg, accV)
			v = t.parent[h]
		}
	}

	// 同链收尾：深的一端在下方，浅的一端即为 LCA。
	var mid T
	var err error
	if t.depth[u] >= t.depth[v] {
		// LCA == v，剩余段方向为 u 向上到 v，取逆序。
		mid, err = e.seg.QueryRev(t.pos[v], t.pos[u]+1)
	} else {
		// LCA == u，剩余段方向为 u 向下到 v，取正序。
		mid, err = e.seg.Query(t.pos[u], t.pos[v]+1)
	}
	if err != nil {
		return e.ops.Identity, err
	}

	return e.ops.Combine(e.ops.Combine(accU, mid), accV), nil
}

// PathUpdate 将标记作用于 u 到 v 路径（含两端）上的每个节点。
// 标记按位置独立生效，段间顺序无关，只需 Compose 语义一致。
func (e *Engine[T, U]) PathUpdate(u, v int, tag U) error {
	if err := e.checkNode(u); err != nil {
		return err
	}
	if err := e.checkNode(v); err != nil {
		return err
	}

	t := e.tree
	for t.head[u] != t.head[v] {
		if t.depth[t.head[u]] < t.depth[t.head[v]] {
			u, v = v, u
		}
		h := t.head[u]
		if err := e.seg.Update(t.pos[h], t.pos[u]+1, tag); err != nil {
			return err
		}
		u = t.parent[h]
	}

	if t.depth[u] > t.depth[v] {
		u, v = v, u
	}
	return e.seg.Update(t.pos[u], t.pos[v]+1, tag)
}

// SubtreeQuery 返回以 v 为根的子树内全部值的合并结果。
// 子树在线性空间中是单段连续区间，无需走链，O(log N)。
func (e *Engine[T, U]) SubtreeQuery(v int) (T, error) {
	if err := e.checkNode(v); err != nil {
		return e.ops.Identity, err
	}
	l, r := e.tree.SubtreeRange(v)
	return e.seg.Query(l, r)
}

// SubtreeUpdate 将标记作用于以 v 为根的子树内的每个节点。
func (e *Engine[T, U]) SubtreeUpdate(v int, tag U) error {
	if err := e.checkNode(v); err != nil {
		return err
	}
	l, r := e.tree.SubtreeRange(v)
	return e.seg.Update(l, r, tag)
}

// Value 读取单个节点的当前值。
func (e *Engine[T, U]) Value(v int) (T, error) {
	if err := e.checkNode(v); err != nil {
		return e.ops.Identity, err
	}
	return e.seg.Get(e.tree.pos[v])
}

// Ancestor 返回 v 的第 k 级祖先，k 超过深度时返回 ErrLiftOutOfRange。
// 倍增表在首次调用时懒构建。
func (e *Engine[T, U]) Ancestor(v, k int) (int, error) {
	if err := e.checkNode(v); err != nil {
		return -1, err
	}
	if k < 0 || k > e.tree.depth[v] {
		return -1, xerrors.ErrLiftOutOfRange.Clone().
			WithContext("node", v).
			WithContext("k", k).
			WithContext("depth", e.tree.depth[v])
	}
	if e.lift == nil {
		e.lift = newAncestorTable(e.tree)
	}
	return e.lift.KthAncestor(v, k), nil
}

// Distance 返回 u 与 v 之间的路径边数。
func (e *Engine[T, U]) Distance(u, v int) (int, error) {
	w, err := e.LCA(u, v)
	if err != nil {
		return 0, err
	}
	t := e.tree
	return t.depth[u] + t.depth[v] - 2*t.depth[w], nil
}

// IsAncestor 判断 u 是否为 v 的祖先（含 u == v）。
func (e *Engine[T, U]) IsAncestor(u, v int) (bool, error) {
	if err := e.checkNode(u); err != nil {
		return false, err
	}
	if err := e.checkNode(v); err != nil {
		return false, err
	}
	return e.tree.IsAncestor(u, v), nil
}
