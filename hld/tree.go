// Package hld 实现了基于重链剖分（Heavy-Light Decomposition）的树上路径查询引擎。
// 它将任意有根树划分为 O(log N) 条重链并映射到一段连续的线性空间，
// 配合 segtree 包的懒惰线段树，路径/子树的聚合查询与更新均为 O(log² N)。
package hld

import (
	"github.com/wyfcoding/treequery/xerrors"
)

// Tree 保存剖分后的树元数据：父节点、深度、子树大小、重儿子、
// 链头以及线性位置。构建完成后全部数组只读。
type Tree struct {
	adj    [][]int
	parent []int // parent[v] 为父节点，根为 -1。
	depth  []int
	size   []int // size[v] 为以 v 为根的子树大小。
	heavy  []int // heavy[v] 为重儿子（子树最大的孩子），叶子为 -1。
	pos    []int // pos[v] 为 v 在线性空间中的位置。
	head   []int // head[v] 为 v 所在重链的链头。
	invpos []int // invpos[p] 为位置 p 上的节点，pos 的逆映射。
	root   int
	n      int
}

// NewTree 校验输入并完成剖分的全部三次遍历：
// 第一次迭代 DFS 计算父节点与深度，自底向上累加子树大小；
// 第二次扫描选出每个节点的重儿子；第三次遍历完成线性化。
// 输入图不连通、含环或根编号越界时返回 InvalidTree 类错误。
func NewTree(adj [][]int, root int) (*Tree, error) {
	n := len(adj)
	if n == 0 {
		return nil, xerrors.ErrEmptyTree
	}
	if root < 0 || root >= n {
		return nil, xerrors.ErrRootOutOfRange.Clone().
			WithContext("root", root).
			WithContext("n", n)
	}

	t := &Tree{
		adj:    adj,
		parent: make([]int, n),
		depth:  make([]int, n),
		size:   make([]int, n),
		heavy:  make([]int, n),
		pos:    make([]int, n),
		head:   make([]int, n),
		invpos: make([]int, n),
		root:   root,
		n:      n,
	}

	order, err := t.traverse()
	if err != nil {
		return nil, err
	}
	t.computeSizes(order)
	t.pickHeavyChildren(order)
	t.linearize()

	return t, nil
}

// traverse 用显式栈做迭代 DFS，避免退化树（近似链状）打爆调用栈。
// 返回先序遍历序，供后续自底向上的遍历复用。
func (t *Tree) traverse() ([]int, error) {
	visited := make([]bool, t.n)
	order := make([]int, 0, t.n)

	stack := make([]int, 0, t.n)
	stack = append(stack, t.root)
	visited[t.root] = true
	t.parent[t.root] = -1
	t.depth[t.root] = 0

	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, v)

		for _, u := range t.adj[v] {
			if u < 0 || u >= t.n {
				return nil, xerrors.ErrEdgeOutOfRange.Clone().
					WithContext("node", v).
					WithContext("neighbor", u)
			}
			if u == t.parent[v] {
				continue
			}
			// 非父节点的邻居已被访问过，说明存在环（含自环与重边）。
			if visited[u] {
				return nil, xerrors.ErrTreeCycle.Clone().
					WithContext("node", v).
					WithContext("neighbor", u)
			}
			visited[u] = true
			t.parent[u] = v
			t.depth[u] = t.depth[v] + 1
			stack = append(stack, u)
		}
	}

	if len(order) != t.n {
		return nil, xerrors.ErrTreeDisconnected.Clone().
			WithContext("reached", len(order)).
			WithContext("n", t.n)
	}
	return order, nil
}

// computeSizes 按先序遍历序的逆序累加子树大小。
// 逆序保证处理到 v 时其全部孩子已经累加完毕。
func (t *Tree) computeSizes(order []int) {
	for v := range t.n {
		t.size[v] = 1
	}
	for i := t.n - 1; i >= 1; i-- {
		v := order[i]
		t.size[t.parent[v]] += t.size[v]
	}
}

// pickHeavyChildren 为每个节点选出子树最大的孩子作为重儿子。
// 并列时取邻接表中先出现的孩子（严格大于才替换），保证确定性。
func (t *Tree) pickHeavyChildren(order []int) {
	for _, v := range order {
		t.heavy[v] = -1
		best := 0
		for _, u := range t.adj[v] {
			if u == t.parent[v] {
				continue
			}
			if t.size[u] > best {
				best = t.size[u]
				t.heavy[v] = u
			}
		}
	}
}

// Len 返回节点数。
func (t *Tree) Len() int {
	return t.n
}

// Root 返回根节点编号。
func (t *Tree) Root() int {
	return t.root
}

// Parent 返回父节点编号，根返回 -1。
func (t *Tree) Parent(v int) int {
	return t.parent[v]
}

// Depth 返回节点深度，根为 0。
func (t *Tree) Depth(v int) int {
	return t.depth[v]
}

// SubtreeSize 返回以 v 为根的子树大小。
func (t *Tree) SubtreeSize(v int) int {
	return t.size[v]
}

// Position 返回节点在线性空间中的位置。
func (t *Tree) Position(v int) int {
	return t.pos[v]
}

// ChainHead 返回节点所在重链的链头。
func (t *Tree) ChainHead(v int) int {
	return t.head[v]
}

// NodeAt 返回线性位置 p 上的节点。
func (t *Tree) NodeAt(p int) int {
	return t.invpos[p]
}

// SubtreeRange 返回 v 的子树在线性空间中占据的左闭右开区间。
// 线性化保证任意子树都是一段连续区间。
func (t *Tree) SubtreeRange(v int) (int, int) {
	return t.pos[v], t.pos[v] + t.size[v]
}

// IsAncestor 判断 u 是否为 v 的祖先（含 u == v），
// 等价于 v 的线性位置落在 u 的子树区间内，O(1)。
func (t *Tree) IsAncestor(u, v int) bool {
	return t.pos[u] <= t.pos[v] && t.pos[v] < t.pos[u]+t.size[u]
}
