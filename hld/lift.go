package hld

import (
	"github.com/wyfcoding/treequery/cast"
)

// AncestorTable 实现了基于倍增（Binary Lifting）的第 k 级祖先查询。
// 预处理复杂度 O(N log N)，单次查询复杂度 O(log N)。
// 表按需构建：Engine 首次调用 Ancestor 时才会生成。
type AncestorTable struct {
	up   []int // 展平的倍增表，up[v*logN+i] 为 v 的第 2^i 级祖先，无则为 -1。
	logN int
}

// newAncestorTable 由已建好的树元数据构造倍增表。
// 第 0 层直接取父节点数组，高层由低层递推。
func newAncestorTable(t *Tree) *AncestorTable {
	n := t.n

	// 计算最大跳数的对数.
	logN := 1
	for (1 << cast.IntToUint32(logN)) < n {
		logN++
	}

	at := &AncestorTable{
		up:   make([]int, n*logN),
		logN: logN,
	}

	for v := range n {
		at.up[v*logN] = t.parent[v]
		for i := 1; i < logN; i++ {
			at.up[v*logN+i] = -1
		}
	}

	// 构建倍增表核心递推：2^i 级祖先是 2^(i-1) 级祖先的 2^(i-1) 级祖先。
	// 先序遍历保证祖先的表项先于后代可用，这里直接按层递推即可。
	for i := 1; i < logN; i++ {
		for v := range n {
			mid := at.up[v*logN+i-1]
			if mid != -1 {
				at.up[v*logN+i] = at.up[mid*logN+i-1]
			}
		}
	}

	return at
}

// KthAncestor 返回 v 的第 k 级祖先，k 超过深度时返回 -1。
// k == 0 返回 v 自身。
func (at *AncestorTable) KthAncestor(v, k int) int {
	for i := 0; i < at.logN && v != -1; i++ {
		shift := cast.IntToUint32(i & 0x1F)
		if (k & (1 << shift)) != 0 {
			v = at.up[v*at.logN+i]
		}
	}
	if k >= (1 << cast.IntToUint32(at.logN)) {
		// k 的高位超出表的覆盖范围，必然越过根。
		return -1
	}
	return v
}
