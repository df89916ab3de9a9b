package hld

import (
	"sync"

	"github.com/wyfcoding/treequery/segtree"
)

// SyncEngine 是 Engine 的互斥包装，把全部操作串行化，
// 适用于多 goroutine 共享同一引擎实例的场景。
// 查询也会触发线段树的标记下推（以及倍增表的懒构建），属于写操作，
// 因此这里统一使用排它锁而不是读写锁。
type SyncEngine[T, U any] struct {
	mu  sync.Mutex
	eng *Engine[T, U]
}

// NewSync 构建一个互斥包装的引擎。
func NewSync[T, U any](adj [][]int, root int, values []T, ops segtree.Ops[T, U]) (*SyncEngine[T, U], error) {
	eng, err := New(adj, root, values, ops)
	if err != nil {
		return nil, err
	}
	return &SyncEngine[T, U]{eng: eng}, nil
}

// WrapSync 包装一个已构建的引擎。包装后不应再直接使用原引擎。
func WrapSync[T, U any](eng *Engine[T, U]) *SyncEngine[T, U] {
	return &SyncEngine[T, U]{eng: eng}
}

// Len 返回节点数。
func (s *SyncEngine[T, U]) Len() int {
	return s.eng.Len()
}

// Root 返回根节点编号。
func (s *SyncEngine[T, U]) Root() int {
	return s.eng.Root()
}

// LCA 返回 u 与 v 的最近公共祖先。
func (s *SyncEngine[T, U]) LCA(u, v int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.LCA(u, v)
}

// PathQuery 返回 u 到 v 路径上全部值按路径方向的合并结果。
func (s *SyncEngine[T, U]) PathQuery(u, v int) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.PathQuery(u, v)
}

// PathUpdate 将标记作用于 u 到 v 路径上的每个节点。
func (s *SyncEngine[T, U]) PathUpdate(u, v int, tag U) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.PathUpdate(u, v, tag)
}

// SubtreeQuery 返回以 v 为根的子树内全部值的合并结果。
func (s *SyncEngine[T, U]) SubtreeQuery(v int) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.SubtreeQuery(v)
}

// SubtreeUpdate 将标记作用于以 v 为根的子树内的每个节点。
func (s *SyncEngine[T, U]) SubtreeUpdate(v int, tag U) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.SubtreeUpdate(v, tag)
}

// Value 读取单个节点的当前值。
func (s *SyncEngine[T, U]) Value(v int) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Value(v)
}

// Ancestor 返回 v 的第 k 级祖先。
func (s *SyncEngine[T, U]) Ancestor(v, k int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Ancestor(v, k)
}

// Distance 返回 u 与 v 之间的路径边数。
func (s *SyncEngine[T, U]) Distance(u, v int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Distance(u, v)
}

// IsAncestor 判断 u 是否为 v 的祖先（含 u == v）。
func (s *SyncEngine[T, U]) IsAncestor(u, v int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.IsAncestor(u, v)
}
