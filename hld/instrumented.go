package hld

import (
	"context"
	"time"

	"github.com/wyfcoding/treequery/logging"
	"github.com/wyfcoding/treequery/metrics"
)

// queryEngine 抽象 Engine 与 SyncEngine 共同的操作面，供装饰器包装。
type queryEngine[T, U any] interface {
	Len() int
	Root() int
	LCA(u, v int) (int, error)
	PathQuery(u, v int) (T, error)
	PathUpdate(u, v int, tag U) error
	SubtreeQuery(v int) (T, error)
	SubtreeUpdate(v int, tag U) error
	Value(v int) (T, error)
	Ancestor(v, k int) (int, error)
	Distance(u, v int) (int, error)
	IsAncestor(u, v int) (bool, error)
}

var (
	_ queryEngine[int64, int64] = (*Engine[int64, int64])(nil)
	_ queryEngine[int64, int64] = (*SyncEngine[int64, int64])(nil)
)

// InstrumentedEngine 为引擎操作附加 Prometheus 指标采集与慢操作日志。
// 指标维度为操作名与结果状态，耗时进入直方图；
// 超过 slowThreshold 的操作记一条 Warn 日志。
type InstrumentedEngine[T, U any] struct {
	eng    queryEngine[T, U]
	m      *metrics.Metrics
	logger *logging.Logger
	slow   time.Duration
}

// NewInstrumented 包装一个引擎。slowThreshold 为 0 时关闭慢操作日志。
func NewInstrumented[T, U any](eng queryEngine[T, U], m *metrics.Metrics, logger *logging.Logger, slowThreshold time.Duration) *InstrumentedEngine[T, U] {
	m.TreeSize.Set(float64(eng.Len()))
	return &InstrumentedEngine[T, U]{
		eng:    eng,
		m:      m,
		logger: logger,
		slow:   slowThreshold,
	}
}

// observe 统一上报一次操作的计数、耗时与慢操作日志。
func (ie *InstrumentedEngine[T, U]) observe(ctx context.Context, op string, start time.Time, err error) {
	elapsed := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
	}
	ie.m.OperationsTotal.WithLabelValues(op, status).Inc()
	ie.m.OperationDuration.WithLabelValues(op).Observe(elapsed.Seconds())

	if ie.slow > 0 && elapsed >= ie.slow {
		ie.logger.WarnContext(ctx, "slow treequery operation",
			"op", op,
			"duration", elapsed,
			"status", status,
		)
	}
}

// Len 返回节点数。
func (ie *InstrumentedEngine[T, U]) Len() int {
	return ie.eng.Len()
}

// Root 返回根节点编号。
func (ie *InstrumentedEngine[T, U]) Root() int {
	return ie.eng.Root()
}

// LCA 返回 u 与 v 的最近公共祖先。
func (ie *InstrumentedEngine[T, U]) LCA(ctx context.Context, u, v int) (int, error) {
	start := time.Now()
	w, err := ie.eng.LCA(u, v)
	ie.observe(ctx, "lca", start, err)
	return w, err
}

// PathQuery 返回 u 到 v 路径上全部值按路径方向的合并结果。
func (ie *InstrumentedEngine[T, U]) PathQuery(ctx context.Context, u, v int) (T, error) {
	start := time.Now()
	res, err := ie.eng.PathQuery(u, v)
	ie.observe(ctx, "path_query", start, err)
	return res, err
}

// PathUpdate 将标记作用于 u 到 v 路径上的每个节点。
func (ie *InstrumentedEngine[T, U]) PathUpdate(ctx context.Context, u, v int, tag U) error {
	start := time.Now()
	err := ie.eng.PathUpdate(u, v, tag)
	ie.observe(ctx, "path_update", start, err)
	return err
}

// SubtreeQuery 返回以 v 为根的子树内全部值的合并结果。
func (ie *InstrumentedEngine[T, U]) SubtreeQuery(ctx context.Context, v int) (T, error) {
	start := time.Now()
	res, err := ie.eng.SubtreeQuery(v)
	ie.observe(ctx, "subtree_query", start, err)
	return res, err
}

// SubtreeUpdate 将标记作用于以 v 为根的子树内的每个节点。
func (ie *InstrumentedEngine[T, U]) SubtreeUpdate(ctx context.Context, v int, tag U) error {
	start := time.Now()
	err := ie.eng.SubtreeUpdate(v, tag)
	ie.observe(ctx, "subtree_update", start, err)
	return err
}

// Value 读取单个节点的当前值。
func (ie *InstrumentedEngine[T, U]) Value(ctx context.Context, v int) (T, error) {
	start := time.Now()
	res, err := ie.eng.Value(v)
	ie.observe(ctx, "value", start, err)
	return res, err
}

// Ancestor 返回 v 的第 k 级祖先。
func (ie *InstrumentedEngine[T, U]) Ancestor(ctx context.Context, v, k int) (int, error) {
	start := time.Now()
	w, err := ie.eng.Ancestor(v, k)
	ie.observe(ctx, "ancestor", start, err)
	return w, err
}

// Distance 返回 u 与 v 之间的路径边数。
func (ie *InstrumentedEngine[T, U]) Distance(ctx context.Context, u, v int) (int, error) {
	start := time.Now()
	d, err := ie.eng.Distance(u, v)
	ie.observe(ctx, "distance", start, err)
	return d, err
}
