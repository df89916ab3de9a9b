package hld

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wyfcoding/treequery/logging"
	"github.com/wyfcoding/treequery/metrics"
	"github.com/wyfcoding/treequery/segtree"
)

func TestInstrumentedEngine(t *testing.T) {
	eng, err := New(sampleAdjacency(), 0, []int64{1, 1, 1, 1, 1, 1, 1}, segtree.SumOps())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	m := metrics.NewMetrics("treequery-test")
	logger := logging.NewLogger("treequery-test", "hld", "error")
	ie := NewInstrumented(eng, m, logger, time.Second)
	ctx := context.Background()

	if got := testutil.ToFloat64(m.TreeSize); got != 7 {
		t.Errorf("tree size gauge = %v, want 7", got)
	}

	if w, err := ie.LCA(ctx, 3, 4); err != nil || w != 1 {
		t.Errorf("LCA(3, 4) = %d, %v, want 1, nil", w, err)
	}
	if got, err := ie.PathQuery(ctx, 3, 4); err != nil || got != 3 {
		t.Errorf("PathQuery(3, 4) = %d, %v, want 3, nil", got, err)
	}
	if err := ie.PathUpdate(ctx, 3, 6, 5); err != nil {
		t.Fatalf("PathUpdate failed: %v", err)
	}
	if got, err := ie.SubtreeQuery(ctx, 0); err != nil || got != 32 {
		t.Errorf("SubtreeQuery(0) = %d, %v, want 32, nil", got, err)
	}

	// 非法节点：错误照常返回，同时计入 error 状态。
	if _, err := ie.PathQuery(ctx, 0, 99); err == nil {
		t.Errorf("PathQuery(0, 99) should fail")
	}

	if got := testutil.ToFloat64(m.OperationsTotal.WithLabelValues("lca", "ok")); got != 1 {
		t.Errorf("lca ok counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.OperationsTotal.WithLabelValues("path_query", "ok")); got != 1 {
		t.Errorf("path_query ok counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.OperationsTotal.WithLabelValues("path_query", "error")); got != 1 {
		t.Errorf("path_query error counter = %v, want 1", got)
	}
}

func TestInstrumentedWrapsSyncEngine(t *testing.T) {
	eng, err := NewSync(sampleAdjacency(), 0, make([]int64, 7), segtree.SumOps())
	if err != nil {
		t.Fatalf("NewSync failed: %v", err)
	}

	m := metrics.NewMetrics("treequery-test")
	ie := NewInstrumented[int64, int64](eng, m, logging.NewLogger("treequery-test", "hld", "error"), 0)

	if w, err := ie.LCA(context.Background(), 5, 6); err != nil || w != 2 {
		t.Errorf("LCA(5, 6) = %d, %v, want 2, nil", w, err)
	}
}
