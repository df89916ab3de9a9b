package segtree

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/treequery/xerrors"
)

func TestLazyTreeSumQuery(t *testing.T) {
	values := []int64{5, 2, 7, 1, 9, 3}
	tree, err := NewLazyTree(values, SumOps())
	if err != nil {
		t.Fatalf("NewLazyTree failed: %v", err)
	}

	cases := []struct {
		l, r int
		want int64
	}{
		{0, 6, 27},
		{0, 1, 5},
		{2, 5, 17},
		{3, 3, 0}, // 空区间返回单位元
		{5, 6, 3},
	}
	for _, c := range cases {
		got, err := tree.Query(c.l, c.r)
		if err != nil {
			t.Fatalf("Query(%d, %d) failed: %v", c.l, c.r, err)
		}
		if got != c.want {
			t.Errorf("Query(%d, %d) = %d, want %d", c.l, c.r, got, c.want)
		}
	}
}

func TestLazyTreeRangeUpdate(t *testing.T) {
	values := []int64{1, 1, 1, 1, 1, 1, 1}
	tree, err := NewLazyTree(values, SumOps())
	if err != nil {
		t.Fatalf("NewLazyTree failed: %v", err)
	}

	if err := tree.Update(1, 5, 10); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, _ := tree.Query(0, 7)
	if got != 47 {
		t.Errorf("total after update = %d, want 47", got)
	}
	got, _ = tree.Query(1, 5)
	if got != 44 {
		t.Errorf("updated range sum = %d, want 44", got)
	}
	got, _ = tree.Get(0)
	if got != 1 {
		t.Errorf("position 0 should be untouched, got %d", got)
	}
	got, _ = tree.Get(3)
	if got != 11 {
		t.Errorf("position 3 = %d, want 11", got)
	}

	// 空区间更新是合法的空操作。
	if err := tree.Update(4, 4, 100); err != nil {
		t.Fatalf("empty update failed: %v", err)
	}
	got, _ = tree.Query(0, 7)
	if got != 47 {
		t.Errorf("total after empty update = %d, want 47", got)
	}
}

func TestLazyTreeTagComposition(t *testing.T) {
	values := []int64{0, 0, 0, 0}
	tree, _ := NewLazyTree(values, SumOps())

	// 同一覆盖区间连续打两次标记，验证 Compose 的合成语义。
	if err := tree.Update(0, 4, 3); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := tree.Update(0, 4, 4); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ := tree.Get(2)
	if got != 7 {
		t.Errorf("Get(2) = %d, want 7", got)
	}
}

func TestLazyTreeNonCommutativeOrder(t *testing.T) {
	values := []string{"a", "b", "c", "d", "e"}
	tree, err := NewLazyTree(values, AssignConcatOps())
	if err != nil {
		t.Fatalf("NewLazyTree failed: %v", err)
	}

	got, _ := tree.Query(0, 5)
	if got != "abcde" {
		t.Errorf("forward query = %q, want %q", got, "abcde")
	}
	got, _ = tree.QueryRev(0, 5)
	if got != "edcba" {
		t.Errorf("reverse query = %q, want %q", got, "edcba")
	}
	got, _ = tree.Query(1, 4)
	if got != "bcd" {
		t.Errorf("forward sub query = %q, want %q", got, "bcd")
	}

	// 赋值标记覆盖区间后两个方向都应反映新值。
	if err := tree.Update(1, 3, "x"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ = tree.Query(0, 5)
	if got != "axxde" {
		t.Errorf("forward query after assign = %q, want %q", got, "axxde")
	}
	got, _ = tree.QueryRev(0, 5)
	if got != "edxxa" {
		t.Errorf("reverse query after assign = %q, want %q", got, "edxxa")
	}
}

func TestLazyTreeDecimalSum(t *testing.T) {
	values := []decimal.Decimal{
		decimal.NewFromFloat(1.5),
		decimal.NewFromFloat(2.25),
		decimal.NewFromFloat(3.75),
	}
	tree, err := NewLazyTree(values, DecimalSumOps())
	if err != nil {
		t.Fatalf("NewLazyTree failed: %v", err)
	}

	got, _ := tree.Query(0, 3)
	if !got.Equal(decimal.NewFromFloat(7.5)) {
		t.Errorf("decimal sum = %s, want 7.5", got)
	}

	if err := tree.Update(0, 2, decimal.NewFromFloat(0.5)); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ = tree.Query(0, 3)
	if !got.Equal(decimal.NewFromFloat(8.5)) {
		t.Errorf("decimal sum after update = %s, want 8.5", got)
	}
}

func TestLazyTreeMinMax(t *testing.T) {
	values := []int64{4, 8, 2, 6}

	minTree, _ := NewLazyTree(values, MinOps())
	got, _ := minTree.Query(0, 4)
	if got != 2 {
		t.Errorf("min = %d, want 2", got)
	}
	if err := minTree.Update(2, 3, 100); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ = minTree.Query(0, 4)
	if got != 4 {
		t.Errorf("min after update = %d, want 4", got)
	}

	maxTree, _ := NewLazyTree(values, MaxOps())
	got, _ = maxTree.Query(1, 3)
	if got != 8 {
		t.Errorf("max = %d, want 8", got)
	}
}

func TestLazyTreeRangeValidation(t *testing.T) {
	tree, _ := NewLazyTree([]int64{1, 2, 3}, SumOps())

	cases := [][2]int{{-1, 2}, {0, 4}, {2, 1}}
	for _, c := range cases {
		if _, err := tree.Query(c[0], c[1]); !errors.Is(err, xerrors.ErrInvalidRange) {
			t.Errorf("Query(%d, %d) error = %v, want ErrInvalidRange", c[0], c[1], err)
		}
		if err := tree.Update(c[0], c[1], 1); !errors.Is(err, xerrors.ErrInvalidRange) {
			t.Errorf("Update(%d, %d) error = %v, want ErrInvalidRange", c[0], c[1], err)
		}
	}
}

func TestLazyTreeConstructionErrors(t *testing.T) {
	if _, err := NewLazyTree([]int64{}, SumOps()); !errors.Is(err, xerrors.ErrEmptyTree) {
		t.Errorf("empty values error = %v, want ErrEmptyTree", err)
	}

	ops := SumOps()
	ops.Combine = nil
	if _, err := NewLazyTree([]int64{1}, ops); !errors.Is(err, xerrors.ErrNilOperation) {
		t.Errorf("nil combine error = %v, want ErrNilOperation", err)
	}
}

// TestLazyTreeRandomAgainstBruteForce 用朴素切片作为参照做随机交叉验证。
func TestLazyTreeRandomAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const n = 64

	values := make([]int64, n)
	ref := make([]int64, n)
	for i := range values {
		values[i] = int64(rng.Intn(100))
		ref[i] = values[i]
	}

	tree, err := NewLazyTree(values, SumOps())
	if err != nil {
		t.Fatalf("NewLazyTree failed: %v", err)
	}

	for op := range 1000 {
		l := rng.Intn(n + 1)
		r := l + rng.Intn(n+1-l)

		if rng.Intn(2) == 0 {
			tag := int64(rng.Intn(21) - 10)
			if err := tree.Update(l, r, tag); err != nil {
				t.Fatalf("op %d: Update(%d, %d, %d) failed: %v", op, l, r, tag, err)
			}
			for i := l; i < r; i++ {
				ref[i] += tag
			}
		} else {
			got, err := tree.Query(l, r)
			if err != nil {
				t.Fatalf("op %d: Query(%d, %d) failed: %v", op, l, r, err)
			}
			var want int64
			for i := l; i < r; i++ {
				want += ref[i]
			}
			if got != want {
				t.Fatalf("op %d: Query(%d, %d) = %d, want %d", op, l, r, got, want)
			}
		}
	}
}
