package hld

// linearize 完成剖分的第三次遍历：为每个节点分配线性位置并记录链头。
// 访问每个节点时先沿重儿子一路编号到链尾，使整条重链占据连续区间且
// 链头位于区间最小位置；轻孩子各自作为新链头压栈，留待后续处理。
//
// 由于栈是后进先出，处理某个节点时，它的整棵子树一定在任何更早压栈的
// 子树之前编号完毕，因此每棵子树都占据一段连续区间 [pos(v), pos(v)+size(v))。
func (t *Tree) linearize() {
	type chainStart struct {
		node int
		head int
	}

	stack := make([]chainStart, 0, t.n)
	stack = append(stack, chainStart{node: t.root, head: t.root})
	next := 0

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// 沿重链向下，链上节点获得连续位置并共享链头。
		for v := top.node; v != -1; v = t.heavy[v] {
			t.pos[v] = next
			t.invpos[next] = v
			t.head[v] = top.head
			next++

			for _, u := range t.adj[v] {
				if u == t.parent[v] || u == t.heavy[v] {
					continue
				}
				stack = append(stack, chainStart{node: u, head: u})
			}
		}
	}
}
