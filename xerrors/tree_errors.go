package xerrors

var (
	// ErrEmptyTree 输入树为空。
	ErrEmptyTree = New(ErrInvalidArg, 400101, "empty tree", "adjacency list must contain at least one node", nil)
	// ErrRootOutOfRange 根节点编号越界。
	ErrRootOutOfRange = New(ErrInvalidArg, 400102, "root out of range", "root id must be in [0, n)", nil)
	// ErrTreeDisconnected 树不连通，存在根不可达的节点。
	ErrTreeDisconnected = New(ErrInvalidArg, 400103, "tree disconnected", "some nodes are unreachable from the root", nil)
	// ErrTreeCycle 输入图含环，不是一棵树。
	ErrTreeCycle = New(ErrInvalidArg, 400104, "tree contains cycle", "input graph revisits a node during traversal", nil)
	// ErrValueCountMismatch 初始值数量与节点数不一致。
	ErrValueCountMismatch = New(ErrInvalidArg, 400105, "value count mismatch", "initial values must have exactly one entry per node", nil)
	// ErrNilOperation 聚合操作策略缺少必需的函数。
	ErrNilOperation = New(ErrInvalidArg, 400106, "nil operation", "Combine, Apply and Compose must all be non-nil", nil)
	// ErrNodeOutOfRange 节点编号越界，可恢复的调用方错误。
	ErrNodeOutOfRange = New(ErrInvalidArg, 400107, "node out of range", "node id must be in [0, n)", nil)
	// ErrEdgeOutOfRange 邻接表中出现越界的节点编号。
	ErrEdgeOutOfRange = New(ErrInvalidArg, 400108, "edge endpoint out of range", "adjacency entries must reference ids in [0, n)", nil)
	// ErrInvalidRange 区间端点非法。属于内部不变量被破坏的程序性错误，不做吞没。
	ErrInvalidRange = New(ErrInternal, 500101, "invalid range", "range bounds must satisfy 0 <= l <= r <= n", nil)
	// ErrLiftOutOfRange 向上跳跃的步数超过节点深度。
	ErrLiftOutOfRange = New(ErrInvalidArg, 400109, "ancestor hop out of range", "k must be in [0, depth(v)]", nil)
)
