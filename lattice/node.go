package lattice

// NodeType classifies lattice nodes.
type NodeType int32

const (
	// NormalNode is a regular dictionary or unknown-word node.
	NormalNode NodeType = iota
	// BOSNode marks the beginning of the sentence.
	BOSNode
	// EOSNode marks the end of the sentence.
	EOSNode
	// ConstrainedNode is pinned by a resegmentation constraint and must
	// appear on the best path.
	ConstrainedNode
	// HistoryNode carries committed context preceding the actual input.
	HistoryNode
)

// Node is one lattice entry: a token spanning [BeginPos, EndPos) of the
// input key in bytes, or a BOS/EOS sentinel. Nodes are threaded three ways.
// BNext chains the nodes that begin at the same position and ENext the
// nodes that end at the same position; Prev and Next record the best path
// once the search has run.
//
// The zero value is a cleared normal node.
type Node struct {
	Key   string
	Value string

	// Lid and Rid are the connection ids the node exposes to its left and
	// right neighbors; WCost is the node's own cost and Cost the
	// accumulated best-path cost, both owned by the search.
	Lid   uint16
	Rid   uint16
	WCost int32
	Cost  int32

	Type     NodeType
	BeginPos int
	EndPos   int

	Prev  *Node
	Next  *Node
	BNext *Node
	ENext *Node
}

// Clear resets the node for reuse.
func (n *Node) Clear() {
	*n = Node{}
}
