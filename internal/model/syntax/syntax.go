package syntax

import "context"

// KindError marks a span the parser could not fit into the grammar
const KindError = "ERROR"

// Node is an immutable syntax tree node
type Node struct {
	Kind     string
	Children []*Node
}

// NewNode builds a node with the given children
func NewNode(kind string, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// IsError reports whether the node is an error-recovery node
func (n *Node) IsError() bool {
	return n != nil && n.Kind == KindError
}

// Parser turns an arbitrary source fragment into a syntax tree.
// Implementations parse permissively and only fail when no tree can be produced.
type Parser interface {
	Parse(ctx context.Context, source string) (*Node, error)
}
