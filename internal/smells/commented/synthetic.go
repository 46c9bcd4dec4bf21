package commented

import (
	"context"

	"cppsniff/internal/model/syntax"
)

const (
	syntheticPrefix = "void f() { "
	syntheticSuffix = " ; }"
)

// SyntheticParseClassifier wraps the text in a function body, parses it and
// measures the resulting tree. Prose forced through a permissive parser
// collapses into a small, shallow tree; code nests.
type SyntheticParseClassifier struct {
	parser       syntax.Parser
	minCodeDepth int
	minCodeSize  int
}

// NewSyntheticParseClassifier creates a synthetic parse classifier
func NewSyntheticParseClassifier(opts Options, parser syntax.Parser) *SyntheticParseClassifier {
	return &SyntheticParseClassifier{
		parser:       parser,
		minCodeDepth: opts.MinCodeDepth,
		minCodeSize:  opts.MinCodeSize,
	}
}

func (c *SyntheticParseClassifier) Name() string {
	return string(StrategySyntheticParse)
}

func (c *SyntheticParseClassifier) Classify(ctx context.Context, text string) Verdict {
	normalized := Normalize(text)
	if normalized == "" {
		return Verdict{}
	}

	tree, err := c.parser.Parse(ctx, SyntheticSource(normalized))
	if err != nil || tree == nil {
		// A comment that cannot be parsed at all is not code
		return Verdict{}
	}

	shape := MeasureTree(tree)
	return Verdict{
		IsCode:    shape.Depth >= c.minCodeDepth && shape.Size >= c.minCodeSize,
		TreeSize:  shape.Size,
		TreeDepth: shape.Depth,
	}
}

// SyntheticSource wraps text as the body of a function declaration
func SyntheticSource(text string) string {
	return syntheticPrefix + text + syntheticSuffix
}

// TreeShape is the size and depth of a syntax tree
type TreeShape struct {
	Size  int
	Depth int
}

// MeasureTree counts nodes and the deepest level below root (root is depth 0).
// Error-recovery subtrees are not structure and are skipped.
func MeasureTree(root *syntax.Node) TreeShape {
	type frame struct {
		node  *syntax.Node
		depth int
	}

	var shape TreeShape
	if root == nil || root.IsError() {
		return shape
	}

	stack := []frame{{node: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		shape.Size++
		if top.depth > shape.Depth {
			shape.Depth = top.depth
		}

		for _, child := range top.node.Children {
			if child == nil || child.IsError() {
				continue
			}
			stack = append(stack, frame{node: child, depth: top.depth + 1})
		}
	}
	return shape
}
