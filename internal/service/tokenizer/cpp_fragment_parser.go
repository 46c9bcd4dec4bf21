package tokenizer

import (
	"context"
	"fmt"

	"cppsniff/internal/model/syntax"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
)

// CppFragmentParser parses arbitrary C++ fragments into syntax trees.
// tree-sitter never rejects input: unparseable spans become ERROR nodes.
type CppFragmentParser struct {
	parsers *parserPool
}

// NewCppFragmentParser creates a fragment parser keeping up to poolSize idle parsers
func NewCppFragmentParser(poolSize int) (*CppFragmentParser, error) {
	language := tree_sitter.NewLanguage(tree_sitter_cpp.Language())
	parsers, err := newParserPool(language, poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to set C++ language: %w", err)
	}
	return &CppFragmentParser{parsers: parsers}, nil
}

// Parse returns the named-node structure of source. Missing nodes are
// dropped and a function definition keeps only its body, so a wrapper
// function contributes the same three levels whatever its signature.
// Statements of a block that contain a syntax error or a missing token
// collapse into a single ERROR node.
func (p *CppFragmentParser) Parse(ctx context.Context, source string) (*syntax.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser, err := p.parsers.get()
	if err != nil {
		return nil, err
	}
	defer p.parsers.put(parser)

	tree := parser.Parse([]byte(source), nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse fragment")
	}
	defer tree.Close()

	return convertNode(tree.RootNode()), nil
}

func convertNode(node *tree_sitter.Node) *syntax.Node {
	out := &syntax.Node{Kind: node.Kind()}
	if node.IsError() {
		out.Kind = syntax.KindError
	}

	if node.Kind() == "function_definition" {
		if body := node.ChildByFieldName("body"); body != nil {
			out.Children = []*syntax.Node{convertNode(body)}
		}
		return out
	}

	isBlock := node.Kind() == "compound_statement"
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || child.IsMissing() {
			continue
		}
		// A statement the parser had to repair contributes no structure
		if isBlock && child.HasError() {
			out.Children = append(out.Children, &syntax.Node{Kind: syntax.KindError})
			continue
		}
		out.Children = append(out.Children, convertNode(child))
	}
	return out
}

// Close releases the pooled parsers
func (p *CppFragmentParser) Close() {
	p.parsers.close()
}
