package tokenizer

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// parserPool hands out tree-sitter parsers for one language.
// A tree_sitter.Parser is not safe for concurrent use, so every scan
// borrows its own and returns it when done.
type parserPool struct {
	language *tree_sitter.Language
	idle     chan *tree_sitter.Parser
}

func newParserPool(language *tree_sitter.Language, size int) (*parserPool, error) {
	if size < 1 {
		size = 1
	}
	p := &parserPool{
		language: language,
		idle:     make(chan *tree_sitter.Parser, size),
	}

	// Fail early on an ABI mismatch between the grammar and the runtime
	parser, err := p.newParser()
	if err != nil {
		return nil, err
	}
	p.idle <- parser
	return p, nil
}

func (p *parserPool) newParser() (*tree_sitter.Parser, error) {
	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(p.language); err != nil {
		parser.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	return parser, nil
}

func (p *parserPool) get() (*tree_sitter.Parser, error) {
	select {
	case parser := <-p.idle:
		return parser, nil
	default:
		return p.newParser()
	}
}

func (p *parserPool) put(parser *tree_sitter.Parser) {
	parser.Reset()
	select {
	case p.idle <- parser:
	default:
		parser.Close()
	}
}

func (p *parserPool) close() {
	for {
		select {
		case parser := <-p.idle:
			parser.Close()
		default:
			return
		}
	}
}
