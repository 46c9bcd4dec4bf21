package tokenizer

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"cppsniff/internal/model/token"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
)

// CppExtensions are the file extensions scanned as C/C++ by default
var CppExtensions = []string{".c", ".cpp", ".cxx", ".cc", ".c++"}

// CppTokenizer implements tokenization for C and C++ source code
type CppTokenizer struct {
	parsers *parserPool
}

// NewCppTokenizer creates a new C/C++ tokenizer. poolSize bounds the
// number of idle parsers kept for reuse.
func NewCppTokenizer(poolSize int) (*CppTokenizer, error) {
	language := tree_sitter.NewLanguage(tree_sitter_cpp.Language())
	parsers, err := newParserPool(language, poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to set C++ language: %w", err)
	}

	return &CppTokenizer{parsers: parsers}, nil
}

func (t *CppTokenizer) Tokenize(ctx context.Context, path string, source []byte) (token.TokenSequence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser, err := t.parsers.get()
	if err != nil {
		return nil, err
	}
	defer t.parsers.put(parser)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse C/C++ source %s", path)
	}
	defer tree.Close()

	var tokens token.TokenSequence
	t.traverseNode(tree.RootNode(), source, path, &tokens)

	return tokens, nil
}

func (t *CppTokenizer) traverseNode(node *tree_sitter.Node, source []byte, path string, tokens *token.TokenSequence) {
	if node == nil {
		return
	}

	// If this is a leaf node (no children), extract the token
	if node.ChildCount() == 0 {
		// Zero-width leaves are tokens the parser invented during error recovery
		if node.IsMissing() || node.StartByte() == node.EndByte() {
			return
		}

		content := node.Utf8Text(source)
		if content == "" {
			return
		}

		startPoint := node.StartPosition()
		if node.Kind() == "preproc_arg" && strings.Contains(content, "/") {
			for _, seg := range splitPreprocArg(content) {
				kind := token.KindOther
				if seg.comment {
					kind = token.KindComment
				}
				*tokens = append(*tokens, token.Token{
					Kind:     kind,
					Text:     seg.text,
					Location: offsetLocation(path, startPoint, content, seg.offset),
				})
			}
			return
		}

		*tokens = append(*tokens, token.Token{
			Kind:     leafKind(node, content),
			Text:     content,
			Location: offsetLocation(path, startPoint, content, 0),
		})
		return
	}

	// Recursively traverse children
	for i := uint(0); i < node.ChildCount(); i++ {
		t.traverseNode(node.Child(i), source, path, tokens)
	}
}

// offsetLocation locates the byte at offset within a leaf starting at start
func offsetLocation(path string, start tree_sitter.Point, content string, offset int) token.Location {
	loc := token.Location{
		File:   path,
		Line:   int(start.Row) + 1,
		Column: int(start.Column) + offset + 1,
	}
	before := content[:offset]
	if nl := strings.LastIndexByte(before, '\n'); nl >= 0 {
		loc.Line += strings.Count(before, "\n")
		loc.Column = offset - nl
	}
	return loc
}

type argSegment struct {
	offset  int
	text    string
	comment bool
}

// splitPreprocArg separates the comments tree-sitter leaves inside a macro
// body from the replacement text around them. Slashes inside string and
// character literals do not start a comment.
func splitPreprocArg(arg string) []argSegment {
	var segments []argSegment
	addText := func(start, end int) {
		text := arg[start:end]
		trimmed := strings.TrimLeft(text, " \t\r\n")
		start += len(text) - len(trimmed)
		if trimmed = strings.TrimRight(trimmed, " \t\r\n"); trimmed != "" {
			segments = append(segments, argSegment{offset: start, text: trimmed})
		}
	}
	addComment := func(start, end int) {
		segments = append(segments, argSegment{
			offset:  start,
			text:    strings.TrimRight(arg[start:end], " \t\r\n"),
			comment: true,
		})
	}

	textStart := 0
	var quote byte
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		if c == '"' || c == '\'' {
			quote = c
			continue
		}
		if c != '/' || i+1 >= len(arg) {
			continue
		}
		switch arg[i+1] {
		case '/':
			addText(textStart, i)
			addComment(i, len(arg))
			return segments
		case '*':
			addText(textStart, i)
			end := strings.Index(arg[i+2:], "*/")
			if end < 0 {
				addComment(i, len(arg))
				return segments
			}
			end += i + 4
			addComment(i, end)
			textStart = end
			i = end - 1
		}
	}
	addText(textStart, len(arg))
	return segments
}

var identifierKinds = map[string]bool{
	"identifier":           true,
	"field_identifier":     true,
	"type_identifier":      true,
	"namespace_identifier": true,
	"statement_identifier": true,
}

var keywordKinds = map[string]bool{
	"primitive_type": true,
	"auto":           true,
	"this":           true,
	"true":           true,
	"false":          true,
	"null":           true,
	"nullptr":        true,
}

var literalKinds = map[string]bool{
	"number_literal":     true,
	"string_content":     true,
	"raw_string_content": true,
	"character":          true,
	"escape_sequence":    true,
	"system_lib_string":  true,
}

// leafKind maps a tree-sitter leaf onto the scanner's token taxonomy
func leafKind(node *tree_sitter.Node, content string) token.Kind {
	kind := node.Kind()
	switch {
	case kind == "comment":
		return token.KindComment
	case identifierKinds[kind]:
		return token.KindIdentifier
	case keywordKinds[kind]:
		return token.KindKeyword
	case literalKinds[kind]:
		return token.KindLiteral
	case !node.IsNamed() && isKeywordSpelling(content):
		return token.KindKeyword
	case !node.IsNamed():
		return token.KindPunctuation
	default:
		return token.KindOther
	}
}

// isKeywordSpelling matches words such as "return" and directives such as "#include"
func isKeywordSpelling(s string) bool {
	for i, r := range s {
		if i == 0 && r == '#' && len(s) > 1 {
			continue
		}
		if r != '_' && !unicode.IsLetter(r) && !(i > 0 && unicode.IsDigit(r)) {
			return false
		}
	}
	return s != ""
}

func (t *CppTokenizer) Language() string {
	return "cpp"
}

// Close releases the pooled parsers
func (t *CppTokenizer) Close() {
	t.parsers.close()
}
