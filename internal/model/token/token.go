package token

import "fmt"

// Kind classifies a lexical token
type Kind int

const (
	KindOther Kind = iota
	KindComment
	KindPunctuation
	KindIdentifier
	KindKeyword
	KindLiteral
)

func (k Kind) String() string {
	switch k {
	case KindComment:
		return "COMMENT"
	case KindPunctuation:
		return "PUNCTUATION"
	case KindIdentifier:
		return "IDENTIFIER"
	case KindKeyword:
		return "KEYWORD"
	case KindLiteral:
		return "LITERAL"
	default:
		return "OTHER"
	}
}

// Location is a position in a source file. Line and Column are 1-based.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Before reports whether l sorts before other (file, then line, then column)
func (l Location) Before(other Location) bool {
	if l.File != other.File {
		return l.File < other.File
	}
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}

// Token represents a single lexical token in source code
type Token struct {
	Kind     Kind     // Token classification
	Text     string   // Raw spelling
	Location Location // Where the token starts
}

// IsComment reports whether the token is a comment
func (t Token) IsComment() bool {
	return t.Kind == KindComment
}

// TokenSequence is a slice of tokens in source order
type TokenSequence []Token

// Stream yields tokens one at a time. Next returns false at end of stream.
type Stream interface {
	Next() (Token, bool)
}

// SliceStream streams a TokenSequence
type SliceStream struct {
	tokens TokenSequence
	pos    int
}

// NewSliceStream creates a stream over tokens
func NewSliceStream(tokens TokenSequence) *SliceStream {
	return &SliceStream{tokens: tokens}
}

func (s *SliceStream) Next() (Token, bool) {
	if s.pos >= len(s.tokens) {
		return Token{}, false
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, true
}
