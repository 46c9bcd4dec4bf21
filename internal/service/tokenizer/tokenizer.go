package tokenizer

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"cppsniff/internal/model/token"
)

// Tokenizer defines the interface for language-specific tokenization
type Tokenizer interface {
	// Tokenize converts source code into a sequence of tokens in source order.
	// path is only used to stamp token locations.
	Tokenize(ctx context.Context, path string, source []byte) (token.TokenSequence, error)

	// Language returns the language this tokenizer handles
	Language() string
}

// Registry manages tokenizers for different languages
type Registry struct {
	tokenizers map[string]Tokenizer
	extensions map[string]string // file extension -> language
}

// NewRegistry creates a new tokenizer registry
func NewRegistry() *Registry {
	return &Registry{
		tokenizers: make(map[string]Tokenizer),
		extensions: make(map[string]string),
	}
}

// Register adds a tokenizer for a specific language
func (r *Registry) Register(tokenizer Tokenizer, extensions []string) {
	language := tokenizer.Language()
	r.tokenizers[language] = tokenizer
	for _, ext := range extensions {
		r.extensions[strings.ToLower(ext)] = language
	}
}

// Get returns the tokenizer for a given language
func (r *Registry) Get(language string) (Tokenizer, bool) {
	tokenizer, ok := r.tokenizers[language]
	return tokenizer, ok
}

// ForPath returns the tokenizer registered for the file's extension
func (r *Registry) ForPath(path string) (Tokenizer, bool) {
	language, ok := r.extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, false
	}
	return r.Get(language)
}

// Extensions returns the registered file extensions, sorted
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.extensions))
	for ext := range r.extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
