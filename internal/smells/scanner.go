package smells

import (
	"context"

	"cppsniff/internal/model/token"
)

// Scanner is a token-based smell detector. A scanner instance belongs to a
// single file: tokens are visited in source order, then Finalize flushes any
// pending state and returns the file's smells in source order.
type Scanner interface {
	// Name returns the unique identifier for this scanner
	Name() string

	// SmellType returns the type of smell this scanner finds
	SmellType() SmellType

	// Visit consumes the next token of the file
	Visit(ctx context.Context, tok token.Token)

	// Finalize signals end of stream and returns the detected smells
	Finalize(ctx context.Context) []Smell
}

// ScanStream drives scanners over a token stream and merges their smells
// into one list ordered by location.
func ScanStream(ctx context.Context, stream token.Stream, scanners []Scanner) []Smell {
	for {
		tok, ok := stream.Next()
		if !ok {
			break
		}
		for _, scanner := range scanners {
			scanner.Visit(ctx, tok)
		}
	}

	var found []Smell
	for _, scanner := range scanners {
		found = append(found, scanner.Finalize(ctx)...)
	}
	if len(scanners) > 1 {
		sortByLocation(found)
	}
	return found
}
