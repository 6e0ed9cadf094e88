// Package array provides the pure helpers the sort engine consumes
// (MemoryUsage, IsSorted) and the collaborators that produce its input:
// random generation and the plain-text file format.
//
// # File Format
//
// An array is stored as its element count followed by the elements:
//
//	6
//	5 3 8 1 9 2
//
// Any whitespace separates tokens. Load reports distinct sentinel errors,
// all usable with errors.Is:
//   - ErrUnreadable: the file cannot be opened or read
//   - ErrMalformedHeader: the count is missing or not an integer
//   - ErrInvalidSize: the count is zero or negative
//   - ErrMalformedElement: an element is missing or not an integer
//
// Loading always produces a new slice, so a failed load never disturbs an
// array that is being sorted.
package array
