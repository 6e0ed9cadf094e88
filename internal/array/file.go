package array

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

var (
	// ErrUnreadable is returned when the source cannot be opened or read.
	ErrUnreadable = errors.New("array source unreadable")
	// ErrMalformedHeader is returned when the leading element count is not an integer.
	ErrMalformedHeader = errors.New("malformed array size header")
	// ErrInvalidSize is returned when the declared element count is not positive.
	ErrInvalidSize = errors.New("invalid array size")
	// ErrMalformedElement is returned when an element is missing or not an integer.
	ErrMalformedElement = errors.New("malformed array element")
)

// Save writes a as its element count on the first line followed by the
// elements separated by single spaces.
func Save(w io.Writer, a []int) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strconv.Itoa(len(a)))
	bw.WriteByte('\n')
	for _, v := range a {
		bw.WriteString(strconv.Itoa(v))
		bw.WriteByte(' ')
	}
	return bw.Flush()
}

// SaveFile writes a to path in the Save format, truncating any existing file.
func SaveFile(path string, a []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s for writing: %w", path, err)
	}
	if err := Save(f, a); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Load reads an array in the Save format. Any whitespace separates tokens.
// Tokens after the declared count are ignored.
func Load(r io.Reader) ([]int, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		return nil, fmt.Errorf("%w: missing size", ErrMalformedHeader)
	}
	size, err := strconv.Atoi(sc.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedHeader, sc.Text())
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	a := make([]int, 0, min(size, 1<<16))
	for i := range size {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
			}
			return nil, fmt.Errorf("%w: element #%d missing", ErrMalformedElement, i)
		}
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: element #%d is %q", ErrMalformedElement, i, sc.Text())
		}
		a = append(a, v)
	}
	return a, nil
}

// LoadFile reads an array from path. Open failures wrap ErrUnreadable.
func LoadFile(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	a, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return a, nil
}
