package pgm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/blobcount/grid"
)

const (
	// Magic is the first line of every plain graymap.
	Magic = "P2"
	// MaxLineLength bounds a single header line in bytes.
	MaxLineLength = 1 << 20
	// MaxTokenLength bounds a single pixel token in bytes.
	MaxTokenLength = 4096
)

// lineReader yields header lines and keeps the 1-based number of the last
// one read. It shares its bufio.Reader with the pixel tokenizer.
type lineReader struct {
	br   *bufio.Reader
	line int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{br: bufio.NewReader(r)}
}

// next returns the next line without its line ending, or ok=false at EOF.
// A line longer than MaxLineLength maps to ErrLineTooLong.
func (lr *lineReader) next() (string, bool, error) {
	var buf []byte
	for {
		chunk, err := lr.br.ReadSlice('\n')
		buf = append(buf, chunk...)
		if len(bytes.TrimRight(buf, "\r\n")) > MaxLineLength {
			return "", false, fmt.Errorf("line %d: %w", lr.line+1, ErrLineTooLong)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			if len(buf) == 0 {
				return "", false, nil
			}
			break
		}
		if err != nil {
			return "", false, err
		}
		break
	}
	lr.line++

	return string(bytes.TrimRight(buf, "\r\n")), true, nil
}

// nextValid skips comment and blank lines.
func (lr *lineReader) nextValid() (string, bool, error) {
	for {
		s, ok, err := lr.next()
		if err != nil || !ok {
			return "", ok, err
		}
		if isSkippable(s) {
			continue
		}
		return s, true, nil
	}
}

func isSkippable(s string) bool {
	return strings.HasPrefix(s, "#") || strings.TrimSpace(s) == ""
}

// pixelSplitter is a bufio.SplitFunc source for the pixel body. Tokens are
// whitespace separated; a token starting with '#' opens a comment that
// runs to the end of its line. Line length is irrelevant, only a single
// token is buffered.
type pixelSplitter struct {
	inComment bool
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}

	return false
}

func (s *pixelSplitter) split(data []byte, atEOF bool) (int, []byte, error) {
	i := 0
	for i < len(data) {
		if s.inComment {
			nl := bytes.IndexByte(data[i:], '\n')
			if nl < 0 {
				return len(data), nil, nil
			}
			i += nl + 1
			s.inComment = false
			continue
		}
		if data[i] == '#' {
			s.inComment = true
			i++
			continue
		}
		if !isSpace(data[i]) {
			break
		}
		i++
	}
	if i == len(data) {
		return i, nil, nil
	}
	for j := i; j < len(data); j++ {
		if isSpace(data[j]) {
			return j + 1, data[i:j], nil
		}
	}
	if atEOF {
		return len(data), data[i:], nil
	}

	return i, nil, nil
}

// Read parses a plain graymap from r.
// Stage 1: magic line. Stage 2: width/height and max lines.
// Stage 3: width×height pixel integers in row-major order, in any layout.
// Complexity: O(W×H) time and memory.
func Read(r io.Reader) (*grid.Grid, error) {
	lr := newLineReader(r)

	// Stage 1: magic
	first, ok, err := lr.next()
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimRight(first, " \t\r") != Magic {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, first)
	}

	// Stage 2: header
	line, ok, err := lr.nextValid()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: missing size line", ErrBadHeader)
	}
	dims, err := parseInts(line, 2)
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: size %q", ErrBadHeader, lr.line, line)
	}

	line, ok, err = lr.nextValid()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: missing max intensity line", ErrBadHeader)
	}
	maxv, err := parseInts(line, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: max intensity %q", ErrBadHeader, lr.line, line)
	}

	g, err := grid.New(dims[0], dims[1], maxv[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}

	// Stage 3: pixels
	sc := bufio.NewScanner(lr.br)
	sc.Buffer(make([]byte, 0, MaxTokenLength), MaxTokenLength)
	sc.Split((&pixelSplitter{}).split)

	pix := g.Pixels()
	n := 0
	for n < len(pix) && sc.Scan() {
		tok := sc.Text()
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: pixel %d: %q", ErrBadPixel, n, tok)
		}
		pix[n] = v
		n++
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("pixel %d: %w", n, ErrTokenTooLong)
		}
		return nil, err
	}
	if n < len(pix) {
		return nil, fmt.Errorf("%w: got %d of %d", ErrShortPixels, n, len(pix))
	}

	return g, nil
}

// parseInts reads the first n integer fields of s; extra fields are ignored.
func parseInts(s string, n int) ([]int, error) {
	fields := strings.Fields(s)
	if len(fields) < n {
		return nil, ErrBadHeader
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// Write emits g as a plain graymap. Every pixel is followed by one space
// and every row by a newline.
// Complexity: O(W×H).
func Write(w io.Writer, g *grid.Grid) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", Magic, g.Width, g.Height, g.MaxIntensity); err != nil {
		return err
	}
	pix := g.Pixels()
	buf := make([]byte, 0, 16)
	for r := 0; r < g.Height; r++ {
		for _, v := range pix[r*g.Width : (r+1)*g.Width] {
			buf = strconv.AppendInt(buf[:0], int64(v), 10)
			buf = append(buf, ' ')
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pgm: open %s: %w", path, err)
	}
	defer f.Close()

	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("pgm: read %s: %w", path, err)
	}

	return g, nil
}

// WriteFile creates (or truncates) path and writes g to it.
func WriteFile(path string, g *grid.Grid) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pgm: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("pgm: close %s: %w", path, cerr)
		}
	}()

	if err = Write(f, g); err != nil {
		return fmt.Errorf("pgm: write %s: %w", path, err)
	}

	return nil
}
