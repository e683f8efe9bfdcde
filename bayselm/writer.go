package bayselm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Render joins the atoms of each segment of sent with joiner and appends
// delim after every segment, the last one included. Rendering stops at a
// zero boundary.
//
// Split recovers the segments, but the atoms of a segment are only
// recoverable when joiner is non-empty or every atom is a single rune.
// With word atoms and the empty joiner, "the cat" renders as "thecat".
func Render(sent []string, boundaries []int, delim string, joiner string) string {
	var sb strings.Builder
	wordPos := 0
	for _, boundary := range boundaries {
		if boundary == 0 {
			break
		}
		if boundary <= wordPos || boundary > len(sent) {
			errMsg := fmt.Sprintf("boundary vector %v is not increasing within sequence length %v", boundaries, len(sent))
			panic(&InvariantViolation{Op: "Render", Detail: errMsg})
		}
		sb.WriteString(strings.Join(sent[wordPos:boundary], joiner))
		sb.WriteString(delim)
		wordPos = boundary
	}
	return sb.String()
}

// Split splits a rendered line back into its segments. Empty fields are
// dropped; a whitespace-only delim splits on any run of whitespace.
func Split(line string, delim string) []string {
	if strings.TrimSpace(delim) == "" {
		return strings.Fields(line)
	}
	fields := strings.Split(line, delim)
	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// WriteSegmentation writes one rendered line per sequence to w.
func WriteSegmentation(w io.Writer, corpus [][]string, boundaries [][]int, delim string, joiner string) error {
	if len(corpus) != len(boundaries) {
		errMsg := fmt.Sprintf("%v sequences but %v boundary vectors", len(corpus), len(boundaries))
		panic(&InvariantViolation{Op: "WriteSegmentation", Detail: errMsg})
	}
	bw := bufio.NewWriter(w)
	for sentNum, sent := range corpus {
		if _, err := bw.WriteString(Render(sent, boundaries[sentNum], delim, joiner)); err != nil {
			return &IOError{Op: "write", Line: sentNum + 1, cause: err}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return &IOError{Op: "write", Line: sentNum + 1, cause: err}
		}
	}
	if err := bw.Flush(); err != nil {
		return &IOError{Op: "write", cause: err}
	}
	return nil
}

// SaveSegmentation writes the segmentation to filePath. A failed write may
// leave a partial file behind.
func SaveSegmentation(filePath string, corpus [][]string, boundaries [][]int, delim string, joiner string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return &IOError{Op: "create", Path: filePath, cause: err}
	}
	if err := WriteSegmentation(f, corpus, boundaries, delim, joiner); err != nil {
		f.Close()
		if ioErr, ok := err.(*IOError); ok {
			ioErr.Path = filePath
		}
		return err
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: filePath, cause: err}
	}
	return nil
}
