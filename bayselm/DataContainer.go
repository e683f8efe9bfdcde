package bayselm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// AtomMode selects what an atom of the corpus is.
type AtomMode int

const (
	// AtomString splits lines on whitespace; segments are phrases.
	AtomString AtomMode = iota
	// AtomChar strips whitespace and splits lines into characters; segments are words.
	AtomChar
)

// ParseAtomMode parses "string" or "char", ignoring case.
func ParseAtomMode(s string) (AtomMode, error) {
	switch strings.ToLower(s) {
	case "string":
		return AtomString, nil
	case "char":
		return AtomChar, nil
	}
	return 0, &ConfigError{Field: "atoms", Value: s, cause: ErrUnknownAtomMode}
}

func (m AtomMode) String() string {
	switch m {
	case AtomString:
		return "string"
	case AtomChar:
		return "char"
	}
	return fmt.Sprintf("AtomMode(%d)", int(m))
}

// DataContainer holds a corpus with one sequence of atoms per input line.
// Empty lines are kept as empty sequences so that output stays aligned
// with the input.
type DataContainer struct {
	Sents [][]string
	Path  string
	Mode  AtomMode
	Size  int
}

// Atoms splits one line into atoms.
func (m AtomMode) Atoms(line string) []string {
	if m == AtomString {
		return strings.Fields(line)
	}
	sent := make([]string, 0, len(line))
	for _, r := range line {
		if unicode.IsSpace(r) {
			continue
		}
		sent = append(sent, string(r))
	}
	return sent
}

// ReadCorpus reads one sequence per line from r.
func ReadCorpus(r io.Reader, mode AtomMode) (*DataContainer, error) {
	dataContainer := &DataContainer{Mode: mode}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	count := 0
	for sc.Scan() {
		count++
		line := sc.Text()
		if strings.Contains(line, keySep) {
			return nil, &IOError{Op: "read", Line: count, cause: fmt.Errorf("line contains reserved character %q", keySep)}
		}
		dataContainer.Sents = append(dataContainer.Sents, mode.Atoms(line))
	}
	if err := sc.Err(); err != nil {
		return nil, &IOError{Op: "read", Line: count + 1, cause: err}
	}
	dataContainer.Size = len(dataContainer.Sents)
	return dataContainer, nil
}

// NewDataContainer reads the corpus file at filePath.
func NewDataContainer(filePath string, mode AtomMode) (*DataContainer, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, &IOError{Op: "open", Path: filePath, cause: err}
	}
	defer f.Close()

	dataContainer, err := ReadCorpus(f, mode)
	if err != nil {
		if ioErr, ok := err.(*IOError); ok {
			ioErr.Path = filePath
		}
		return nil, err
	}
	dataContainer.Path = filePath
	return dataContainer, nil
}

// NumAtoms returns the total number of atoms in the corpus.
func (dataContainer *DataContainer) NumAtoms() int {
	n := 0
	for _, sent := range dataContainer.Sents {
		n += len(sent)
	}
	return n
}

// GetSentString returns the i-th sequence with its atoms joined by sep.
func (dataContainer *DataContainer) GetSentString(i int, sep string) string {
	if i >= dataContainer.Size {
		errMsg := fmt.Sprintf("GetSentString error. index i (%v) is not smaller than size (%v)", i, dataContainer.Size)
		panic(errMsg)
	}
	return strings.Join(dataContainer.Sents[i], sep)
}
