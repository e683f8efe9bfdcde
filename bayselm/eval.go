package bayselm

import (
	"bufio"
	"fmt"
	"os"
)

// Scores holds segment-level precision, recall and F1.
type Scores struct {
	TruePositives  float64
	FalsePositives float64
	FalseNegatives float64
	Precision      float64
	Recall         float64
	F1             float64
}

func (s Scores) String() string {
	return fmt.Sprintf("Precision = %f, Recall = %f, F1 = %f", s.Precision, s.Recall, s.F1)
}

// Evaluate compares predicted segments with gold segments line by line.
// Segments are matched as bags per line, so order inside a line is ignored.
func Evaluate(gold [][]string, predicted [][]string) (Scores, error) {
	if len(gold) != len(predicted) {
		return Scores{}, fmt.Errorf("evaluate: %d gold lines but %d predicted lines", len(gold), len(predicted))
	}
	var s Scores
	for i := range predicted {
		goldItems := NewCounter[string]()
		goldItems.AddAll(gold[i], 1.0)
		predictedItems := NewCounter[string]()
		predictedItems.AddAll(predicted[i], 1.0)

		localTruePositives := 0.0
		predictedItems.Range(func(item string, predictedCount float64) bool {
			goldCount := goldItems.Get(item)
			if predictedCount > goldCount {
				localTruePositives += goldCount
				s.FalsePositives += predictedCount - goldCount
			} else {
				localTruePositives += predictedCount
			}
			return true
		})
		s.TruePositives += localTruePositives
		s.FalseNegatives += goldItems.Total() - localTruePositives
	}
	if s.TruePositives > 0 {
		s.Precision = s.TruePositives / (s.TruePositives + s.FalsePositives)
		s.Recall = s.TruePositives / (s.TruePositives + s.FalseNegatives)
		s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
	}
	return s, nil
}

// EvaluateFiles scores the segmentation in predictedPath, split by delim,
// against the whitespace-separated gold segments in goldPath.
func EvaluateFiles(goldPath string, predictedPath string, delim string) (Scores, error) {
	gold, err := readLines(goldPath, func(line string) []string { return AtomString.Atoms(line) })
	if err != nil {
		return Scores{}, err
	}
	predicted, err := readLines(predictedPath, func(line string) []string { return Split(line, delim) })
	if err != nil {
		return Scores{}, err
	}
	return Evaluate(gold, predicted)
}

func readLines(filePath string, split func(string) []string) ([][]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, &IOError{Op: "open", Path: filePath, cause: err}
	}
	defer f.Close()

	var lines [][]string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, split(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, &IOError{Op: "read", Path: filePath, Line: len(lines) + 1, cause: err}
	}
	return lines, nil
}
