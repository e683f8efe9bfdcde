package bayselm

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type sampledSegmentJSON struct {
	Segment string
	Count   float64
}

type samplesJSON struct {
	Iterations     int
	SampleInterval int
	SampleCount    int
	Concentration  float64
	Total          float64
	Segments       []sampledSegmentJSON // ordered by decreasing count
}

// samplesToJSON returns the accumulated samples in their JSON form.
func (seg *Segmenter) samplesToJSON() *samplesJSON {
	sampleCount := 0
	if seg.opts.sampleInterval > 0 {
		sampleCount = seg.iteration / seg.opts.sampleInterval
	}
	entries := seg.samples.MostCommon(0, func(a, b string) bool { return a < b })
	segments := make([]sampledSegmentJSON, 0, len(entries))
	for _, e := range entries {
		segments = append(segments, sampledSegmentJSON{Segment: e.Item, Count: e.Weight})
	}
	return &samplesJSON{
		Iterations:     seg.iteration,
		SampleInterval: seg.opts.sampleInterval,
		SampleCount:    sampleCount,
		Concentration:  seg.dp.Concentration(),
		Total:          seg.samples.Total(),
		Segments:       segments,
	}
}

// WriteSamples writes the accumulated samples to w as JSON.
// saveFormat is "indent" or "notindent".
func (seg *Segmenter) WriteSamples(w io.Writer, saveFormat string) error {
	var v []byte
	var err error
	switch saveFormat {
	case "indent":
		v, err = json.MarshalIndent(seg.samplesToJSON(), "", " ")
	case "notindent":
		v, err = json.Marshal(seg.samplesToJSON())
	default:
		return &ConfigError{Field: "save format", Value: saveFormat, cause: fmt.Errorf("expected indent or notindent")}
	}
	if err != nil {
		return err
	}
	if _, err := w.Write(append(v, '\n')); err != nil {
		return &IOError{Op: "write", cause: err}
	}
	return nil
}

// SaveSamples writes the accumulated samples to filePath as JSON.
func (seg *Segmenter) SaveSamples(filePath string, saveFormat string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return &IOError{Op: "create", Path: filePath, cause: err}
	}
	if err := seg.WriteSamples(f, saveFormat); err != nil {
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
