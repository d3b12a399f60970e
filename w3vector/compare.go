package w3vector

import (
	"encoding/json"
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Comparison is the result of [Compare].
type Comparison struct {
	// Whether the two files differ structurally.
	Modified bool

	// ASCII diff of left against right.
	// Empty when Modified is false.
	Report string
}

// Compare structurally diffs two vector files.
// Formatting and key order do not count as differences.
func Compare(left, right []byte) (Comparison, error) {
	var l, r []any
	if err := json.Unmarshal(left, &l); err != nil {
		return Comparison{}, fmt.Errorf("failed to parse left vectors: %w", err)
	}
	if err := json.Unmarshal(right, &r); err != nil {
		return Comparison{}, fmt.Errorf("failed to parse right vectors: %w", err)
	}

	delta := gojsondiff.New().CompareArrays(l, r)
	if !delta.Modified() {
		return Comparison{}, nil
	}

	f := formatter.NewAsciiFormatter(l, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
	})
	report, err := f.Format(delta)
	if err != nil {
		return Comparison{}, fmt.Errorf("failed to format vector diff: %w", err)
	}

	return Comparison{Modified: true, Report: report}, nil
}
