package scorer

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// The scorer prints, among free-text diagnostics, one line of the form
//
//	Final Cleanliness% (after penalty) = 27.09%
//
// The label text between "Final Cleanliness%" and "=" varies between script
// versions, so anything up to the first "=" on the same line is accepted.
var scoreLine = regexp.MustCompile(`(?i)final\s*cleanliness%[^=\n]*=\s*(-?[0-9]+(?:\.[0-9]+)?)\s*%?`)

// ErrNoScore is returned by ExtractScore when the output contains no
// recognizable score line.
var ErrNoScore = errors.New("no cleanliness score line in scorer output")

// ExtractScore searches the full accumulated scorer output for the final
// cleanliness line and parses its numeric value. The value is a percentage in
// [0, 100] by convention but is not clamped here; range handling is the
// caller's concern.
func ExtractScore(raw string) (float64, error) {
	m := scoreLine.FindStringSubmatch(raw)
	if m == nil {
		return 0, ErrNoScore
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("score %q does not parse as a finite number", m[1])
	}
	return v, nil
}
