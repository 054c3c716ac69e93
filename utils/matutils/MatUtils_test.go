package matutils

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestFormat(t *testing.T) {
	var nilVec *mat.VecDense

	if have := Format(nil); have != "<nil>" {
		t.Errorf("nil: want(<nil>) have(%q)", have)
	}
	if have := Format(nilVec); have != "<nil>" {
		t.Errorf("nil vector: want(<nil>) have(%q)", have)
	}

	have := Format(mat.NewVecDense(2, []float64{1.5, -2}))
	if !strings.HasPrefix(have, "[") || !strings.Contains(have, "1.5") ||
		!strings.Contains(have, "-2") || strings.Contains(have, "\n") {
		t.Errorf("vector: want single line row, have(%q)", have)
	}
}
