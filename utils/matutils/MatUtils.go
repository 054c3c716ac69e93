// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing on a single line. A nil matrix
// is formatted as <nil>.
func Format(X mat.Matrix) string {
	if X == nil {
		return "<nil>"
	}
	if v, ok := X.(*mat.VecDense); ok {
		if v == nil {
			return "<nil>"
		}
		X = v.T()
	}

	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}
