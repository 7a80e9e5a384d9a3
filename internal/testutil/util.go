// Package testutil holds small assertion helpers shared by package tests.
package testutil

import (
	"math"
	"testing"
)

// AlmostEqual fails the test when got differs from want by more than tol.
func AlmostEqual(t *testing.T, what string, want, got, tol float64) {
	t.Helper()
	if math.Abs(want-got) > tol {
		t.Fatalf("%s: expected %v, got %v (tolerance %v)", what, want, got, tol)
	}
}

// Within reports whether a and b differ by at most tol.
func Within(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
