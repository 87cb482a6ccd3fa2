package domain

import (
	"math"
	"testing"
)

func TestCosine_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"scaled", []float32{2, 0}, []float32{5, 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCosine_Bounded(t *testing.T) {
	vecs := [][]float32{
		{0.3, -0.7, 0.2},
		{1, 1, 1},
		{-2.5, 0.1, 3},
		{0.001, 0, -0.999},
	}
	for _, a := range vecs {
		for _, b := range vecs {
			got := Cosine(a, b)
			if got < -1-1e-9 || got > 1+1e-9 {
				t.Errorf("Cosine(%v, %v) = %f out of [-1, 1]", a, b, got)
			}
		}
	}
}

func TestCosine_SelfSimilarityIsMaximal(t *testing.T) {
	a := []float32{0.4, -0.2, 0.9}
	others := [][]float32{
		{0.1, 0.1, 0.1},
		{-0.4, 0.2, -0.9},
		{1, 0, 0},
	}
	self := Cosine(a, a)
	for _, b := range others {
		if Cosine(a, b) > self+1e-9 {
			t.Errorf("Cosine(a, %v) exceeds self-similarity %f", b, self)
		}
	}
}

func TestCosine_ZeroVector(t *testing.T) {
	a := []float32{0, 0, 0}
	b := []float32{1, 2, 3}
	if got := Cosine(a, b); got != 0 {
		t.Errorf("Cosine(zero, b) = %f, want 0", got)
	}
	if got := Cosine(a, a); got != 0 {
		t.Errorf("Cosine(zero, zero) = %f, want 0", got)
	}
}
