package ledger

import (
	"testing"

	"gpustock/internal/core/id"
)

func TestDirection(t *testing.T) {
	tests := []struct {
		kind Kind
		want EffectDirection
	}{
		{KindSupply, Increase},
		{KindReturn, Increase},
		{KindSale, Decrease},
		{KindWriteoff, Decrease},
	}

	for _, tt := range tests {
		if got := Direction(tt.kind); got != tt.want {
			t.Errorf("Direction(%q) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestValidKind(t *testing.T) {
	for _, k := range Kinds() {
		if !ValidKind(k) {
			t.Errorf("ValidKind(%q) = false, want true", k)
		}
	}

	for _, k := range []Kind{"", "donation", "SUPPLY", "Sale"} {
		if ValidKind(k) {
			t.Errorf("ValidKind(%q) = true, want false", k)
		}
	}
}

func TestSignedEffect(t *testing.T) {
	tests := []struct {
		kind Kind
		qty  int64
		want int64
	}{
		{KindSupply, 5, 5},
		{KindReturn, 3, 3},
		{KindSale, 7, -7},
		{KindWriteoff, 2, -2},
	}

	for _, tt := range tests {
		e := NewEntry(id.New(), id.New(), tt.kind, tt.qty)
		if got := e.SignedEffect(); got != tt.want {
			t.Errorf("SignedEffect(%q, %d) = %d, want %d", tt.kind, tt.qty, got, tt.want)
		}
	}
}
