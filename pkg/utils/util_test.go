package utils

import (
	"testing"
)

func TestSeedUtils(t *testing.T) {
	t.Run("DereferenceSeed: nil の場合は 0 を返す", func(t *testing.T) {
		if got := DereferenceSeed(nil); got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
	})

	t.Run("DereferenceSeed: 値がある場合はその値を返す", func(t *testing.T) {
		var val int64 = 999
		if got := DereferenceSeed(&val); got != 999 {
			t.Errorf("expected 999, got %v", got)
		}
	})

	t.Run("SeedPtr: 正の値はポインタになる", func(t *testing.T) {
		p := SeedPtr(42)
		if p == nil || *p != 42 {
			t.Errorf("expected pointer to 42, got %v", p)
		}
	})

	t.Run("SeedPtr: 0以下は nil", func(t *testing.T) {
		if SeedPtr(0) != nil {
			t.Error("expected nil for 0")
		}
		if SeedPtr(-1) != nil {
			t.Error("expected nil for negative seed")
		}
	})
}
