package conv

import (
	"math"
	"testing"
)

func TestIntToUint32(t *testing.T) {
	for _, n := range []int{0, 1, 1 << 20, math.MaxUint32} {
		if got := IntToUint32(n); int(got) != n {
			t.Errorf("IntToUint32(%d) = %d", n, got)
		}
	}
}

func TestIntToUint32Panics(t *testing.T) {
	for _, n := range []int{-1, math.MaxUint32 + 1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("IntToUint32(%d) did not panic", n)
				}
			}()
			IntToUint32(n)
		}()
	}
}
