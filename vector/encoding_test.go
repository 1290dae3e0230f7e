package vector

import "testing"

func TestEncodeDecodeBlob(t *testing.T) {
	orig := Vector{0, 1, 17, -3, 2147483647}

	decoded, err := DecodeBlob(EncodeBlob(orig))
	if err != nil {
		t.Fatalf("DecodeBlob failed: %v", err)
	}
	if len(decoded) != len(orig) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(orig))
	}
	for i := range orig {
		if got, want := decoded[i], orig[i]; got != want {
			t.Fatalf("decoded[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestEncodeDecodeBlob_Empty(t *testing.T) {
	if b := EncodeBlob(nil); len(b) != 0 {
		t.Fatalf("expected empty blob for nil vector, got len=%d", len(b))
	}
	v, err := DecodeBlob(nil)
	if err != nil {
		t.Fatalf("DecodeBlob(nil) failed: %v", err)
	}
	if len(v) != 0 {
		t.Fatalf("expected empty vector for nil blob, got len=%d", len(v))
	}
}

func TestDecodeBlob_InvalidLength(t *testing.T) {
	if _, err := DecodeBlob([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for 3-byte blob")
	}
}
