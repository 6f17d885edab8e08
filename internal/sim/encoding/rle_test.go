package encoding

import "testing"

func TestRLE_RoundTrip(t *testing.T) {
	in := make([]byte, 0, 200)
	in = append(in, 0x04, 0x04, 0x04, 0x40, 0x40, 0x11)
	for i := 0; i < 50; i++ {
		in = append(in, 0x55)
	}
	in = append(in, 0xFF, 0x00, 0x00, 0x00)

	enc := EncodeRLE(in)
	out, err := DecodeRLE(enc)
	if err != nil {
		t.Fatalf("DecodeRLE: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len mismatch: got %d want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("mismatch at %d: got %d want %d", i, out[i], in[i])
		}
	}
}

func TestRLE_Empty(t *testing.T) {
	out, err := DecodeRLE(EncodeRLE(nil))
	if err != nil {
		t.Fatalf("DecodeRLE: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("want empty, got %d bytes", len(out))
	}
}

func TestRLE_RejectsGarbage(t *testing.T) {
	if _, err := DecodeRLE("not base64!!"); err == nil {
		t.Fatal("invalid base64 accepted")
	}
}
