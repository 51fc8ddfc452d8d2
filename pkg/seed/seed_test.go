package seed

import (
	"strings"
	"testing"

	"github.com/dshills/roguecore/pkg/rerr"
)

func TestFromPrimary_Deterministic(t *testing.T) {
	a := FromPrimary(42)
	b := FromPrimary(42)
	if a.Layout != b.Layout || a.Rooms != b.Rooms || a.Connections != b.Connections || a.Details != b.Details {
		t.Fatalf("FromPrimary(42) produced different streams across calls: %+v vs %+v", a, b)
	}
}

func TestFromPrimary_StreamsAreDistinct(t *testing.T) {
	s := FromPrimary(42)
	values := map[uint32]string{
		s.Layout:      "layout",
		s.Rooms:       "rooms",
		s.Connections: "connections",
		s.Details:     "details",
	}
	if len(values) != 4 {
		t.Fatalf("stream values collided: %+v", s)
	}
}

func TestFromPrimary_DifferentPrimariesDiverge(t *testing.T) {
	a := FromPrimary(1)
	b := FromPrimary(2)
	if a.Layout == b.Layout && a.Rooms == b.Rooms {
		t.Fatal("distinct primaries produced identical streams")
	}
}

func TestStreamRNGs_AreIndependentSequences(t *testing.T) {
	s := FromPrimary(7)
	layout := s.LayoutRNG()
	rooms := s.RoomsRNG()

	same := true
	for i := 0; i < 8; i++ {
		if layout.NextU64() != rooms.NextU64() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("layout and rooms streams produced the same sequence")
	}
}

func TestEncodeDecode_Roundtrip(t *testing.T) {
	s := DungeonSeed{
		Primary: 7, Layout: 11, Rooms: 13, Connections: 17, Details: 19,
		Timestamp: 1_700_000_000_000, Version: Version,
	}
	code := Encode(s)
	got, err := Decode(code)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got != s {
		t.Fatalf("Decode(Encode(s)) = %+v, want %+v", got, s)
	}
}

func TestDecode_RejectsBitFlip(t *testing.T) {
	s := DungeonSeed{Primary: 7, Layout: 11, Rooms: 13, Connections: 17, Details: 19, Timestamp: 1700000000000}
	code := Encode(s)

	for i := range code {
		b := []byte(code)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		tampered := string(b)
		if tampered == code {
			continue
		}
		if _, err := Decode(tampered); err == nil {
			t.Fatalf("Decode accepted a tampered code at position %d: %s", i, tampered)
		} else if !rerr.Is(err, rerr.CodeSeedDecodeFailed) {
			t.Fatalf("Decode error at position %d is not CodeSeedDecodeFailed: %v", i, err)
		}
	}
}

func TestDecode_RejectsMalformedBase64(t *testing.T) {
	_, err := Decode("not-valid-base64!!!")
	if err == nil {
		t.Fatal("expected error decoding malformed input")
	}
	if !rerr.Is(err, rerr.CodeSeedDecodeFailed) {
		t.Fatalf("expected CodeSeedDecodeFailed, got %v", err)
	}
}

func TestDecode_RejectsWrongLength(t *testing.T) {
	_, err := Decode(strings.TrimRight(Encode(FromPrimary(1)), "A")[:4])
	if err == nil {
		t.Fatal("expected error decoding truncated input")
	}
	if !rerr.Is(err, rerr.CodeSeedDecodeFailed) {
		t.Fatalf("expected CodeSeedDecodeFailed, got %v", err)
	}
}
