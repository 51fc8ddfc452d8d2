package seed

import (
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"time"

	"github.com/dshills/roguecore/pkg/rerr"
	"github.com/dshills/roguecore/pkg/rng"
)

// Stream salts. Each is an arbitrary, fixed, distinct constant mixed with
// the primary seed via rng.Mix; changing a salt would change every share
// code ever issued, so these values are frozen once chosen.
const (
	saltLayout      uint64 = 0x4C41594F55540000 // "LAYOUT\0\0"-ish tag
	saltRooms       uint64 = 0x524F4F4D53000000 // "ROOMS"-ish tag
	saltConnections uint64 = 0x434F4E4E00000000 // "CONN"-ish tag
	saltDetails     uint64 = 0x4445544149000000 // "DETAI"-ish tag
)

// Version is the seed-format version triple recorded on every DungeonSeed.
const Version = "1.0.0"

// DungeonSeed is the set of inputs that fully determine one generation
// run: a primary seed and the four streams derived from it, plus the
// metadata needed to reconstruct a share code.
type DungeonSeed struct {
	Primary     uint32
	Layout      uint32
	Rooms       uint32
	Connections uint32
	Details     uint32
	Version     string
	Timestamp   int64 // Unix milliseconds.
}

// FromPrimary derives a full DungeonSeed from one primary value. Each
// stream is mixed independently off Primary with a distinct salt, so
// adding a new stream in the future cannot perturb the numeric sequence
// any existing stream produces.
func FromPrimary(primary uint32) DungeonSeed {
	p := uint64(primary)
	return DungeonSeed{
		Primary:     primary,
		Layout:      uint32(rng.Mix(p, saltLayout)),
		Rooms:       uint32(rng.Mix(p, saltRooms)),
		Connections: uint32(rng.Mix(p, saltConnections)),
		Details:     uint32(rng.Mix(p, saltDetails)),
		Version:     Version,
		Timestamp:   timeNowMillis(),
	}
}

// timeNowMillis is a seam so tests can avoid depending on wall-clock time
// when they only care about the derived streams, not the timestamp.
var timeNowMillis = func() int64 {
	return time.Now().UnixMilli()
}

// RNG returns a fresh generator seeded from this seed's primary value. Use
// Layout/Rooms/Connections/Details directly with rng.New for the
// per-purpose streams a pass declares.
func (s DungeonSeed) RNG() *rng.RNG { return rng.New(uint64(s.Primary)) }

// LayoutRNG, RoomsRNG, ConnectionsRNG and DetailsRNG construct the
// generator for each named stream. A pass that only declares "rooms" must
// call only RoomsRNG, never RNG or another stream's constructor — mixing
// streams defeats the isolation the five-stream design exists for.
func (s DungeonSeed) LayoutRNG() *rng.RNG      { return rng.New(uint64(s.Layout)) }
func (s DungeonSeed) RoomsRNG() *rng.RNG       { return rng.New(uint64(s.Rooms)) }
func (s DungeonSeed) ConnectionsRNG() *rng.RNG { return rng.New(uint64(s.Connections)) }
func (s DungeonSeed) DetailsRNG() *rng.RNG     { return rng.New(uint64(s.Details)) }

// wireLen is the byte length of the packed record before base64 encoding:
// five uint32 streams, an 8-byte timestamp, and a trailing uint32 CRC.
const wireLen = 4*5 + 8 + 4

// Encode packs s into the share-code wire format: five LSB-first uint32
// stream values, an LSB-first uint64 timestamp, and a trailing CRC32
// (IEEE polynomial, reversed 0xEDB88320, final XOR 0xFFFFFFFF — the
// standard hash/crc32 IEEE table) over the preceding bytes, all base64url
// encoded without padding.
func Encode(s DungeonSeed) string {
	buf := make([]byte, wireLen)
	binary.LittleEndian.PutUint32(buf[0:4], s.Primary)
	binary.LittleEndian.PutUint32(buf[4:8], s.Layout)
	binary.LittleEndian.PutUint32(buf[8:12], s.Rooms)
	binary.LittleEndian.PutUint32(buf[12:16], s.Connections)
	binary.LittleEndian.PutUint32(buf[16:20], s.Details)
	binary.LittleEndian.PutUint64(buf[20:28], uint64(s.Timestamp))

	sum := crc32.ChecksumIEEE(buf[:28])
	binary.LittleEndian.PutUint32(buf[28:32], sum)

	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(buf)
}

// Decode reverses Encode, verifying the trailing CRC before trusting the
// payload. Any corruption (a flipped bit, truncation, bad base64) fails
// with rerr.CodeSeedDecodeFailed. Strict decoding matters here: without
// it, a flip confined to the unused trailing bits of the final base64
// character would decode to identical bytes and slip past the CRC.
func Decode(code string) (DungeonSeed, error) {
	buf, err := base64.URLEncoding.WithPadding(base64.NoPadding).Strict().DecodeString(code)
	if err != nil {
		return DungeonSeed{}, rerr.Wrap(err, rerr.CodeSeedDecodeFailed, "malformed share code")
	}
	if len(buf) != wireLen {
		return DungeonSeed{}, rerr.Newf(rerr.CodeSeedDecodeFailed, "share code has %d bytes, want %d", len(buf), wireLen)
	}

	want := binary.LittleEndian.Uint32(buf[28:32])
	got := crc32.ChecksumIEEE(buf[:28])
	if got != want {
		return DungeonSeed{}, rerr.Newf(rerr.CodeSeedDecodeFailed, "checksum mismatch: got %08x want %08x", got, want)
	}

	return DungeonSeed{
		Primary:     binary.LittleEndian.Uint32(buf[0:4]),
		Layout:      binary.LittleEndian.Uint32(buf[4:8]),
		Rooms:       binary.LittleEndian.Uint32(buf[8:12]),
		Connections: binary.LittleEndian.Uint32(buf[12:16]),
		Details:     binary.LittleEndian.Uint32(buf[16:20]),
		Timestamp:   int64(binary.LittleEndian.Uint64(buf[20:28])),
		Version:     Version,
	}, nil
}
