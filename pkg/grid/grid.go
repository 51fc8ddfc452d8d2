package grid

import (
	"encoding/binary"

	"github.com/dshills/roguecore/pkg/rerr"
)

// Cell values. Callers are free to use additional byte values for richer
// terrain (water, lava, rubble); 0 and 1 are the only values the grid
// package itself interprets.
const (
	Wall  byte = 0
	Floor byte = 1
)

// Grid is a dense, row-major byte-per-cell terrain buffer. The zero value
// is not usable; construct with New.
type Grid struct {
	width  int
	height int
	cells  []byte
}

// New returns a Grid of the given dimensions, every cell initialized to
// Wall. Negative or zero dimensions are clamped to zero, producing an
// empty grid rather than panicking.
func New(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]byte, width*height),
	}
}

// Width returns the grid's declared width.
func (g *Grid) Width() int { return g.width }

// Height returns the grid's declared height.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) addresses a real cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

// Get returns the value at (x, y), or Wall if out of bounds.
func (g *Grid) Get(x, y int) byte {
	if !g.InBounds(x, y) {
		return Wall
	}
	return g.cells[g.index(x, y)]
}

// Set writes value at (x, y). Out-of-bounds writes are silently dropped.
func (g *Grid) Set(x, y int, value byte) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[g.index(x, y)] = value
}

// Fill sets every cell to value.
func (g *Grid) Fill(value byte) {
	for i := range g.cells {
		g.cells[i] = value
	}
}

// FillRect fills the rectangle [x, x+w) x [y, y+h) with value, clipping
// silently against the grid bounds.
func (g *Grid) FillRect(x, y, w, h int, value byte) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			g.Set(x+dx, y+dy, value)
		}
	}
}

// DrawRect outlines the rectangle [x, x+w) x [y, y+h) with value.
func (g *Grid) DrawRect(x, y, w, h int, value byte) {
	if w <= 0 || h <= 0 {
		return
	}
	for dx := 0; dx < w; dx++ {
		g.Set(x+dx, y, value)
		g.Set(x+dx, y+h-1, value)
	}
	for dy := 0; dy < h; dy++ {
		g.Set(x, y+dy, value)
		g.Set(x+w-1, y+dy, value)
	}
}

// DrawLine stamps value along the Bresenham line from (x0, y0) to (x1, y1).
func (g *Grid) DrawLine(x0, y0, x1, y1 int, value byte) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy
	for {
		g.Set(x0, y0, value)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// CountNeighbors counts the neighbors of (x, y) equal to target, among the
// four cardinal neighbors plus the four diagonals when includeDiagonal is
// set. Out-of-bounds neighbors read as Wall via Get.
func (g *Grid) CountNeighbors(x, y int, target byte, includeDiagonal bool) int {
	deltas := [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	if includeDiagonal {
		deltas = append(deltas, [2]int{-1, -1}, [2]int{-1, 1}, [2]int{1, -1}, [2]int{1, 1})
	}
	count := 0
	for _, d := range deltas {
		if g.Get(x+d[0], y+d[1]) == target {
			count++
		}
	}
	return count
}

type point struct{ x, y int }

// FloodFillFrom returns the set of coordinates reachable from (x, y) by
// 4-directional moves through cells equal to the value at the start
// position. The start cell itself is included when in bounds. An
// out-of-bounds start yields an empty set.
func (g *Grid) FloodFillFrom(x, y int) map[[2]int]bool {
	visited := make(map[[2]int]bool)
	if !g.InBounds(x, y) {
		return visited
	}
	target := g.Get(x, y)
	queue := []point{{x, y}}
	seen := map[point]bool{{x, y}: true}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if g.Get(p.x, p.y) != target {
			continue
		}
		visited[[2]int{p.x, p.y}] = true

		for _, n := range []point{
			{p.x - 1, p.y}, {p.x + 1, p.y},
			{p.x, p.y - 1}, {p.x, p.y + 1},
		} {
			if seen[n] || !g.InBounds(n.x, n.y) {
				continue
			}
			seen[n] = true
			if g.Get(n.x, n.y) == target {
				queue = append(queue, n)
			}
		}
	}
	return visited
}

// Reaches reports whether (tx, ty) is reachable from (x, y) through cells
// matching the starting cell's value.
func (g *Grid) Reaches(x, y, tx, ty int) bool {
	if !g.InBounds(tx, ty) {
		return false
	}
	region := g.FloodFillFrom(x, y)
	return region[[2]int{tx, ty}]
}

// EncodeBits packs the grid as one bit per cell, row-major, LSB first
// within each byte, treating any non-Wall value as a set bit. This is
// the binary transport format an Artifact's terrain travels in.
func (g *Grid) EncodeBits() []byte {
	out := make([]byte, (len(g.cells)+7)/8)
	for i, v := range g.cells {
		if v != Wall {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

// DecodeBits reverses EncodeBits, unpacking the first n cells (LSB first
// within each byte) back into Wall/Floor bytes:
// DecodeBits(g.EncodeBits(), len(g.Cells())) equals g.Cells() when every
// cell is Wall or Floor (any other value comes back as Floor).
// n beyond the bit capacity of data reads as Wall past the packed range.
func DecodeBits(data []byte, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		byteIdx := i / 8
		if byteIdx >= len(data) {
			out[i] = Wall
			continue
		}
		if data[byteIdx]&(1<<uint(i%8)) != 0 {
			out[i] = Floor
		} else {
			out[i] = Wall
		}
	}
	return out
}

// RLERun is one (value, run-length) pair in an RLE-encoded grid.
type RLERun struct {
	Value byte
	Run   uint32
}

// EncodeRLE run-length encodes the grid's cells in row-major order.
func (g *Grid) EncodeRLE() []RLERun {
	if len(g.cells) == 0 {
		return nil
	}
	var runs []RLERun
	cur := g.cells[0]
	n := uint32(1)
	for i := 1; i < len(g.cells); i++ {
		if g.cells[i] == cur {
			n++
			continue
		}
		runs = append(runs, RLERun{Value: cur, Run: n})
		cur = g.cells[i]
		n = 1
	}
	runs = append(runs, RLERun{Value: cur, Run: n})
	return runs
}

// MarshalRLE serializes EncodeRLE's output as a flat byte slice: each run
// is one value byte followed by a little-endian uint32 run length.
func (g *Grid) MarshalRLE() []byte {
	runs := g.EncodeRLE()
	out := make([]byte, 0, len(runs)*5)
	buf := make([]byte, 4)
	for _, r := range runs {
		out = append(out, r.Value)
		binary.LittleEndian.PutUint32(buf, r.Run)
		out = append(out, buf...)
	}
	return out
}

// DecodeRLE rebuilds a width x height grid from MarshalRLE's wire format,
// rejecting malformed input rather than silently truncating it: a payload
// whose length is not a whole number of (value, run) records, or whose
// runs sum to more or fewer cells than width*height, fails with
// rerr.CodeConfigInvalid.
func DecodeRLE(width, height int, data []byte) (*Grid, error) {
	if len(data)%5 != 0 {
		return nil, rerr.Newf(rerr.CodeConfigInvalid, "rle payload length %d is not a multiple of 5 (truncated record)", len(data))
	}

	g := New(width, height)
	total := len(g.cells)
	idx := 0
	for i := 0; i+5 <= len(data); i += 5 {
		value := data[i]
		run := binary.LittleEndian.Uint32(data[i+1 : i+5])
		if idx+int(run) > total {
			return nil, rerr.Newf(rerr.CodeConfigInvalid, "rle run at byte %d overflows %d total cells", i, total)
		}
		for j := uint32(0); j < run; j++ {
			g.cells[idx] = value
			idx++
		}
	}
	if idx != total {
		return nil, rerr.Newf(rerr.CodeConfigInvalid, "rle payload decodes %d cells, want %d", idx, total)
	}
	return g, nil
}

// Cells returns the grid's backing row-major byte array. Callers must
// treat it as read-only; mutate through Set/Fill/FillRect instead.
func (g *Grid) Cells() []byte {
	return g.cells
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{width: g.width, height: g.height, cells: make([]byte, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
