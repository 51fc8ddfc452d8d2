package traceexport

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/roguecore/pkg/dungeonstate"
	"github.com/dshills/roguecore/pkg/rerr"
)

// SVGOptions configures the debug-map rendering.
type SVGOptions struct {
	CellSize   int
	ShowLabels bool
	ShowSpawns bool
	Margin     int
	Title      string
}

// DefaultSVGOptions returns rendering defaults sized for on-screen
// inspection of mid-sized dungeons.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		CellSize:   8,
		ShowLabels: true,
		ShowSpawns: true,
		Margin:     20,
		Title:      "Dungeon",
	}
}

// ExportSVG renders artifact's terrain, rooms, connections and spawns as
// an SVG image: terrain cells as a background grid, rooms outlined by
// type, connection paths as polylines, spawns as small colored dots.
func ExportSVG(artifact *dungeonstate.Artifact, opts SVGOptions) ([]byte, error) {
	if artifact == nil {
		return nil, rerr.New(rerr.CodeConfigInvalid, "cannot export a nil artifact")
	}
	if opts.CellSize <= 0 {
		opts.CellSize = 8
	}
	if opts.Margin <= 0 {
		opts.Margin = 20
	}

	width := artifact.Width*opts.CellSize + 2*opts.Margin
	height := artifact.Height*opts.CellSize + 2*opts.Margin + 30

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#1a1a2e")

	if opts.Title != "" {
		canvas.Text(width/2, 20, opts.Title, "text-anchor:middle;font-size:16px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
	}

	ox, oy := opts.Margin, opts.Margin+30
	drawTerrain(canvas, artifact, opts, ox, oy)
	drawConnections(canvas, artifact, opts, ox, oy)
	drawRooms(canvas, artifact, opts, ox, oy)
	if opts.ShowSpawns {
		drawSpawns(canvas, artifact, opts, ox, oy)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile writes ExportSVG's output to path with 0644 permissions.
func SaveSVGToFile(artifact *dungeonstate.Artifact, opts SVGOptions, path string) error {
	data, err := ExportSVG(artifact, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return rerr.Wrap(err, rerr.CodeGenerationFailed, "writing trace export SVG to "+path)
	}
	return nil
}

func drawTerrain(canvas *svg.SVG, a *dungeonstate.Artifact, opts SVGOptions, ox, oy int) {
	cs := opts.CellSize
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			idx := y*a.Width + x
			if idx >= len(a.Terrain) || a.Terrain[idx] == 0 {
				continue
			}
			canvas.Rect(ox+x*cs, oy+y*cs, cs, cs, "fill:#2d3748")
		}
	}
}

func drawConnections(canvas *svg.SVG, a *dungeonstate.Artifact, opts SVGOptions, ox, oy int) {
	cs := opts.CellSize
	for _, c := range a.Connections {
		if len(c.Path) < 2 {
			continue
		}
		xs := make([]int, len(c.Path))
		ys := make([]int, len(c.Path))
		for i, p := range c.Path {
			xs[i] = ox + p.X*cs + cs/2
			ys[i] = oy + p.Y*cs + cs/2
		}
		canvas.Polyline(xs, ys, "fill:none;stroke:#4299e1;stroke-width:2;opacity:0.7")
	}
}

func drawRooms(canvas *svg.SVG, a *dungeonstate.Artifact, opts SVGOptions, ox, oy int) {
	cs := opts.CellSize
	rooms := append([]dungeonstate.Room(nil), a.Rooms...)
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })

	for _, r := range rooms {
		color := "#48bb78"
		if r.Type == dungeonstate.RoomCavern {
			color = "#ed8936"
		}
		canvas.Rect(ox+r.X*cs, oy+r.Y*cs, r.Width*cs, r.Height*cs,
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", color))

		if opts.ShowLabels {
			canvas.Text(ox+r.CenterX*cs, oy+r.CenterY*cs, fmt.Sprintf("%d", r.ID),
				"text-anchor:middle;font-size:10px;fill:#e2e8f0;font-family:monospace")
		}
	}
}

func drawSpawns(canvas *svg.SVG, a *dungeonstate.Artifact, opts SVGOptions, ox, oy int) {
	cs := opts.CellSize
	for _, s := range a.Spawns {
		color := spawnColor(s.Tags)
		cx := ox + s.Position.X*cs + cs/2
		cy := oy + s.Position.Y*cs + cs/2
		canvas.Circle(cx, cy, cs/3, fmt.Sprintf("fill:%s;opacity:0.9", color))
	}
}

func spawnColor(tags []string) string {
	for _, t := range tags {
		switch t {
		case "enemy", "guardian":
			return "#f56565"
		case "trap":
			return "#9f7aea"
		case "decoration":
			return "#718096"
		case "loot", "rare":
			return "#ffd700"
		}
	}
	return "#cbd5e0"
}
