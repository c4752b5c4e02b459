package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/pdrpinto/dijkstra"
)

// Palette colours each cell kind.
type Palette map[Kind]color.Color

// DefaultPalette matches the usual exploration plot: grey floor, red
// obstacles, green explored cells, blue route and a red marker.
var DefaultPalette = Palette{
	Free:     color.RGBA{125, 125, 125, 255},
	Visited:  color.RGBA{0, 255, 0, 255},
	Obstacle: color.RGBA{255, 0, 0, 255},
	Path:     color.RGBA{0, 0, 255, 255},
	Current:  color.RGBA{255, 0, 0, 255},
}

// PNGOptions controls frame output.
type PNGOptions struct {
	Scale      int    // pixels per cell, default 1
	HoldFrames int    // extra copies of the final frame
	Prefix     string // file name prefix, default "frame"
	Palette    Palette
}

// WritePNGs writes one PNG per route step (plus HoldFrames) into dir and
// returns the file paths in order. Row r is drawn at image y = r - Rows.Lo.
func WritePNGs(dir string, a *Animation, opts PNGOptions) ([]string, error) {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.Prefix == "" {
		opts.Prefix = "frame"
	}
	if opts.Palette == nil {
		opts.Palette = DefaultPalette
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frame dir: %w", err)
	}

	b := a.Bounds()
	width, height := b.Cols.Len()*opts.Scale, b.Rows.Len()*opts.Scale

	// trail accumulates everything that never disappears between frames
	trail := gg.NewContext(width, height)
	trail.SetColor(opts.Palette[Free])
	trail.Clear()
	trail.SetColor(opts.Palette[Obstacle])
	for r := b.Rows.Lo; r < b.Rows.Hi; r++ {
		for c := b.Cols.Lo; c < b.Cols.Hi; c++ {
			cell := dijkstra.Cell{Row: r, Col: c}
			if a.Blocked(cell) {
				fillCell(trail, b, cell, opts.Scale)
			}
		}
	}

	total := a.Len() + opts.HoldFrames
	paths := make([]string, 0, total)
	drawn := 0
	for i := 0; i < total; i++ {
		step := min(i, a.Len()-1)
		if i < a.Len() {
			visited := a.Frame(step)
			trail.SetColor(opts.Palette[Visited])
			for _, cell := range visited[drawn:] {
				if a.Kind(cell, step) == Visited {
					fillCell(trail, b, cell, opts.Scale)
				}
			}
			drawn = len(visited)
			if step > 0 {
				trail.SetColor(opts.Palette[Path])
				fillCell(trail, b, a.Route()[step-1], opts.Scale)
			}
		}

		frame := gg.NewContextForImage(trail.Image())
		current := a.Route()[step]
		frame.SetColor(opts.Palette[Current])
		x, y := cellOrigin(b, current, opts.Scale)
		radius := max(float64(opts.Scale)*2, 2)
		frame.DrawCircle(x+float64(opts.Scale)/2, y+float64(opts.Scale)/2, radius)
		frame.Fill()

		path := filepath.Join(dir, fmt.Sprintf("%s%05d.png", opts.Prefix, i))
		if err := frame.SavePNG(path); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func cellOrigin(b dijkstra.Bounds, c dijkstra.Cell, scale int) (float64, float64) {
	return float64((c.Col - b.Cols.Lo) * scale), float64((c.Row - b.Rows.Lo) * scale)
}

func fillCell(dc *gg.Context, b dijkstra.Bounds, c dijkstra.Cell, scale int) {
	if scale == 1 {
		dc.SetPixel(c.Col-b.Cols.Lo, c.Row-b.Rows.Lo)
		return
	}
	x, y := cellOrigin(b, c, scale)
	dc.DrawRectangle(x, y, float64(scale), float64(scale))
	dc.Fill()
}
