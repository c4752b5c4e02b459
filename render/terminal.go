package render

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pdrpinto/dijkstra"
)

// Canvas is the subset of tcell.Screen the terminal renderer draws on.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
	Show()
}

var _ Canvas = tcell.Screen(nil)

var kindGlyphs = [...]struct {
	r     rune
	style tcell.Style
}{
	Free:     {' ', tcell.StyleDefault},
	Visited:  {'·', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
	Obstacle: {'█', tcell.StyleDefault.Foreground(tcell.ColorRed)},
	Path:     {'•', tcell.StyleDefault.Foreground(tcell.ColorBlue)},
	Current:  {'@', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
}

// Terminal animates search frames on a character canvas. Large grids are
// downsampled: each character covers a block of cells and shows the
// highest-priority Kind inside it.
type Terminal struct {
	Canvas Canvas
	Delay  time.Duration
}

// blockSize returns how many grid cells one character spans on each axis.
func (t *Terminal) blockSize(b dijkstra.Bounds) (rowsPer, colsPer int) {
	w, h := t.Canvas.Size()
	w, h = max(w, 1), max(h-1, 1) // last line is the status bar
	rowsPer = (b.Rows.Len() + h - 1) / h
	colsPer = (b.Cols.Len() + w - 1) / w
	return max(rowsPer, 1), max(colsPer, 1)
}

// DrawFrame renders frame i and shows it. Row Lo is drawn at the bottom so
// "up" moves go up the screen.
func (t *Terminal) DrawFrame(a *Animation, i int) {
	b := a.Bounds()
	rowsPer, colsPer := t.blockSize(b)
	screenRows := (b.Rows.Len() + rowsPer - 1) / rowsPer
	screenCols := (b.Cols.Len() + colsPer - 1) / colsPer

	for sy := 0; sy < screenRows; sy++ {
		for sx := 0; sx < screenCols; sx++ {
			kind := Free
			r0 := b.Rows.Lo + sy*rowsPer
			c0 := b.Cols.Lo + sx*colsPer
			for r := r0; r < min(r0+rowsPer, b.Rows.Hi); r++ {
				for c := c0; c < min(c0+colsPer, b.Cols.Hi); c++ {
					kind = max(kind, a.Kind(dijkstra.Cell{Row: r, Col: c}, i))
				}
			}
			glyph := kindGlyphs[kind]
			t.Canvas.SetContent(sx, screenRows-1-sy, glyph.r, nil, glyph.style)
		}
	}
	t.drawStatus(a, i, screenRows)
	t.Canvas.Show()
}

func (t *Terminal) drawStatus(a *Animation, i, y int) {
	cur := a.Route()[i]
	status := []rune(fmt.Sprintf(" step %d/%d  at %s  discovered %d  q: quit ",
		i, a.Len()-1, cur, len(a.Frame(i))))
	w, _ := t.Canvas.Size()
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(status) {
			r = status[x]
		}
		t.Canvas.SetContent(x, y, r, nil, tcell.StyleDefault.Reverse(true))
	}
}

// Play draws every frame with Delay between them. It returns ctx.Err() if
// cancelled before the last frame.
func (t *Terminal) Play(ctx context.Context, a *Animation) error {
	ticker := time.NewTicker(max(t.Delay, time.Millisecond))
	defer ticker.Stop()
	for i := 0; i < a.Len(); i++ {
		t.DrawFrame(a, i)
		if i == a.Len()-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
