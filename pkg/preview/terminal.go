// Package preview shows a finished render in the terminal using half-block cells.
package preview

import (
	"context"
	"fmt"
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Frame is a render scaled to fit a terminal of Cols × Rows cells.
// Every cell covers two vertically stacked pixels.
type Frame struct {
	src        *image.RGBA
	Cols, Rows int
	scale      float64 // Source pixels per terminal pixel
	offX, offY int     // Letterbox margins in terminal pixels
}

// NewFrame fits img into cols × rows cells, keeping its aspect ratio
func NewFrame(img *renderer.Image, cols, rows int) *Frame {
	f := &Frame{src: img.ToRGBA(), Cols: max(cols, 1), Rows: max(rows, 1)}

	// Terminal pixels are one column wide and half a row tall
	pxW, pxH := f.Cols, f.Rows*2
	f.scale = max(float64(img.Width)/float64(pxW), float64(img.Height)/float64(pxH))
	if f.scale <= 0 {
		f.scale = 1
	}
	f.offX = (pxW - int(float64(img.Width)/f.scale)) / 2
	f.offY = (pxH - int(float64(img.Height)/f.scale)) / 2
	return f
}

// pixel returns the source color under terminal pixel (x, y); transparent outside the image
func (f *Frame) pixel(x, y int) color.RGBA {
	sx := int(float64(x-f.offX) * f.scale)
	sy := int(float64(y-f.offY) * f.scale)
	if x < f.offX || y < f.offY || !(image.Point{X: sx, Y: sy}).In(f.src.Bounds()) {
		return color.RGBA{}
	}
	return f.src.RGBAAt(sx, sy)
}

// CellColors returns the top and bottom pixel colors of a cell
func (f *Frame) CellColors(col, row int) (top, bottom color.RGBA) {
	return f.pixel(col, row*2), f.pixel(col, row*2+1)
}

// Draw paints the frame onto scr with ▀ cells, foreground on top and background below
func (f *Frame) Draw(scr uv.Screen) {
	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			top, bottom := f.CellColors(col, row)
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(top),
					Bg: rgbaToColor(bottom),
				},
			})
		}
	}
}

// rgbaToColor maps transparent pixels to the terminal default
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// Show displays img fullscreen until q, esc or ctrl+c is pressed or ctx is done
func Show(ctx context.Context, img *renderer.Image) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	draw := func(w, h int) error {
		term.Erase()
		NewFrame(img, w, h).Draw(term)
		return term.Display()
	}
	if err := draw(width, height); err != nil {
		return fmt.Errorf("draw preview: %w", err)
	}

	quit := make(chan struct{})
	resized := make(chan uv.WindowSizeEvent, 1)
	go func() {
		defer close(quit)
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case resized <- ev:
				default:
				}
			case uv.KeyPressEvent:
				if ev.MatchString("q") || ev.MatchString("escape") || ev.MatchString("ctrl+c") {
					return
				}
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-quit:
			return nil
		case ev := <-resized:
			term.Resize(ev.Width, ev.Height)
			if err := draw(ev.Width, ev.Height); err != nil {
				return fmt.Errorf("draw preview: %w", err)
			}
		}
	}
}
