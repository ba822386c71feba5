// Command ggdraw draws a scripted whiteboard session and saves the current
// page as a PNG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/ggdraw"
	"github.com/gogpu/ggdraw/render"
	"github.com/gogpu/ggdraw/stroke"
)

const (
	red   = 0xff3030ff
	green = 0xff30c030
	blue  = 0xffff5030
	black = 0xff000000
)

type config struct {
	width, height int
	output        string
	key           string
	page          int
}

func main() {
	var (
		cfg     config
		verbose = flag.Bool("v", false, "log engine activity")
	)
	flag.IntVar(&cfg.width, "width", 800, "canvas width")
	flag.IntVar(&cfg.height, "height", 600, "canvas height")
	flag.StringVar(&cfg.output, "output", "board.png", "output file")
	flag.StringVar(&cfg.key, "key", "demo", "key whose pages are drawn")
	flag.IntVar(&cfg.page, "page", 0, "page to draw on")
	flag.Parse()

	if *verbose {
		ggdraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(cfg); err != nil {
		log.Fatalf("ggdraw: %v", err)
	}
	log.Printf("Page %d of %q saved to %s (%dx%d)\n", cfg.page, cfg.key, cfg.output, cfg.width, cfg.height)
}

// run draws the session and writes the PNG. The source is always closed.
func run(cfg config) (err error) {
	dev := render.NewSoftwareDevice()
	src, err := ggdraw.New(ggdraw.WithDevice(dev), ggdraw.WithCanvasSize(cfg.width, cfg.height))
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}
	defer func() {
		err = errors.Join(err, src.Close())
	}()

	if !src.OnPageChangeRequest(&cfg.key, cfg.page) {
		return fmt.Errorf("select %q page %d", cfg.key, cfg.page)
	}

	p := &player{src: src}
	p.shapes(cfg.width, cfg.height)
	p.spiral(cfg.width/2, cfg.height/2, min(cfg.width, cfg.height)/3)
	if p.err == nil {
		p.err = src.OnTextComposite(20, 20, "ggdraw", black)
	}
	p.release(stroke.ToolText, 0, 0)
	if p.err != nil {
		return fmt.Errorf("draw: %w", p.err)
	}

	return save(src, dev, cfg.output)
}

// player sends scripted pointer events and keeps the first error.
type player struct {
	src *ggdraw.Source
	err error
}

func (p *player) shapes(w, h int) {
	p.drag(stroke.ToolRect, red, 4, w/8, h/8, w*3/8, h*3/8)
	p.drag(stroke.ToolCircle, green, 3, w*5/8, h/8, w*7/8, h/4)
	p.drag(stroke.ToolLine, blue, 5, w/8, h*7/8, w*7/8, h*7/8)
}

// drag presses at (x0, y0), moves in a few steps to (x1, y1) and releases.
func (p *player) drag(tool stroke.Tool, color uint32, size, x0, y0, x1, y1 int) {
	p.send(ggdraw.PointerEvent{X: x0, Y: y0, Pressed: true, Tool: tool, Color: color, Size: size})
	const steps = 8
	for i := 1; i <= steps; i++ {
		x := x0 + (x1-x0)*i/steps
		y := y0 + (y1-y0)*i/steps
		p.send(ggdraw.PointerEvent{X: x, Y: y, Moving: true, Tool: tool, Color: color})
	}
	p.release(tool, x1, y1)
}

func (p *player) spiral(cx, cy, r int) {
	const turns, samples = 3, 240
	for i := 0; i <= samples; i++ {
		t := float64(i) / samples
		a := t * turns * 2 * math.Pi
		x := cx + int(float64(r)*t*math.Cos(a))
		y := cy + int(float64(r)*t*math.Sin(a))
		ev := ggdraw.PointerEvent{X: x, Y: y, Tool: stroke.ToolPen, Color: black}
		if i == 0 {
			ev.Pressed, ev.Size = true, 2
		} else {
			ev.Moving = true
		}
		p.send(ev)
	}
	p.release(stroke.ToolPen, cx+r, cy)
}

func (p *player) release(tool stroke.Tool, x, y int) {
	p.send(ggdraw.PointerEvent{X: x, Y: y, Released: true, Tool: tool})
}

func (p *player) send(ev ggdraw.PointerEvent) {
	if p.err != nil {
		return
	}
	p.err = p.src.OnPointerEvent(ev)
}

func save(src *ggdraw.Source, dev *render.SoftwareDevice, path string) error {
	var out render.RenderTarget
	err := render.WithGraphics(dev, func() error {
		var err error
		out, err = dev.CreateRenderTarget(render.DefaultFormat, 0, 0)
		return err
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = render.WithGraphics(dev, func() error {
			out.Destroy()
			return nil
		})
	}()

	if err := src.Render(out); err != nil {
		return err
	}
	img, err := dev.ReadPixels(out.Texture())
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
