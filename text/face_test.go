package text

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestDefaultSource(t *testing.T) {
	a, err := DefaultSource()
	if err != nil {
		t.Fatalf("DefaultSource() error = %v", err)
	}
	b, _ := DefaultSource()
	if a != b {
		t.Error("DefaultSource() should return the shared source")
	}
	if a.Name() == "" {
		t.Error("Name() should not be empty")
	}
}

func TestNewFontSourceErrors(t *testing.T) {
	if _, err := NewFontSource(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewFontSource(nil) error = %v, want ErrEmptyFontData", err)
	}
	if _, err := NewFontSource([]byte("not a font")); err == nil {
		t.Error("NewFontSource(garbage) should fail")
	}
	if _, err := NewFontSource(goregular.TTF); err != nil {
		t.Errorf("NewFontSource(goregular) error = %v", err)
	}
}

func TestFaceSize(t *testing.T) {
	src, err := DefaultSource()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := src.Face(0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Face(0) error = %v, want ErrInvalidSize", err)
	}

	face, err := src.Face(24)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()
	if face.Size() != 24 {
		t.Errorf("Size() = %v, want 24", face.Size())
	}
	ascent, descent := face.Metrics()
	if ascent <= 0 || descent <= 0 {
		t.Errorf("Metrics() = (%d, %d), want positive", ascent, descent)
	}
}

func TestMeasure(t *testing.T) {
	src, _ := DefaultSource()
	face, err := src.Face(20)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()

	if w, h := face.Measure(""); w != 0 || h != 0 {
		t.Errorf("Measure(\"\") = (%d, %d), want (0, 0)", w, h)
	}
	w1, h1 := face.Measure("Hi")
	w2, h2 := face.Measure("Hi there")
	if w1 <= 0 || h1 <= 0 {
		t.Errorf("Measure(\"Hi\") = (%d, %d), want positive", w1, h1)
	}
	if w2 <= w1 {
		t.Errorf("longer text should be wider: %d <= %d", w2, w1)
	}
	if h1 != h2 {
		t.Errorf("line height differs: %d != %d", h1, h2)
	}
}

func TestDraw(t *testing.T) {
	src, _ := DefaultSource()
	face, err := src.Face(32)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()

	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	if r := face.Draw(img, 10, 20, "", color.Black); !r.Empty() {
		t.Errorf("Draw(\"\") touched %v", r)
	}

	r := face.Draw(img, 10, 20, "Ink", color.NRGBA{R: 255, A: 255})
	if r.Empty() {
		t.Fatal("Draw returned empty bounds")
	}
	if r.Min.X < 10 || r.Min.Y < 20 {
		t.Errorf("bounds %v start before the requested corner", r)
	}

	loose := r.Inset(-1)
	inked := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			if img.RGBAAt(x, y).A == 0 {
				continue
			}
			inked++
			if !(image.Point{X: x, Y: y}).In(loose) {
				t.Fatalf("pixel (%d, %d) outside reported bounds %v", x, y, r)
			}
		}
	}
	if inked == 0 {
		t.Error("Draw produced no pixels")
	}
}

func TestShapeClusters(t *testing.T) {
	src, _ := DefaultSource()
	runes := []rune("AV To")
	clusters, adv := shape(src.shaper, runes, 24)
	if len(clusters) == 0 {
		t.Fatal("shape returned no clusters")
	}
	if clusters[0].start != 0 || clusters[len(clusters)-1].end != len(runes) {
		t.Errorf("clusters %v do not cover the text", clusters)
	}
	for i := 1; i < len(clusters); i++ {
		if clusters[i].start != clusters[i-1].end {
			t.Errorf("cluster %d starts at %d, previous ends at %d", i, clusters[i].start, clusters[i-1].end)
		}
		if clusters[i].x < clusters[i-1].x {
			t.Errorf("cluster %d placed left of cluster %d", i, i-1)
		}
	}
	if adv <= clusters[len(clusters)-1].x {
		t.Errorf("advance %v does not pass the last cluster at %v", adv, clusters[len(clusters)-1].x)
	}

	if c, adv := shape(src.shaper, nil, 24); c != nil || adv != 0 {
		t.Errorf("shape(nil) = (%v, %v), want empty", c, adv)
	}
}
