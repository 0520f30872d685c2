package palette

import (
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func luminance(c color.NRGBA) int { return int(c.R) + int(c.G) + int(c.B) }

func TestGradientBlackToWhite(t *testing.T) {
	stops := []colorful.Color{HexOrFallback("#000000"), HexOrFallback("#ffffff")}
	g := Gradient(stops, 10)
	if len(g) != 10 {
		t.Fatalf("expected 10 samples, got %d", len(g))
	}
	black := color.NRGBA{A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if g[0] != black {
		t.Fatalf("sample[0] = %v, want black", g[0])
	}
	if g[9] != white {
		t.Fatalf("sample[9] = %v, want white", g[9])
	}
	for i := 1; i < len(g); i++ {
		if luminance(g[i]) <= luminance(g[i-1]) {
			t.Fatalf("luminance not increasing at %d: %v then %v", i, g[i-1], g[i])
		}
	}
}

func TestGradientPadsRemainderWithLastStop(t *testing.T) {
	stops := []colorful.Color{HexOrFallback("#ff0000"), HexOrFallback("#00ff00"), HexOrFallback("#0000ff")}
	g := Gradient(stops, 7)
	if len(g) != 7 {
		t.Fatalf("expected 7 samples, got %d", len(g))
	}
	blue := color.NRGBA{B: 255, A: 255}
	if g[6] != blue || g[5] != blue {
		t.Fatalf("tail not padded with last stop: %v", g[4:])
	}
}

func TestGradientNarrowerThanSections(t *testing.T) {
	stops := Borkfest.Stops()
	g := Gradient(stops, 3)
	if len(g) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(g))
	}
	if g[0] != toNRGBA(stops[0]) || g[2] != toNRGBA(stops[len(stops)-1]) {
		t.Fatalf("degenerate gradient endpoints wrong: %v", g)
	}
	if Gradient(stops, 0) != nil {
		t.Fatal("zero width must produce no samples")
	}
	if got := Gradient(stops[:1], 4); len(got) != 4 {
		t.Fatalf("single stop gradient length %d", len(got))
	}
}

func TestTextureEndpointsMatchVisibleStops(t *testing.T) {
	for _, id := range All() {
		visible := id.VisibleStops()
		img := Texture(visible, 64)
		if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
			t.Fatalf("%s texture is %v", id, img.Bounds())
		}
		first := toNRGBA(visible[0])
		last := toNRGBA(visible[len(visible)-1])
		for _, y := range []int{0, 31, 63} {
			if got := img.NRGBAAt(0, y); got != first {
				t.Fatalf("%s row %d sample 0 = %v, want %v", id, y, got, first)
			}
			if got := img.NRGBAAt(63, y); got != last {
				t.Fatalf("%s row %d sample 63 = %v, want %v", id, y, got, last)
			}
		}
	}
}

func TestCacheReusesTextures(t *testing.T) {
	c := NewCache()
	a := c.Texture(Slso8, 32)
	b := c.Texture(Slso8, 32)
	if a != b {
		t.Fatal("expected cached texture to be reused")
	}
	c.Texture(Ammo8, 32)
	if c.Len() != 2 {
		t.Fatalf("expected 2 cached textures, got %d", c.Len())
	}
}
