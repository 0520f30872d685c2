package palette

import (
	"image"
	"image/color"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Gradient samples width colours across len(stops)-1 equal sections. Each
// section blends from its stop towards the next; the final section lands
// exactly on the last stop and any rounding remainder repeats it.
func Gradient(stops []colorful.Color, width int) []color.NRGBA {
	if width <= 0 || len(stops) == 0 {
		return nil
	}
	if len(stops) == 1 {
		stops = []colorful.Color{stops[0], stops[0]}
	}
	out := make([]color.NRGBA, 0, width)
	sections := len(stops) - 1
	sectionWidth := width / sections

	if sectionWidth == 0 {
		// Fewer samples than sections: pick the nearest stop per sample.
		for i := 0; i < width; i++ {
			idx := sections
			if width > 1 {
				idx = (i*sections + (width-1)/2) / (width - 1)
			}
			out = append(out, toNRGBA(stops[idx]))
		}
		return out
	}

	for s := 0; s < sections; s++ {
		from, to := stops[s], stops[s+1]
		last := s == sections-1
		for j := 0; j < sectionWidth; j++ {
			var t float64
			switch {
			case last && sectionWidth > 1:
				t = float64(j) / float64(sectionWidth-1)
			case last:
				t = 1
			default:
				t = float64(j) / float64(sectionWidth)
			}
			out = append(out, toNRGBA(from.BlendRgb(to, t)))
		}
	}
	end := toNRGBA(stops[sections])
	for len(out) < width {
		out = append(out, end)
	}
	return out
}

// Texture replicates the gradient over every row of a width×width image so
// horizontal sampling sees the same ramp at any vertical coordinate.
func Texture(stops []colorful.Color, width int) *image.NRGBA {
	row := Gradient(stops, width)
	img := image.NewNRGBA(image.Rect(0, 0, len(row), len(row)))
	if len(row) == 0 {
		return img
	}
	line := make([]uint8, 0, 4*len(row))
	for _, c := range row {
		line = append(line, c.R, c.G, c.B, c.A)
	}
	for y := 0; y < len(row); y++ {
		copy(img.Pix[y*img.Stride:], line)
	}
	return img
}

// DefaultTextureWidth matches the side of the gradient texture handed to the
// rendering side.
const DefaultTextureWidth = 100

type cacheKey struct {
	id    ID
	width int
}

// Cache memoises textures per selector and width. Textures are pure
// functions of their key, so entries never need invalidation.
type Cache struct {
	mu       sync.Mutex
	textures map[cacheKey]*image.NRGBA
}

// NewCache returns an empty texture cache.
func NewCache() *Cache {
	return &Cache{textures: make(map[cacheKey]*image.NRGBA)}
}

// Texture returns the visible-stop gradient texture for id. The returned
// image is shared and must be treated as read-only.
func (c *Cache) Texture(id ID, width int) *image.NRGBA {
	if width <= 0 {
		width = DefaultTextureWidth
	}
	key := cacheKey{id: id, width: width}
	c.mu.Lock()
	defer c.mu.Unlock()
	if img, ok := c.textures[key]; ok {
		return img
	}
	img := Texture(id.VisibleStops(), width)
	c.textures[key] = img
	return img
}

// Len reports the number of cached textures.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.textures)
}
