package charts

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"gonum.org/v1/plot/palette/brewer"
)

// ErrUnknownScheme is returned by NewPalette for scheme names it cannot resolve.
var ErrUnknownScheme = errors.New("unknown color scheme")

// DefaultScheme is the 65 color scheme used unless configured otherwise.
const DefaultScheme = "mpn65"

// darkChannelSum is the R+G+B sum below which a color is inverted so that it
// stays legible on a dark background.
const darkChannelSum = 99

var mpn65 = []string{
	"ff0029", "377eb8", "66a61e", "984ea3", "00d2d5", "ff7f00", "af8d00", "7f80cd", "b3e900", "c42e60",
	"a65628", "f781bf", "8dd3c7", "bebada", "fb8072", "80b1d3", "fdb462", "fccde5", "bc80bd", "ffed6f",
	"c4eaff", "cf8c00", "1b9e77", "d95f02", "e7298a", "e6ab02", "a6761d", "0097ff", "00d067", "000000",
	"252525", "525252", "737373", "969696", "bdbdbd", "f43600", "4ba93b", "5779bb", "927acc", "97ee3f",
	"bf3947", "9f5b00", "f48758", "8caed6", "f2b94f", "eff26e", "e43872", "d9b100", "9d7a00", "698cff",
	"d9d9d9", "00d27e", "d06800", "009f82", "c49200", "cbe8ff", "fecddf", "c27eb6", "8cd2ce", "c4b8d9",
	"f883b0", "a49100", "f48800", "27d0df", "a04a9b",
}

// Palette hands out colors from a tiled base scheme. The generated sequence
// only ever grows, so ColorsFor(n) is always a prefix of ColorsFor(m) for n < m.
type Palette struct {
	mu     sync.Mutex
	scheme string
	base   []string
	colors []string
}

// NewPalette returns a palette for scheme: "mpn65" or a ColorBrewer
// qualitative scheme such as "cb-Set1" (the "cb-" prefix is optional).
func NewPalette(scheme string) (*Palette, error) {
	scheme = strings.TrimSpace(scheme)
	if scheme == "" || strings.EqualFold(scheme, DefaultScheme) {
		return &Palette{scheme: DefaultScheme, base: mpn65}, nil
	}
	base, err := brewerScheme(strings.TrimPrefix(scheme, "cb-"))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownScheme, scheme, err)
	}
	return &Palette{scheme: scheme, base: base}, nil
}

// DefaultPalette returns an mpn65 palette.
func DefaultPalette() *Palette {
	p, _ := NewPalette(DefaultScheme)
	return p
}

// Scheme returns the scheme name the palette was built from.
func (p *Palette) Scheme() string { return p.scheme }

// ColorsFor returns n "#rrggbb" colors.
func (p *Palette) ColorsFor(n int) []string {
	if n <= 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensure(n)
	out := make([]string, n)
	copy(out, p.colors[:n])
	return out
}

// ensure grows the color buffer to at least n entries.
func (p *Palette) ensure(n int) {
	for len(p.colors) < n {
		hex := p.base[len(p.colors)%len(p.base)]
		p.colors = append(p.colors, "#"+legible(hex))
	}
}

// legible inverts colors that are too dark for a dark background.
func legible(hex string) string {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return hex
	}
	if r+g+b < darkChannelSum {
		return fmt.Sprintf("%02x%02x%02x", 255-r, 255-g, 255-b)
	}
	return hex
}

// ChannelSum returns R+G+B of a "#rrggbb" or "rrggbb" color, 0 when unparsable.
func ChannelSum(hex string) int {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return 0
	}
	return r + g + b
}

// ParseColor converts "#rrggbb" into a color.RGBA.
func ParseColor(hex string) (color.RGBA, error) {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, nil
}

func parseHex(hex string) (r, g, b int, err error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("bad color %q", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad color %q: %w", hex, err)
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), nil
}

// brewerScheme returns the largest variant of a qualitative ColorBrewer scheme.
func brewerScheme(name string) ([]string, error) {
	var lastErr error
	for n := 12; n >= 3; n-- {
		pal, err := brewer.GetPalette(brewer.TypeQualitative, name, n)
		if err != nil {
			lastErr = err
			continue
		}
		cols := pal.Colors()
		out := make([]string, 0, len(cols))
		for _, c := range cols {
			r, g, b, _ := c.RGBA()
			out = append(out, fmt.Sprintf("%02x%02x%02x", r>>8, g>>8, b>>8))
		}
		return out, nil
	}
	return nil, lastErr
}
