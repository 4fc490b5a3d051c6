// internal/sharecard/card.go
//
// Share card rendering.
// Produces the fixed 1200x630 PNG a player posts after a game:
//   - solid #1e90ff background,
//   - centred white text: title, "{username} scored {score}!", tagline.
//
// Drawing goes straight through a go-chart raster Renderer; there is no chart
// on the card, only text.

package sharecard

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	Width       = 1200
	Height      = 630
	ContentType = "image/png"

	Title           = "Globetrotter Challenge"
	Tagline         = "Join the fun!"
	DefaultUsername = "Player"

	// dpi makes font sizes map 1:1 to pixels.
	dpi         = 72
	sideMargin  = 60
	lineSpacing = 20
)

var background = drawing.ColorFromHex("1e90ff")

// RenderUnavailableError means the font or raster backend could not be used.
type RenderUnavailableError struct {
	Cause error
}

func (e *RenderUnavailableError) Error() string {
	return fmt.Sprintf("share card renderer unavailable: %v", e.Cause)
}

func (e *RenderUnavailableError) Unwrap() error { return e.Cause }

// FontSource yields the face used for all card text.
type FontSource func() (*truetype.Font, error)

// DefaultFont is the Roboto face bundled with go-chart.
func DefaultFont() FontSource { return chart.GetDefaultFont }

// FileFont parses the TTF at path on first use and reuses it afterwards.
func FileFont(path string) FontSource {
	return sync.OnceValues(func() (*truetype.Font, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", path, err)
		}
		return f, nil
	})
}

// Renderer draws share cards. It is safe for concurrent use.
type Renderer struct {
	fonts FontSource
}

// NewRenderer returns a Renderer using fonts. A nil source means DefaultFont.
func NewRenderer(fonts FontSource) *Renderer {
	if fonts == nil {
		fonts = DefaultFont()
	}
	return &Renderer{fonts: fonts}
}

type line struct {
	text string
	size float64
}

// Render encodes the card for username and score as PNG.
// Blank usernames become DefaultUsername and negative scores 0.
func (r *Renderer) Render(username string, score int) ([]byte, error) {
	font, err := r.fonts()
	if err != nil {
		return nil, &RenderUnavailableError{Cause: err}
	}
	if font == nil {
		return nil, &RenderUnavailableError{Cause: fmt.Errorf("no font loaded")}
	}
	rr, err := chart.PNG(Width, Height)
	if err != nil {
		return nil, &RenderUnavailableError{Cause: err}
	}
	rr.SetDPI(dpi)

	rr.SetFillColor(background)
	rr.MoveTo(0, 0)
	rr.LineTo(Width, 0)
	rr.LineTo(Width, Height)
	rr.LineTo(0, Height)
	rr.Close()
	rr.Fill()

	rr.SetFont(font)
	rr.SetFontColor(drawing.ColorWhite)

	lines := []line{
		{Title, 60},
		{Message(username, score), 40},
		{Tagline, 30},
	}
	for i := range lines {
		lines[i].size = fitSize(rr, lines[i].text, lines[i].size)
	}

	block := float64(lineSpacing * (len(lines) - 1))
	for _, l := range lines {
		block += l.size
	}
	y := (float64(Height) - block) / 2
	for _, l := range lines {
		y += l.size
		rr.SetFontSize(l.size)
		w := rr.MeasureText(l.text).Width()
		rr.Text(l.text, (Width-w)/2, int(y))
		y += lineSpacing
	}

	var buf bytes.Buffer
	if err := rr.Save(&buf); err != nil {
		return nil, fmt.Errorf("encode share card: %w", err)
	}
	return buf.Bytes(), nil
}

// fitSize shrinks size until text fits between the side margins.
func fitSize(rr chart.Renderer, text string, size float64) float64 {
	for ; size > 12; size -= 2 {
		rr.SetFontSize(size)
		if rr.MeasureText(text).Width() <= Width-2*sideMargin {
			break
		}
	}
	return size
}

// Message is the card's middle line.
func Message(username string, score int) string {
	if score < 0 {
		score = 0
	}
	return fmt.Sprintf("%s scored %d!", NormalizeUsername(username), score)
}

// NormalizeUsername trims username and substitutes DefaultUsername when blank.
func NormalizeUsername(username string) string {
	if u := strings.TrimSpace(username); u != "" {
		return u
	}
	return DefaultUsername
}

// ParseScore reads a score query value. Missing, malformed and negative
// values all become 0.
func ParseScore(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
