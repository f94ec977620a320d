package effects

import (
	"fmt"
	"math"
	"strings"
)

// Resolution is the target frame size applied to every segment.
type Resolution struct {
	Width  int `yaml:"width" json:"width" validate:"required,min=16,max=7680"`
	Height int `yaml:"height" json:"height" validate:"required,min=16,max=4320"`
}

// KenBurnsDirection selects the pan direction of the slow zoom.
type KenBurnsDirection string

const (
	KenBurnsOff         KenBurnsDirection = ""
	KenBurnsLeftToRight KenBurnsDirection = "left-to-right"
	KenBurnsRightToLeft KenBurnsDirection = "right-to-left"
	KenBurnsTopToBottom KenBurnsDirection = "top-to-bottom"
	KenBurnsBottomToTop KenBurnsDirection = "bottom-to-top"
)

// CropBox is an optional crop applied after color adjustment.
type CropBox struct {
	Width  int `yaml:"width" json:"width" validate:"min=1"`
	Height int `yaml:"height" json:"height" validate:"min=1"`
	X      int `yaml:"x" json:"x" validate:"min=0"`
	Y      int `yaml:"y" json:"y" validate:"min=0"`
}

// Effects holds the declarative per-segment edit options. Zero values mean
// the corresponding operation is skipped.
type Effects struct {
	Brightness float64           `yaml:"brightness" json:"brightness" validate:"gte=-1,lte=1"`
	Contrast   float64           `yaml:"contrast" json:"contrast" validate:"gte=0,lte=4"`
	Crop       *CropBox          `yaml:"crop" json:"crop,omitempty"`
	RotateDeg  float64           `yaml:"rotate_deg" json:"rotate_deg"`
	BlurRadius int               `yaml:"blur_radius" json:"blur_radius" validate:"gte=0,lte=64"`
	KenBurns   KenBurnsDirection `yaml:"ken_burns" json:"ken_burns" validate:"omitempty,oneof=left-to-right right-to-left top-to-bottom bottom-to-top"`
	FadeIn     bool              `yaml:"fade_in" json:"fade_in"`
	FadeOut    bool              `yaml:"fade_out" json:"fade_out"`
	Subtitle   string            `yaml:"subtitle" json:"subtitle"`
}

// PlanConfig holds the knobs shared by every segment plan.
type PlanConfig struct {
	FPS        int
	FadeWindow float64 // seconds, nominal fade-in/out length
	MaxZoom    float64 // Ken Burns peak zoom factor
	FillColor  string  // pad color behind letterboxed images
	FontName   string
	BoxAlpha   float64 // subtitle backing box opacity
}

// DefaultPlanConfig matches the shared encoding profile.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{
		FPS:        30,
		FadeWindow: 1.0,
		MaxZoom:    1.04,
		FillColor:  "black",
		FontName:   "Arial",
		BoxAlpha:   0.5,
	}
}

// Plan compiles one segment's edit options into an ordered filter chain.
// It is pure: identical inputs always produce the identical chain, and the
// operation order below is load-bearing because ffmpeg filters compose
// left to right.
func Plan(e Effects, res Resolution, animated bool, duration float64, cfg PlanConfig) []string {
	c := NewChain()

	// 1. Fit and letterbox to the exact target frame.
	c.ScalePad(res.Width, res.Height, cfg.FillColor)

	// 2. Color adjustment.
	c.Eq(e.Brightness, e.Contrast)

	// 3. Optional crop.
	if e.Crop != nil {
		c.Crop(e.Crop.Width, e.Crop.Height, e.Crop.X, e.Crop.Y)
	}

	// 4. Rotation.
	c.Rotate(e.RotateDeg)

	// 5. Blur.
	c.Blur(e.BlurRadius)

	// 6. Ken Burns. Animated inputs already move; the zoompan would freeze
	// them on the first frame, so the effect is silently skipped.
	if e.KenBurns != KenBurnsOff && !animated {
		c.KenBurns(e.KenBurns, res, cfg.FPS, duration, cfg.MaxZoom)
	}

	// 7. Fades, clamped so the windows never overlap on short clips.
	c.Fade(e.FadeIn, e.FadeOut, duration, cfg.FadeWindow)

	// 8. Per-segment subtitle overlay.
	if e.Subtitle != "" {
		c.Subtitle(e.Subtitle, res, cfg.FontName, cfg.BoxAlpha)
	}

	return c.Build()
}

// Chain accumulates filter expressions in application order.
type Chain struct {
	filters []string
}

// NewChain creates an empty filter chain
func NewChain() *Chain {
	return &Chain{filters: make([]string, 0, 8)}
}

// Add appends a raw filter expression
func (c *Chain) Add(filter string) *Chain {
	c.filters = append(c.filters, filter)
	return c
}

// ScalePad scales to fit within width x height preserving aspect ratio, then
// centers the image on a solid fill.
func (c *Chain) ScalePad(width, height int, fill string) *Chain {
	if width <= 0 || height <= 0 {
		return c
	}
	if fill == "" {
		fill = "black"
	}
	c.filters = append(c.filters,
		fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", width, height),
		fmt.Sprintf("pad=%d:%d:(ow-iw)/2:(oh-ih)/2:%s", width, height, fill))
	return c
}

// Eq applies brightness offset and contrast multiplier; identity values are skipped.
func (c *Chain) Eq(brightness, contrast float64) *Chain {
	if contrast == 0 {
		contrast = 1
	}
	if brightness == 0 && contrast == 1 {
		return c
	}
	c.filters = append(c.filters,
		fmt.Sprintf("eq=brightness=%.3f:contrast=%.3f", brightness, contrast))
	return c
}

// Crop adds a crop filter
func (c *Chain) Crop(width, height, x, y int) *Chain {
	if width <= 0 || height <= 0 {
		return c
	}
	c.filters = append(c.filters, fmt.Sprintf("crop=%d:%d:%d:%d", width, height, x, y))
	return c
}

// Rotate rotates by degrees, filling exposed corners with black.
func (c *Chain) Rotate(degrees float64) *Chain {
	if degrees == 0 {
		return c
	}
	radians := degrees * math.Pi / 180
	c.filters = append(c.filters, fmt.Sprintf("rotate=%.6f:fillcolor=black", radians))
	return c
}

// Blur adds a box blur of the given radius
func (c *Chain) Blur(radius int) *Chain {
	if radius <= 0 {
		return c
	}
	c.filters = append(c.filters, fmt.Sprintf("boxblur=%d", radius))
	return c
}

// KenBurns produces a slow linear zoom toward maxZoom with a directional pan
// proportional to zoom progress. The expressions are driven by the output
// frame number, so identical inputs render identical motion.
func (c *Chain) KenBurns(dir KenBurnsDirection, res Resolution, fps int, duration, maxZoom float64) *Chain {
	if fps <= 0 {
		fps = 30
	}
	if maxZoom <= 1 {
		maxZoom = 1.04
	}
	frames := int(duration * float64(fps))
	if frames < 2 {
		return c
	}
	last := frames - 1

	zoomExpr := fmt.Sprintf("min(1+%.6f*on/%d\\,%.4f)", maxZoom-1, last, maxZoom)
	progress := fmt.Sprintf("on/%d", last)

	var xExpr, yExpr string
	switch dir {
	case KenBurnsLeftToRight:
		xExpr = fmt.Sprintf("(iw-iw/zoom)*(%s)", progress)
		yExpr = "(ih-ih/zoom)/2"
	case KenBurnsRightToLeft:
		xExpr = fmt.Sprintf("(iw-iw/zoom)*(1-%s)", progress)
		yExpr = "(ih-ih/zoom)/2"
	case KenBurnsTopToBottom:
		xExpr = "(iw-iw/zoom)/2"
		yExpr = fmt.Sprintf("(ih-ih/zoom)*(%s)", progress)
	case KenBurnsBottomToTop:
		xExpr = "(iw-iw/zoom)/2"
		yExpr = fmt.Sprintf("(ih-ih/zoom)*(1-%s)", progress)
	default:
		return c
	}

	// Upscale before zoompan to keep sub-pixel motion smooth, exactly the
	// trick still-image slideshows use.
	c.filters = append(c.filters,
		fmt.Sprintf("scale=%d:%d", res.Width*2, res.Height*2),
		fmt.Sprintf("zoompan=z='%s':x='%s':y='%s':d=1:s=%dx%d:fps=%d",
			zoomExpr, xExpr, yExpr, res.Width, res.Height, fps))
	return c
}

// Fade adds fade-in at the start and fade-out at the end. The nominal window
// is clamped to half the clip duration so the two fades never overlap.
func (c *Chain) Fade(fadeIn, fadeOut bool, duration, window float64) *Chain {
	if window <= 0 || duration <= 0 {
		return c
	}
	w := math.Min(window, duration/2)
	if fadeIn {
		c.filters = append(c.filters, fmt.Sprintf("fade=t=in:st=0:d=%.3f", w))
	}
	if fadeOut {
		c.filters = append(c.filters, fmt.Sprintf("fade=t=out:st=%.3f:d=%.3f", duration-w, w))
	}
	return c
}

// Subtitle renders word-wrapped caption text near the bottom of the frame,
// centered, over a semi-opaque box. One drawtext per wrapped line.
func (c *Chain) Subtitle(text string, res Resolution, font string, boxAlpha float64) *Chain {
	if text == "" {
		return c
	}
	if font == "" {
		font = "Arial"
	}
	if boxAlpha <= 0 || boxAlpha > 1 {
		boxAlpha = 0.5
	}

	fontSize := res.Height / 20
	if fontSize < 12 {
		fontSize = 12
	}
	lineHeight := fontSize + fontSize/3
	margin := res.Height / 24

	lines := WrapText(text, maxLineChars(res.Width, fontSize))

	// Cap the block to what fits above the bottom margin; extra lines would
	// land off-frame with negative y.
	maxLines := (res.Height - margin) / lineHeight
	if maxLines < 1 {
		maxLines = 1
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	for i, line := range lines {
		y := res.Height - margin - (len(lines)-i)*lineHeight
		c.filters = append(c.filters, fmt.Sprintf(
			"drawtext=font='%s':text='%s':fontsize=%d:fontcolor=white:box=1:boxcolor=black@%.2f:boxborderw=%d:x=(w-text_w)/2:y=%d",
			EscapeText(font), EscapeText(line), fontSize, boxAlpha, fontSize/4, y))
	}
	return c
}

// Build returns the accumulated filters in order
func (c *Chain) Build() []string {
	return c.filters
}

// String joins the chain into a single -vf expression
func (c *Chain) String() string {
	return strings.Join(c.filters, ",")
}

// maxLineChars estimates how many characters of the subtitle font fit the
// frame width, leaving a small margin on each side.
func maxLineChars(width, fontSize int) int {
	charWidth := float64(fontSize) * 0.55
	usable := float64(width) * 0.9
	n := int(usable / charWidth)
	if n < 8 {
		n = 8
	}
	return n
}
