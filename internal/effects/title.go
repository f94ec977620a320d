package effects

import "fmt"

// TitleChain builds the filter chain for the whole-video caption variant:
// a title across the top of the frame and an optional smaller subtitle line
// beneath it. Distinct from the per-segment Subtitle overlay, which sits at
// the bottom of one clip.
func TitleChain(title, subtitle string, res Resolution, font string, boxAlpha float64) []string {
	if title == "" && subtitle == "" {
		return nil
	}
	if font == "" {
		font = "Arial"
	}
	if boxAlpha <= 0 || boxAlpha > 1 {
		boxAlpha = 0.5
	}

	c := NewChain()
	y := res.Height / 12

	if title != "" {
		size := res.Height / 15
		if size < 16 {
			size = 16
		}
		lineHeight := size + size/3
		for _, line := range WrapText(title, maxLineChars(res.Width, size)) {
			c.Add(fmt.Sprintf(
				"drawtext=font='%s':text='%s':fontsize=%d:fontcolor=white:box=1:boxcolor=black@%.2f:boxborderw=%d:x=(w-text_w)/2:y=%d",
				EscapeText(font), EscapeText(line), size, boxAlpha, size/4, y))
			y += lineHeight
		}
		y += lineHeight / 2
	}

	if subtitle != "" {
		size := res.Height / 25
		if size < 12 {
			size = 12
		}
		lineHeight := size + size/3
		for _, line := range WrapText(subtitle, maxLineChars(res.Width, size)) {
			c.Add(fmt.Sprintf(
				"drawtext=font='%s':text='%s':fontsize=%d:fontcolor=white:box=1:boxcolor=black@%.2f:boxborderw=%d:x=(w-text_w)/2:y=%d",
				EscapeText(font), EscapeText(line), size, boxAlpha, size/4, y))
			y += lineHeight
		}
	}

	return c.Build()
}
