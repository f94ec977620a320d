package effects

import (
	"reflect"
	"strings"
	"testing"
)

var testRes = Resolution{Width: 1280, Height: 720}

func TestPlanBaseChain(t *testing.T) {
	chain := Plan(Effects{}, testRes, false, 5, DefaultPlanConfig())

	expected := []string{
		"scale=1280:720:force_original_aspect_ratio=decrease",
		"pad=1280:720:(ow-iw)/2:(oh-ih)/2:black",
	}
	if !reflect.DeepEqual(chain, expected) {
		t.Errorf("expected %v, got %v", expected, chain)
	}
}

func TestPlanIsDeterministic(t *testing.T) {
	e := Effects{
		Brightness: 0.1,
		Contrast:   1.2,
		RotateDeg:  3,
		BlurRadius: 2,
		KenBurns:   KenBurnsLeftToRight,
		FadeIn:     true,
		FadeOut:    true,
		Subtitle:   "the quick brown fox jumps over the lazy dog",
	}

	first := Plan(e, testRes, false, 6.5, DefaultPlanConfig())
	second := Plan(e, testRes, false, 6.5, DefaultPlanConfig())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("plan is not deterministic:\n%v\n%v", first, second)
	}
}

func TestPlanOperationOrder(t *testing.T) {
	e := Effects{
		Brightness: 0.1,
		Crop:       &CropBox{Width: 640, Height: 360, X: 10, Y: 10},
		RotateDeg:  5,
		BlurRadius: 3,
		KenBurns:   KenBurnsTopToBottom,
		FadeIn:     true,
		Subtitle:   "hello",
	}

	chain := Plan(e, testRes, false, 5, DefaultPlanConfig())
	joined := strings.Join(chain, ",")

	order := []string{"scale=", "pad=", "eq=", "crop=", "rotate=", "boxblur=", "zoompan=", "fade=t=in", "drawtext="}
	pos := -1
	for _, marker := range order {
		idx := strings.Index(joined, marker)
		if idx < 0 {
			t.Fatalf("marker %q missing from chain %q", marker, joined)
		}
		if idx < pos {
			t.Errorf("marker %q out of order in chain %q", marker, joined)
		}
		pos = idx
	}
}

func TestKenBurnsSkippedForAnimated(t *testing.T) {
	e := Effects{KenBurns: KenBurnsLeftToRight}

	withKB := Plan(e, testRes, true, 5, DefaultPlanConfig())
	without := Plan(Effects{}, testRes, true, 5, DefaultPlanConfig())

	if !reflect.DeepEqual(withKB, without) {
		t.Errorf("Ken Burns should be skipped for animated input: %v vs %v", withKB, without)
	}
	for _, f := range withKB {
		if strings.Contains(f, "zoompan") {
			t.Errorf("unexpected zoompan filter: %s", f)
		}
	}
}

func TestKenBurnsDirections(t *testing.T) {
	dirs := []KenBurnsDirection{
		KenBurnsLeftToRight, KenBurnsRightToLeft, KenBurnsTopToBottom, KenBurnsBottomToTop,
	}

	seen := make(map[string]bool)
	for _, dir := range dirs {
		chain := Plan(Effects{KenBurns: dir}, testRes, false, 5, DefaultPlanConfig())
		joined := strings.Join(chain, ",")
		if !strings.Contains(joined, "zoompan") {
			t.Errorf("direction %q produced no zoompan", dir)
		}
		if seen[joined] {
			t.Errorf("direction %q produced a duplicate chain", dir)
		}
		seen[joined] = true
	}
}

func TestKenBurnsZoomBound(t *testing.T) {
	chain := Plan(Effects{KenBurns: KenBurnsLeftToRight}, testRes, false, 10, DefaultPlanConfig())
	joined := strings.Join(chain, ",")

	if !strings.Contains(joined, "1.0400") {
		t.Errorf("expected zoom bounded at 1.04, got %q", joined)
	}
}

func TestFadeWindows(t *testing.T) {
	chain := Plan(Effects{FadeIn: true, FadeOut: true}, testRes, false, 5, DefaultPlanConfig())
	joined := strings.Join(chain, ",")

	if !strings.Contains(joined, "fade=t=in:st=0:d=1.000") {
		t.Errorf("missing full fade-in window: %q", joined)
	}
	if !strings.Contains(joined, "fade=t=out:st=4.000:d=1.000") {
		t.Errorf("missing full fade-out window: %q", joined)
	}
}

func TestFadeClampedOnShortClip(t *testing.T) {
	// Under two seconds the windows shrink to duration/2 so they never overlap.
	chain := Plan(Effects{FadeIn: true, FadeOut: true}, testRes, false, 1, DefaultPlanConfig())
	joined := strings.Join(chain, ",")

	if !strings.Contains(joined, "fade=t=in:st=0:d=0.500") {
		t.Errorf("fade-in not clamped: %q", joined)
	}
	if !strings.Contains(joined, "fade=t=out:st=0.500:d=0.500") {
		t.Errorf("fade-out not clamped: %q", joined)
	}
}

func TestEqIdentitySkipped(t *testing.T) {
	chain := Plan(Effects{Brightness: 0, Contrast: 1}, testRes, false, 5, DefaultPlanConfig())
	for _, f := range chain {
		if strings.HasPrefix(f, "eq=") {
			t.Errorf("identity eq should be skipped: %s", f)
		}
	}
}

func TestSubtitleEscaping(t *testing.T) {
	e := Effects{Subtitle: "50% off: buy (now) [really]"}
	chain := Plan(e, testRes, false, 5, DefaultPlanConfig())
	joined := strings.Join(chain, ",")

	for _, escaped := range []string{`\%`, `\:`, `\(`, `\)`, `\[`, `\]`} {
		if !strings.Contains(joined, escaped) {
			t.Errorf("expected %q in chain %q", escaped, joined)
		}
	}
}

func TestSubtitleQuotedValueStaysClosed(t *testing.T) {
	e := Effects{Subtitle: "it's here"}
	chain := Plan(e, testRes, false, 5, DefaultPlanConfig())
	joined := strings.Join(chain, ",")

	if !strings.Contains(joined, `text='it'\''s here'`) {
		t.Errorf("expected close-escape-reopen quote form in chain %q", joined)
	}
	if strings.Contains(joined, `text='it\'`) {
		t.Errorf("quote escaped inside the quoted value, options after it would render as text: %q", joined)
	}
}

func TestSubtitleLinesCappedToFrame(t *testing.T) {
	res := Resolution{Width: 160, Height: 120}
	long := strings.TrimSpace(strings.Repeat("word ", 80))

	c := NewChain().Subtitle(long, res, "Arial", 0.5)
	for _, f := range c.Build() {
		if strings.Contains(f, "y=-") {
			t.Errorf("subtitle line placed off-frame: %q", f)
		}
	}
	if len(c.Build()) == 0 {
		t.Error("expected at least one subtitle line")
	}
}

func TestChainEmpty(t *testing.T) {
	c := NewChain()
	if got := c.String(); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := c.Build(); len(got) != 0 {
		t.Errorf("expected no filters, got %v", got)
	}
}

func TestTitleChain(t *testing.T) {
	chain := TitleChain("My Story", "Chapter One", testRes, "Arial", 0.5)
	if len(chain) < 2 {
		t.Fatalf("expected title and subtitle drawtext filters, got %v", chain)
	}
	for _, f := range chain {
		if !strings.HasPrefix(f, "drawtext=") {
			t.Errorf("unexpected filter %q", f)
		}
	}

	if got := TitleChain("", "", testRes, "Arial", 0.5); got != nil {
		t.Errorf("expected nil chain for empty text, got %v", got)
	}
}
