package render

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/contextviz/contextviz/pkg/errors"
	"github.com/contextviz/contextviz/pkg/measure"
	"github.com/contextviz/contextviz/pkg/perspective"
)

// composeLevels runs a standard compose so sink tests work on realistic
// geometry rather than hand-built structs.
func composeLevels(t *testing.T, country string) []perspective.Level {
	t.Helper()
	levels, err := perspective.New().Compose(context.Background(), perspective.Inputs{
		House:   measure.Measurement{Value: 100, Unit: measure.SquareMeters},
		City:    measure.Measurement{Value: 400, Unit: measure.SquareKilometers},
		Country: country,
	})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	return levels
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatSVG, FormatPNG, FormatJSON} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) error: %v", f, err)
		}
	}

	for _, f := range []string{"pdf", "webp", "", "SVG"} {
		if err := ValidateFormat(f); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) error = %v, want INVALID_FORMAT", f, err)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png", "json"}); err != nil {
		t.Errorf("ValidateFormats() error: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "gif"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormats() error = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderDispatch(t *testing.T) {
	level := composeLevels(t, "")[perspective.LevelHouseInCity]

	for _, format := range []string{FormatSVG, FormatPNG, FormatJSON} {
		data, err := Render(level, format)
		if err != nil {
			t.Errorf("Render(%s) error: %v", format, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("Render(%s) produced no output", format)
		}
	}

	if _, err := Render(level, "pdf"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(pdf) error = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderSVGGrid(t *testing.T) {
	level := composeLevels(t, "Finland")[perspective.LevelCityInWorld]
	svg := string(RenderSVG(level, WithRunID("run-1")))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`run run-1`,
		`<title>your-city-in-the-world - 1 in `,
		`<pattern id="grid"`,
		`<pattern id="inset"`,
		`fill="url(#grid)"`,
		`fill="url(#inset)"`,
		`<title>Finland - 1 in `,
		`fill="` + colorMarker + `"`,
		`</svg>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVGGridWithoutInset(t *testing.T) {
	level := composeLevels(t, "")[perspective.LevelCityInWorld]
	svg := string(RenderSVG(level))

	if strings.Contains(svg, `id="inset"`) {
		t.Error("SVG should carry no inset pattern without a country")
	}
}

func TestRenderSVGOrbit(t *testing.T) {
	level := composeLevels(t, "")[perspective.LevelOrbit]
	svg := string(RenderSVG(level))

	for _, want := range []string{
		`fill="none" stroke="` + colorOrbit + `"`,
		`fill="` + colorSunFill + `" stroke="` + colorSunEdge + `"`,
		`fill="` + colorEarth + `"`,
		`<title>earth</title>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("orbit SVG missing %q", want)
		}
	}

	if strings.Contains(svg, "<pattern") {
		t.Error("orbit SVG should not contain checkerboard patterns")
	}
}

func TestRenderPNGDecodes(t *testing.T) {
	level := composeLevels(t, "")[perspective.LevelHouseInCity]

	data, err := RenderPNG(level, WithScale(1.0))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}

	bounds := img.Bounds()
	wantW := int(level.Shapes.Reference.Width + 0.5)
	wantH := int(level.Shapes.Reference.Height + 0.5)
	if bounds.Dx() != wantW || bounds.Dy() != wantH {
		t.Errorf("PNG size = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), wantW, wantH)
	}
}

func TestRenderPNGScale(t *testing.T) {
	level := composeLevels(t, "")[perspective.LevelHouseInCity]

	data, err := RenderPNG(level, WithScale(2.0))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}

	wantW := int(level.Shapes.Reference.Width*2 + 0.5)
	if img.Bounds().Dx() != wantW {
		t.Errorf("PNG width = %d, want %d at 2x scale", img.Bounds().Dx(), wantW)
	}
}

func TestRenderPNGOrbit(t *testing.T) {
	level := composeLevels(t, "")[perspective.LevelOrbit]

	data, err := RenderPNG(level, WithScale(1.0))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	// Orbit diagrams are square, sized to the orbit diameter.
	if img.Bounds().Dx() != img.Bounds().Dy() {
		t.Errorf("orbit PNG = %dx%d, want square", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestRenderJSONFields(t *testing.T) {
	level := composeLevels(t, "Finland")[perspective.LevelCityInWorld]

	data, err := RenderJSON(level, WithRunID("run-7"), WithTitle("City in the world"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out struct {
		Label string `json:"label"`
		Title string `json:"title"`
		RunID string `json:"run_id"`
		Ratio struct {
			Linear float64 `json:"linear"`
			Raw    float64 `json:"raw"`
			Kind   string  `json:"kind"`
		} `json:"ratio"`
		Bound struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"bound"`
		Shapes []struct {
			Kind string `json:"kind"`
			Role string `json:"role"`
		} `json:"shapes"`
		Inset *struct {
			Label string `json:"label"`
		} `json:"inset"`
		ClampFactor float64 `json:"clamp_factor"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.Label != "your-city-in-the-world" {
		t.Errorf("label = %q", out.Label)
	}
	if out.Title != "City in the world" {
		t.Errorf("title = %q, want override", out.Title)
	}
	if out.RunID != "run-7" {
		t.Errorf("run_id = %q", out.RunID)
	}
	if out.Ratio.Kind != "areal" {
		t.Errorf("ratio kind = %q, want areal", out.Ratio.Kind)
	}
	if out.Ratio.Linear <= 1 || out.Ratio.Raw <= out.Ratio.Linear {
		t.Errorf("ratio = %+v, want raw > linear > 1 for areal", out.Ratio)
	}
	if out.Bound.Width != 1024 || out.Bound.Height != 768 {
		t.Errorf("bound = %+v, want 1024x768", out.Bound)
	}
	if len(out.Shapes) != 2 || out.Shapes[0].Role != "reference" || out.Shapes[1].Role != "shrunk" {
		t.Errorf("shapes = %+v, want reference then shrunk", out.Shapes)
	}
	if out.Inset == nil || out.Inset.Label != "Finland" {
		t.Errorf("inset = %+v, want Finland", out.Inset)
	}
	if out.ClampFactor <= 0 || out.ClampFactor > 1 {
		t.Errorf("clamp_factor = %g, want in (0, 1]", out.ClampFactor)
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{999, "999"},
		{1000, "1,000"},
		{4000000, "4,000,000"},
		{1275180, "1,275,180"},
	}

	for _, tt := range tests {
		if got := formatCount(tt.in); got != tt.want {
			t.Errorf("formatCount(%g) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
