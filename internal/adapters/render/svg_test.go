package render

import (
	"bytes"
	"driver-log-service/internal/domain"
	"driver-log-service/internal/services"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func renderDay(t *testing.T, style Style) []byte {
	t.Helper()

	day := time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC)
	timeline, err := services.Reconstruct(day, []domain.Event{
		{Status: domain.StatusOnDuty, StartMinute: 390, EndMinute: 450},
		{Status: domain.StatusDriving, StartMinute: 450, EndMinute: 705},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := NewRenderer(style)
	prims := services.Project(timeline, r.Canvas())
	return r.Render(timeline, prims)
}

func TestRenderProducesCompleteDocument(t *testing.T) {
	svg := string(renderDay(t, DefaultStyle()))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		"</svg>",
		"2025-02-25",
		"Off Duty",
		"Sleeper Berth",
		"Driving",
		"On Duty",
	} {
		if !strings.Contains(svg, want) {
			t.Fatalf("rendered SVG missing %q", want)
		}
	}
}

func TestRenderTotalsColumn(t *testing.T) {
	svg := string(renderDay(t, DefaultStyle()))

	// 255 driving minutes and 60 on-duty minutes as hours.
	if !strings.Contains(svg, ">4.25 h<") {
		t.Fatal("rendered SVG missing driving total")
	}
	if !strings.Contains(svg, ">1.00 h<") {
		t.Fatal("rendered SVG missing on-duty total")
	}
}

func TestRenderDeterministic(t *testing.T) {
	a := renderDay(t, DefaultStyle())
	b := renderDay(t, DefaultStyle())
	if !bytes.Equal(a, b) {
		t.Fatal("identical input produced different SVG bytes")
	}
}

func TestRenderFilledBlocksStyle(t *testing.T) {
	style := DefaultStyle()
	style.FilledBlocks = true

	svg := string(renderDay(t, style))
	if !strings.Contains(svg, `<rect x="`) {
		t.Fatal("filled-blocks style rendered no segment rects")
	}
}

func TestCanvasGeometry(t *testing.T) {
	r := NewRenderer(DefaultStyle())
	canvas := r.Canvas()

	if canvas.Width != 1200-110-80 {
		t.Fatalf("canvas width = %v, want %v", canvas.Width, 1200-110-80)
	}
	if canvas.Left != 110 {
		t.Fatalf("canvas left = %v, want 110", canvas.Left)
	}
	if canvas.Style != domain.SpanCenterLine {
		t.Fatalf("canvas style = %s, want center line", canvas.Style)
	}
}

func TestLoadStyleMissingFileKeepsDefaults(t *testing.T) {
	style, err := LoadStyle(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if style != DefaultStyle() {
		t.Fatal("missing style file changed the defaults")
	}
}

func TestLoadStyleOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yml")
	raw := "layout:\n  width: 900\n  row_height: 24\ncolors:\n  line: \"#0000ff\"\nfilled_blocks: true\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write style file: %v", err)
	}

	style, err := LoadStyle(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if style.Layout.Width != 900 || style.Layout.RowHeight != 24 {
		t.Fatalf("layout overrides not applied: %+v", style.Layout)
	}
	if style.Colors.Line != "#0000ff" {
		t.Fatalf("color override not applied: %q", style.Colors.Line)
	}
	if !style.FilledBlocks {
		t.Fatal("filled_blocks override not applied")
	}
	// Unset keys keep defaults.
	if style.Font.Size != 12 {
		t.Fatalf("font size = %d, want default 12", style.Font.Size)
	}
}
