package render

import (
	"driver-log-service/internal/domain"
	"fmt"
	"strings"
)

// Renderer draws a reconstructed daily log as an SVG document: the 24-hour
// grid, one row per duty status, the projected segment primitives, and a
// totals column. Output is deterministic for identical input.
type Renderer struct {
	Style Style
}

func NewRenderer(style Style) *Renderer {
	return &Renderer{Style: style}
}

// Canvas derives the abstract projection canvas from the style, so layout
// projection and drawing agree on geometry.
func (r *Renderer) Canvas() domain.Canvas {
	s := r.Style
	style := domain.SpanCenterLine
	if s.FilledBlocks {
		style = domain.SpanFilledBlock
	}
	return domain.Canvas{
		Left:      s.Layout.MarginLeft,
		Top:       s.Layout.MarginTop + float64(s.Font.Size)*2,
		Width:     s.Layout.Width - s.Layout.MarginLeft - s.Layout.MarginRight,
		RowHeight: s.Layout.RowHeight,
		Style:     style,
	}
}

// Render produces the SVG document for one day. The primitives are expected
// to come from projecting the same timeline onto r.Canvas().
func (r *Renderer) Render(timeline *domain.DayTimeline, prims []domain.LayoutPrimitive) []byte {
	s := r.Style
	canvas := r.Canvas()

	gridTop := canvas.Top
	gridBottom := gridTop + 4*canvas.RowHeight
	height := gridBottom + s.Layout.MarginBottom + float64(s.Font.Size)

	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" font-family="%s" font-size="%d">`+"\n",
		f(s.Layout.Width), f(height), s.Font.Family, s.Font.Size,
	)
	fmt.Fprintf(&b, `<rect width="%s" height="%s" fill="%s"/>`+"\n", f(s.Layout.Width), f(height), s.Colors.Background)

	// Title
	fmt.Fprintf(&b,
		`<text x="%s" y="%s" fill="%s" font-weight="bold">Driver&#39;s Daily Log — %s</text>`+"\n",
		f(canvas.Left), f(s.Layout.MarginTop), s.Colors.Text, timeline.Date.Format("2006-01-02"),
	)

	// Hour grid: a tick per hour, labels every other hour.
	for h := 0; h <= 24; h++ {
		x := canvas.Left + float64(h)/24*canvas.Width
		fmt.Fprintf(&b,
			`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`+"\n",
			f(x), f(gridTop), f(x), f(gridBottom), s.Colors.Grid,
		)
		if h%2 == 0 {
			fmt.Fprintf(&b,
				`<text x="%s" y="%s" fill="%s" text-anchor="middle">%d</text>`+"\n",
				f(x), f(gridTop-4), s.Colors.Text, h,
			)
		}
	}

	// Status rows: separators, labels and totals.
	rows := domain.DefaultRows()
	for i := 0; i <= 4; i++ {
		y := gridTop + float64(i)*canvas.RowHeight
		fmt.Fprintf(&b,
			`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`+"\n",
			f(canvas.Left), f(y), f(canvas.Left+canvas.Width), f(y), s.Colors.Grid,
		)
	}
	for _, status := range domain.AllStatuses {
		y := gridTop + (float64(rows[status])+0.5)*canvas.RowHeight
		fmt.Fprintf(&b,
			`<text x="%s" y="%s" fill="%s" text-anchor="end">%s</text>`+"\n",
			f(canvas.Left-8), f(y+float64(s.Font.Size)/3), s.Colors.Text, status.Label(),
		)
		fmt.Fprintf(&b,
			`<text x="%s" y="%s" fill="%s">%s h</text>`+"\n",
			f(canvas.Left+canvas.Width+8), f(y+float64(s.Font.Size)/3), s.Colors.Text,
			f(timeline.Totals[status]/60),
		)
	}

	// Projected primitives, in emission order.
	for _, p := range prims {
		switch p.Kind {
		case domain.PrimitiveSpan:
			if p.Height > 0 {
				fmt.Fprintf(&b,
					`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
					f(p.X), f(p.Y), f(p.Width), f(p.Height), s.Colors.Line,
				)
			} else {
				fmt.Fprintf(&b,
					`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
					f(p.X), f(p.Y), f(p.X+p.Width), f(p.Y), s.Colors.Line, f(s.Layout.LineWidth),
				)
			}
		case domain.PrimitiveMarker:
			fmt.Fprintf(&b,
				`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
				f(p.X), f(p.Y), f(p.X), f(p.Y+p.Height), s.Colors.Line, f(s.Layout.LineWidth),
			)
		}
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

// f formats a coordinate with two decimals, the precision sub-minute events
// need at grid scale.
func f(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
