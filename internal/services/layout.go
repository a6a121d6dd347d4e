package services

import "driver-log-service/internal/domain"

// Project maps a reconstructed timeline onto canvas coordinates.
//
// Each segment becomes one span primitive: its horizontal start and width are
// linear projections of the segment's minutes onto the canvas width, its row
// is the configured row for its status. With the center-line style the span
// sits on the row's vertical center with zero height; with the filled-block
// style it covers the full row. Between consecutive segments of different
// status a vertical marker primitive is emitted at the shared offset,
// spanning between the two rows' centers (through intermediate rows when the
// statuses are not on adjacent rows).
//
// Primitives are emitted left to right mirroring segment order, so identical
// inputs always produce identical output.
func Project(timeline *domain.DayTimeline, canvas domain.Canvas) []domain.LayoutPrimitive {
	rows := canvas.Rows
	if rows == nil {
		rows = domain.DefaultRows()
	}
	scale := canvas.Width / domain.MinutesPerDay

	rowTop := func(s domain.Status) float64 {
		return canvas.Top + float64(rows[s])*canvas.RowHeight
	}
	rowCenter := func(s domain.Status) float64 {
		return rowTop(s) + canvas.RowHeight/2
	}

	prims := make([]domain.LayoutPrimitive, 0, 2*len(timeline.Segments))
	for i, seg := range timeline.Segments {
		x := canvas.Left + seg.StartMinute*scale

		if i > 0 {
			prev := timeline.Segments[i-1]
			if prev.Status != seg.Status {
				top, bottom := rowCenter(prev.Status), rowCenter(seg.Status)
				if top > bottom {
					top, bottom = bottom, top
				}
				prims = append(prims, domain.LayoutPrimitive{
					Kind:   domain.PrimitiveMarker,
					X:      x,
					Y:      top,
					Height: bottom - top,
				})
			}
		}

		span := domain.LayoutPrimitive{
			Kind:   domain.PrimitiveSpan,
			Status: seg.Status,
			Row:    rows[seg.Status],
			X:      x,
			Y:      rowCenter(seg.Status),
			Width:  seg.Minutes() * scale,
		}
		if canvas.Style == domain.SpanFilledBlock {
			span.Y = rowTop(seg.Status)
			span.Height = canvas.RowHeight
		}
		prims = append(prims, span)
	}
	return prims
}
