package domain

// SpanStyle selects how a segment span is meant to be drawn.
type SpanStyle string

const (
	// SpanCenterLine renders each segment as a horizontal line through the
	// vertical center of its status row, matching the paper-log style.
	SpanCenterLine SpanStyle = "center_line"
	// SpanFilledBlock renders each segment as a filled rectangle covering
	// the full row height.
	SpanFilledBlock SpanStyle = "filled_block"
)

// Canvas describes the abstract drawing area a DayTimeline is projected onto.
// Width spans the full 1440-minute day. Rows assigns a grid row per status;
// a nil map means DefaultRows. Canvas is passed by value and never mutated.
type Canvas struct {
	Left      float64
	Top       float64
	Width     float64
	RowHeight float64
	Rows      map[Status]int
	Style     SpanStyle
}

// DefaultRows returns the conventional paper-log row assignment.
func DefaultRows() map[Status]int {
	return map[Status]int{
		StatusOffDuty:      0,
		StatusSleeperBerth: 1,
		StatusDriving:      2,
		StatusOnDuty:       3,
	}
}

// PrimitiveKind discriminates the two drawable primitive shapes.
type PrimitiveKind string

const (
	PrimitiveSpan   PrimitiveKind = "span"
	PrimitiveMarker PrimitiveKind = "marker"
)

// LayoutPrimitive is one drawable instruction in canvas units.
//
// A span carries Status, Row, X, Y, Width and Height (Height is zero for the
// center-line style). A marker is a vertical status-change line at X from Y
// down Height canvas units; Status, Row and Width are zero values.
type LayoutPrimitive struct {
	Kind   PrimitiveKind
	Status Status
	Row    int
	X      float64
	Y      float64
	Width  float64
	Height float64
}
