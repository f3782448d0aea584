package primitive

import (
	"math"

	"github.com/gogpu/charts"
	"github.com/gogpu/charts/render"
)

func init() {
	Register(Metadata{
		TypeID:      "rectangle",
		DisplayName: "Rectangle",
		Kind:        KindShape,
		New: func(points []Point, color string) Primitive {
			return &Rectangle{Base: NewBase("rectangle", color, points, 2, 2)}
		},
		SupportsText: true,
	})
	Register(Metadata{
		TypeID:      "ellipse",
		DisplayName: "Ellipse",
		Kind:        KindShape,
		New: func(points []Point, color string) Primitive {
			return &Ellipse{Base: NewBase("ellipse", color, points, 2, 2)}
		},
		SupportsText: true,
	})
	Register(Metadata{
		TypeID:      "triangle",
		DisplayName: "Triangle",
		Kind:        KindShape,
		New: func(points []Point, color string) Primitive {
			return &Triangle{Base: NewBase("triangle", color, points, 3, 3)}
		},
	})
	Register(Metadata{
		TypeID:      "circle",
		DisplayName: "Circle",
		Kind:        KindShape,
		New: func(points []Point, color string) Primitive {
			return &Circle{Base: NewBase("circle", color, points, 2, 2)}
		},
	})
	Register(Metadata{
		TypeID:      "arc",
		DisplayName: "Arc",
		Kind:        KindShape,
		New: func(points []Point, color string) Primitive {
			return &Arc{Base: NewBase("arc", color, points, 3, 3)}
		},
	})
	Register(Metadata{
		TypeID:      "curve",
		DisplayName: "Curve",
		Kind:        KindShape,
		New: func(points []Point, color string) Primitive {
			return &Curve{Base: NewBase("curve", color, points, 4, 4)}
		},
	})
	Register(Metadata{
		TypeID:      "polyline",
		DisplayName: "Polyline",
		Kind:        KindShape,
		New: func(points []Point, color string) Primitive {
			return &Polyline{Base: NewBase("polyline", color, points, 2, 0)}
		},
	})
}

// Rectangle is an axis-aligned box between two corner anchors.
type Rectangle struct {
	Base
}

func (s *Rectangle) TypeID() string      { return s.D.TypeID }
func (s *Rectangle) DisplayName() string { return "Rectangle" }
func (s *Rectangle) Kind() Kind          { return KindShape }

func (s *Rectangle) Render(ctx render.Context, selected bool) {
	pts := s.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	rect := charts.RectFromPoints(pts[0], pts[1])

	if fill, ok := s.D.Color.FillColor(); ok {
		ctx.FillRect(rect, fill)
	} else {
		ctx.FillRect(rect, s.D.Color.StrokeColor().WithAlpha(0.1))
	}
	ctx.StrokeRect(rect, s.D.StrokeStyle())

	if selected {
		corners := []charts.Point{
			{X: rect.X, Y: rect.Y},
			{X: rect.Right(), Y: rect.Y},
			{X: rect.Right(), Y: rect.Bottom()},
			{X: rect.X, Y: rect.Bottom()},
		}
		selectionHandles(ctx, corners, s.D.Color.StrokeColor())
	}
}

func (s *Rectangle) TextAnchor(ctx render.Context) (TextAnchor, bool) {
	if s.D.Text == nil || s.D.Text.Content == "" || len(s.D.Points) < 2 {
		return TextAnchor{}, false
	}
	pts := s.screenPoints(ctx)
	center := charts.RectFromPoints(pts[0], pts[1]).Center()
	return TextAnchor{Pos: center, FallbackColor: s.D.Color.Stroke}, true
}

func (s *Rectangle) Clone() Primitive {
	out := *s
	out.Base = s.cloneBase()
	return &out
}

// Ellipse fills the bounding box of its two anchors. Rendered as a
// sampled polygon: backends need no dedicated ellipse support.
type Ellipse struct {
	Base
}

func (s *Ellipse) TypeID() string      { return s.D.TypeID }
func (s *Ellipse) DisplayName() string { return "Ellipse" }
func (s *Ellipse) Kind() Kind          { return KindShape }

const ellipseSegments = 48

func (s *Ellipse) Render(ctx render.Context, selected bool) {
	pts := s.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	rect := charts.RectFromPoints(pts[0], pts[1])
	center := rect.Center()
	rx, ry := rect.W/2, rect.H/2

	outline := make([]charts.Point, ellipseSegments)
	for i := range outline {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		outline[i] = charts.Pt(center.X+rx*math.Cos(a), center.Y+ry*math.Sin(a))
	}

	if fill, ok := s.D.Color.FillColor(); ok {
		ctx.FillPolygon(outline, fill)
	} else {
		ctx.FillPolygon(outline, s.D.Color.StrokeColor().WithAlpha(0.1))
	}
	ctx.StrokePolygon(outline, s.D.StrokeStyle())

	if selected {
		selectionHandles(ctx, pts, s.D.Color.StrokeColor())
	}
}

func (s *Ellipse) Clone() Primitive {
	out := *s
	out.Base = s.cloneBase()
	return &out
}

// Triangle is a filled three-point polygon.
type Triangle struct {
	Base
}

func (s *Triangle) TypeID() string      { return s.D.TypeID }
func (s *Triangle) DisplayName() string { return "Triangle" }
func (s *Triangle) Kind() Kind          { return KindShape }

func (s *Triangle) Render(ctx render.Context, selected bool) {
	pts := s.screenPoints(ctx)
	if len(pts) < 3 {
		return
	}
	if fill, ok := s.D.Color.FillColor(); ok {
		ctx.FillPolygon(pts[:3], fill)
	} else {
		ctx.FillPolygon(pts[:3], s.D.Color.StrokeColor().WithAlpha(0.1))
	}
	ctx.StrokePolygon(pts[:3], s.D.StrokeStyle())

	if selected {
		selectionHandles(ctx, pts, s.D.Color.StrokeColor())
	}
}

func (s *Triangle) Clone() Primitive {
	out := *s
	out.Base = s.cloneBase()
	return &out
}

// Circle is centered on its first anchor with the second on its rim.
type Circle struct {
	Base
}

func (s *Circle) TypeID() string      { return s.D.TypeID }
func (s *Circle) DisplayName() string { return "Circle" }
func (s *Circle) Kind() Kind          { return KindShape }

func (s *Circle) Render(ctx render.Context, selected bool) {
	pts := s.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	center := pts[0]
	radius := center.Distance(pts[1])
	if radius <= 0 {
		return
	}
	if fill, ok := s.D.Color.FillColor(); ok {
		ctx.FillCircle(center, radius, fill)
	} else {
		ctx.FillCircle(center, radius, s.D.Color.StrokeColor().WithAlpha(0.1))
	}
	ctx.StrokeCircle(center, radius, s.D.StrokeStyle())

	if selected {
		selectionHandles(ctx, pts, s.D.Color.StrokeColor())
	}
}

func (s *Circle) Clone() Primitive {
	out := *s
	out.Base = s.cloneBase()
	return &out
}

// Arc is a quadratic curve through three anchors: two endpoints and a
// middle point the curve bends toward.
type Arc struct {
	Base
}

func (s *Arc) TypeID() string      { return s.D.TypeID }
func (s *Arc) DisplayName() string { return "Arc" }
func (s *Arc) Kind() Kind          { return KindShape }

func (s *Arc) Render(ctx render.Context, selected bool) {
	pts := s.screenPoints(ctx)
	if len(pts) < 3 {
		return
	}
	// Control point so the curve passes through the middle anchor at
	// t=0.5: c = 2m - (a+b)/2.
	a, m, b := pts[0], pts[1], pts[2]
	control := m.Mul(2).Sub(a.Add(b).Mul(0.5))
	ctx.QuadraticCurve(a, control, b, s.D.StrokeStyle())

	if selected {
		selectionHandles(ctx, pts, s.D.Color.StrokeColor())
	}
}

func (s *Arc) Clone() Primitive {
	out := *s
	out.Base = s.cloneBase()
	return &out
}

// Curve is a cubic bezier: two endpoints and two control anchors.
type Curve struct {
	Base
}

func (s *Curve) TypeID() string      { return s.D.TypeID }
func (s *Curve) DisplayName() string { return "Curve" }
func (s *Curve) Kind() Kind          { return KindShape }

func (s *Curve) Render(ctx render.Context, selected bool) {
	pts := s.screenPoints(ctx)
	if len(pts) < 4 {
		return
	}
	ctx.CubicCurve(pts[0], pts[1], pts[2], pts[3], s.D.StrokeStyle())

	if selected {
		selectionHandles(ctx, pts, s.D.Color.StrokeColor())
	}
}

func (s *Curve) Clone() Primitive {
	out := *s
	out.Base = s.cloneBase()
	return &out
}

// Polyline connects any number of anchors with line segments.
type Polyline struct {
	Base
}

func (s *Polyline) TypeID() string      { return s.D.TypeID }
func (s *Polyline) DisplayName() string { return "Polyline" }
func (s *Polyline) Kind() Kind          { return KindShape }

func (s *Polyline) Render(ctx render.Context, selected bool) {
	pts := s.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	ctx.Polyline(pts, s.D.StrokeStyle())

	if selected {
		selectionHandles(ctx, pts, s.D.Color.StrokeColor())
	}
}

func (s *Polyline) Clone() Primitive {
	out := *s
	out.Base = s.cloneBase()
	return &out
}
