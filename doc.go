// Package charts provides the core of a financial chart renderer.
//
// # Overview
//
// charts turns bar data and interactive drawing tools into a
// platform-agnostic stream of render commands. It is the engine behind
// candlestick charts: the coordinate system that maps bar-index/price
// data space to pixel space, the command-buffer rendering pipeline with
// pixel-crisp alignment, and the polymorphic drawing-tool catalog.
// Rasterization is deliberately out of scope: a backend (Canvas2D, SVG,
// native) consumes the command stream.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/charts"
//	    "github.com/gogpu/charts/coords"
//	    "github.com/gogpu/charts/primitive"
//	    "github.com/gogpu/charts/render"
//	)
//
//	vp := coords.NewViewport(800, 600)
//	vp.SetBars(bars)
//	vp.ScrollToEnd()
//
//	rec := render.NewRecorder(vp, 2.0) // dpr = 2
//	line := primitive.Create("trend_line",
//	    []primitive.Point{{Bar: 10, Price: 101.5}, {Bar: 40, Price: 108}}, "#2196F3")
//	line.Render(rec, false)
//
//	batch := rec.Finish()
//	visible := batch.Cull(charts.NewRect(0, 0, 800, 600))
//	// hand visible.Commands() to a backend
//
// # Architecture
//
// The library is organized into:
//   - charts (this package): Bar data model, colors, geometry, logging
//   - coords: TimeScale (X), PriceScale (Y), Viewport composition
//   - render: Command, Batch, Queue, crisp alignment, the Context seam
//   - primitive: the Primitive interface, registry, and tool catalog
//   - theme: color themes, YAML-loadable
//
// # Coordinate System
//
// Pixel space uses standard computer graphics coordinates: origin at the
// top-left, X increasing right, Y increasing down. Data space is
// (bar index, price); price increases upward, so the Y mapping inverts.
//
// # Concurrency
//
// A render pass is single-threaded by design: update the Viewport, walk
// the primitive list, record into one Batch, cull, execute. Viewport and
// Batch are not safe for concurrent mutation; callers sharing them
// across goroutines must serialize access.
package charts

// Version is the current version of the library.
const Version = "0.1.0"
