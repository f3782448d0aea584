// Command chartsdemo records a full chart frame from synthetic data
// and prints what the render queue contains. Useful for eyeballing
// batch sizes and cull behavior without a GPU backend attached.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/charts"
	"github.com/gogpu/charts/coords"
	"github.com/gogpu/charts/primitive"
	"github.com/gogpu/charts/render"
	"github.com/gogpu/charts/theme"
)

func main() {
	var (
		width    = flag.Int("width", 800, "chart width in pixels")
		height   = flag.Int("height", 600, "chart height in pixels")
		barCount = flag.Int("bars", 500, "number of synthetic bars")
		dpr      = flag.Float64("dpr", 1, "device pixel ratio")
		themed   = flag.String("theme", "", "theme YAML file (default: built-in dark)")
		snapshot = flag.String("snapshot", "", "write the demo drawings as a msgpack snapshot")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		charts.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	th := theme.Dark()
	if *themed != "" {
		var err error
		if th, err = theme.LoadFile(*themed); err != nil {
			log.Fatalf("load theme: %v", err)
		}
	}

	bars := syntheticBars(*barCount)
	vp := coords.NewViewport(float64(*width), float64(*height))
	vp.SetBars(bars)
	vp.ScrollToEnd()

	queue := render.NewQueue()
	queue.Push(recordBackground(vp, th, *dpr))
	queue.Push(recordCandles(vp, bars, th, *dpr))
	queue.Push(recordDrawings(vp, bars, *dpr, *snapshot))

	viewport := charts.NewRect(0, 0, float64(*width), float64(*height))
	before := queue.TotalCommands()
	queue = queue.Cull(viewport)

	fmt.Printf("frame %dx%d @%gx, %d bars (%d visible)\n",
		*width, *height, *dpr, len(bars), vp.Time.VisibleBars())
	fmt.Printf("commands: %d recorded, %d after cull\n", before, queue.TotalCommands())
	for _, b := range queue.Batches() {
		bounds, ok := b.Bounds()
		if !ok {
			fmt.Printf("  layer %4d %-12s %4d cmds (no bounds)\n", b.Layer, b.Name, b.Len())
			continue
		}
		fmt.Printf("  layer %4d %-12s %4d cmds bounds (%.0f,%.0f %.0fx%.0f)\n",
			b.Layer, b.Name, b.Len(), bounds.X, bounds.Y, bounds.W, bounds.H)
	}
}

// syntheticBars generates a noisy sine-wave walk with daily spacing.
func syntheticBars(n int) []charts.Bar {
	bars := make([]charts.Bar, n)
	price := 100.0
	for i := range bars {
		wave := 6 * math.Sin(float64(i)/18)
		drift := 0.02 * float64(i)
		open := price
		close := 100 + wave + drift + 2*math.Sin(float64(i)*1.7)
		high := math.Max(open, close) + 1.2
		low := math.Min(open, close) - 1.2
		bars[i] = charts.Bar{
			Timestamp: 1704067200 + int64(i)*86400,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close,
			Volume:    1000 + 400*math.Abs(wave),
		}
		price = close
	}
	return bars
}

func recordBackground(vp *coords.Viewport, th theme.Theme, dpr float64) *render.Batch {
	rec := render.NewRecorder(vp, dpr)
	rec.SetLayer(render.LayerBackground)
	rec.SetName("background")

	rec.FillRect(charts.NewRect(0, 0, vp.Width, vp.Height), th.BackgroundColor())

	grid := th.GridColor()
	for _, tick := range vp.Price.Ticks() {
		rec.GridLine(render.HGridLine(tick.Y, 0, vp.Width, grid))
	}
	for _, tick := range vp.Time.Ticks(vp.Bars(), render.DefaultMeasurer()) {
		rec.GridLine(render.VGridLine(tick.X, 0, vp.Height, grid))
	}
	return rec.Finish()
}

func recordCandles(vp *coords.Viewport, bars []charts.Bar, th theme.Theme, dpr float64) *render.Batch {
	rec := render.NewRecorder(vp, dpr)
	rec.SetLayer(render.LayerChart)
	rec.SetName("candles")

	start, end := vp.Time.VisibleRange()
	width := vp.Time.BarSpacing * vp.Time.BarWidthRatio
	for i := start; i < end && i < len(bars); i++ {
		if i < 0 {
			continue
		}
		b := bars[i]
		rec.Candlestick(render.CandlestickCommand{
			X:         vp.BarToX(float64(i)),
			OpenY:     vp.PriceToY(b.Open),
			HighY:     vp.PriceToY(b.High),
			LowY:      vp.PriceToY(b.Low),
			CloseY:    vp.PriceToY(b.Close),
			Width:     width,
			BodyColor: th.CandleColor(b.Bullish()),
			WickColor: th.WickColor(b.Bullish()),
		})
	}
	return rec.Finish()
}

func recordDrawings(vp *coords.Viewport, bars []charts.Bar, dpr float64, snapshotPath string) *render.Batch {
	n := float64(len(bars))
	drawings := []primitive.Primitive{
		primitive.Create("trend_line", []primitive.Point{
			{Bar: n - 120, Price: 95},
			{Bar: n - 10, Price: 112},
		}, ""),
		primitive.Create("horizontal_line", []primitive.Point{
			{Bar: n - 60, Price: 100},
		}, "#FF9800"),
		primitive.Create("fib_retracement", []primitive.Point{
			{Bar: n - 90, Price: 94},
			{Bar: n - 20, Price: 110},
		}, ""),
		primitive.Create("regression_trend", []primitive.Point{
			{Bar: n - 150, Price: 0},
			{Bar: n - 1, Price: 0},
		}, "#9C27B0"),
	}
	for _, d := range drawings {
		if rt, ok := d.(*primitive.RegressionTrend); ok {
			rt.Fit(bars)
		}
	}

	if snapshotPath != "" {
		data, err := primitive.EncodeSnapshot(drawings)
		if err != nil {
			log.Fatalf("encode snapshot: %v", err)
		}
		if err := os.WriteFile(snapshotPath, data, 0o644); err != nil {
			log.Fatalf("write snapshot: %v", err)
		}
		fmt.Printf("snapshot: %d drawings, %d bytes -> %s\n", len(drawings), len(data), snapshotPath)
	}

	rec := render.NewRecorder(vp, dpr)
	rec.SetLayer(render.LayerPrimitives)
	rec.SetName("drawings")
	for _, d := range drawings {
		d.Render(rec, false)
	}
	return rec.Finish()
}
