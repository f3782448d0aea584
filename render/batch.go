package render

import (
	"math"
	"sort"

	"github.com/gogpu/charts"
)

// Standard rendering layers, drawn back to front.
const (
	LayerBackground  uint32 = 0    // grid, watermarks
	LayerChart       uint32 = 100  // candles, series
	LayerAnnotations uint32 = 200  // annotations and drawings
	LayerPrimitives  uint32 = 300  // drawing primitives
	LayerOverlays    uint32 = 400  // indicators, tools
	LayerUI          uint32 = 500  // scales, crosshair
	LayerTop         uint32 = 1000 // tooltips, popups
)

// incrementalBounds tracks a bounding box as commands are pushed,
// avoiding an O(n) recalculation on every Bounds call.
type incrementalBounds struct {
	minX, minY float64
	maxX, maxY float64
	hasContent bool
}

func newIncrementalBounds() incrementalBounds {
	return incrementalBounds{
		minX: math.Inf(1),
		minY: math.Inf(1),
		maxX: math.Inf(-1),
		maxY: math.Inf(-1),
	}
}

func (b *incrementalBounds) expand(r charts.Rect) {
	b.minX = math.Min(b.minX, r.X)
	b.minY = math.Min(b.minY, r.Y)
	b.maxX = math.Max(b.maxX, r.Right())
	b.maxY = math.Max(b.maxY, r.Bottom())
	b.hasContent = true
}

func (b *incrementalBounds) get() (charts.Rect, bool) {
	if !b.hasContent {
		return charts.Rect{}, false
	}
	return charts.NewRect(b.minX, b.minY, b.maxX-b.minX, b.maxY-b.minY), true
}

// Batch is an ordered list of render commands with an incrementally
// tracked bounding box, a z-order layer and an optional debug name.
//
// A Batch is not safe for concurrent mutation.
type Batch struct {
	commands []Command
	bounds   incrementalBounds

	// Layer is the z-order depth; lower layers draw first.
	Layer uint32
	// Name labels the batch in debug logging. Optional.
	Name string
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{bounds: newIncrementalBounds()}
}

// NewBatchCapacity creates a batch with pre-allocated command capacity.
func NewBatchCapacity(capacity int) *Batch {
	return &Batch{
		commands: make([]Command, 0, capacity),
		bounds:   newIncrementalBounds(),
	}
}

// NamedBatch creates a batch labeled for debugging.
func NamedBatch(name string) *Batch {
	b := NewBatch()
	b.Name = name
	return b
}

// Push appends a command, updating the tracked bounds in O(1).
func (b *Batch) Push(cmd Command) {
	if r, ok := cmd.Bounds(); ok {
		b.bounds.expand(r)
	}
	b.commands = append(b.commands, cmd)
}

// Extend appends multiple commands.
func (b *Batch) Extend(cmds ...Command) {
	for _, cmd := range cmds {
		b.Push(cmd)
	}
}

// Len returns the command count.
func (b *Batch) Len() int {
	return len(b.commands)
}

// Empty reports whether the batch has no commands.
func (b *Batch) Empty() bool {
	return len(b.commands) == 0
}

// Clear removes all commands and resets the bounds for reuse.
func (b *Batch) Clear() {
	b.commands = b.commands[:0]
	b.bounds = newIncrementalBounds()
}

// Commands returns the commands in submission order. The slice is owned
// by the batch; callers must not mutate it.
func (b *Batch) Commands() []Command {
	return b.commands
}

// Bounds returns the bounding box of all draw commands pushed so far.
// False when the batch holds no spatial content.
func (b *Batch) Bounds() (charts.Rect, bool) {
	return b.bounds.get()
}

// IntersectsViewport reports whether the batch could contribute pixels
// inside the viewport. A batch with no spatial content always
// intersects: its state commands may affect later batches.
func (b *Batch) IntersectsViewport(viewport charts.Rect) bool {
	bounds, ok := b.Bounds()
	if !ok {
		return true
	}
	return bounds.Intersects(viewport)
}

// Cull returns a new batch containing every state command and the draw
// commands whose bounds intersect the viewport. Command order is
// preserved, so clip and alpha state stays balanced.
func (b *Batch) Cull(viewport charts.Rect) *Batch {
	result := NewBatchCapacity(len(b.commands))
	result.Layer = b.Layer
	result.Name = b.Name

	dropped := 0
	for _, cmd := range b.commands {
		if cmd.IsState() {
			result.Push(cmd)
			continue
		}
		bounds, ok := cmd.Bounds()
		if !ok || bounds.Intersects(viewport) {
			result.Push(cmd)
			continue
		}
		dropped++
	}

	if dropped > 0 {
		charts.Logger().Debug("batch culled",
			"name", b.Name, "kept", result.Len(), "dropped", dropped)
	}
	return result
}

// Queue collects batches and yields them in layer order.
type Queue struct {
	batches []*Batch
	sorted  bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{sorted: true}
}

// Push adds a batch to the queue.
func (q *Queue) Push(batch *Batch) {
	q.sorted = false
	q.batches = append(q.batches, batch)
}

// PushCommand wraps a single command in a new batch on the given layer.
func (q *Queue) PushCommand(cmd Command, layer uint32) {
	batch := NewBatch()
	batch.Layer = layer
	batch.Push(cmd)
	q.Push(batch)
}

// Batches returns the batches sorted by layer. The sort is stable, so
// batches on the same layer keep submission order.
func (q *Queue) Batches() []*Batch {
	if !q.sorted {
		sort.SliceStable(q.batches, func(i, j int) bool {
			return q.batches[i].Layer < q.batches[j].Layer
		})
		q.sorted = true
	}
	return q.batches
}

// Clear removes all batches.
func (q *Queue) Clear() {
	q.batches = q.batches[:0]
	q.sorted = true
}

// TotalCommands returns the command count across all batches.
func (q *Queue) TotalCommands() int {
	n := 0
	for _, b := range q.batches {
		n += b.Len()
	}
	return n
}

// Flatten concatenates all batches into one command list in layer order.
func (q *Queue) Flatten() []Command {
	var out []Command
	for _, b := range q.Batches() {
		out = append(out, b.commands...)
	}
	return out
}

// Cull culls every batch in the queue against the viewport, dropping
// batches that end up with no commands at all. Dropping a whole batch
// drops its state commands (Save, SetAlpha, clips) too, so batches must
// be state-self-contained: every Save/PushClip balanced by its
// Restore/PopClip within the same batch, and no batch relying on state
// set by an earlier one. Recorder-built batches satisfy this.
func (q *Queue) Cull(viewport charts.Rect) *Queue {
	out := NewQueue()
	for _, b := range q.Batches() {
		if !b.IntersectsViewport(viewport) {
			continue
		}
		culled := b.Cull(viewport)
		if !culled.Empty() {
			out.Push(culled)
		}
	}
	return out
}
