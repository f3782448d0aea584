package primitive

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/gogpu/charts"
)

// snapshotVersion is bumped when the snapshot layout changes.
const snapshotVersion = 1

// snapshot is the binary form of a drawing list, used for fast
// save/restore of chart state.
type snapshot struct {
	Version  int        `json:"version"`
	Drawings []envelope `json:"drawings"`
}

// EncodeSnapshot packs a drawing list into a compact binary snapshot.
func EncodeSnapshot(ps []Primitive) ([]byte, error) {
	snap := snapshot{Version: snapshotVersion}
	for _, p := range ps {
		if p == nil {
			continue
		}
		snap.Drawings = append(snap.Drawings, envelope{
			TypeID: p.TypeID(),
			Data:   toDocument(*p.Data()),
			Levels: p.LevelConfigs(),
		})
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(snap); err != nil {
		return nil, fmt.Errorf("primitive: encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot restores a drawing list from a binary snapshot.
// Drawings of unknown type are skipped with a warning.
func DecodeSnapshot(b []byte) ([]Primitive, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	dec.SetCustomStructTag("json")
	var snap snapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("primitive: decode snapshot: %w", err)
	}
	if snap.Version > snapshotVersion {
		return nil, fmt.Errorf("primitive: snapshot version %d is newer than supported %d",
			snap.Version, snapshotVersion)
	}

	out := make([]Primitive, 0, len(snap.Drawings))
	for _, env := range snap.Drawings {
		p, err := restore(env)
		if err != nil {
			charts.Logger().Warn("skipping drawing", "err", err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// restore rebuilds one primitive from its envelope.
func restore(env envelope) (Primitive, error) {
	if env.TypeID == "" {
		env.TypeID = env.Data.TypeID
	}
	meta, ok := Lookup(env.TypeID)
	if !ok {
		return nil, fmt.Errorf("primitive: unknown type %q", env.TypeID)
	}
	p := meta.New(env.Data.Points, env.Data.Color.Stroke)
	d := p.Data()
	id := env.Data.ID
	if id == "" {
		id = d.ID
	}
	*d = env.Data.data()
	d.ID = id
	d.TypeID = env.TypeID
	if env.Levels != nil {
		p.SetLevelConfigs(env.Levels)
	}
	return p, nil
}
