package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 2

// Snapshot holds one particle set as it stood at a given tick.
type Snapshot struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`

	Width  int `json:"width"`
	Height int `json:"height"`

	Theme  string `json:"theme"`
	Motion string `json:"motion"`

	Tick      int32   `json:"tick"`
	Clock     float64 `json:"clock"`
	BandPhase float64 `json:"band_phase,omitempty"` // Wave background phase

	Particles []ParticleState `json:"particles"`
}

// ParticleState holds one particle's shared state plus the fields of its
// profile variant. Variant fields of other profiles stay zero and are omitted.
type ParticleState struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Radius  float64 `json:"radius"`
	Opacity float64 `json:"opacity"`
	Color   string  `json:"color"` // #rrggbb
	Angle   float64 `json:"angle"`
	Speed   float64 `json:"speed"`
	Life    float64 `json:"life"`

	Offset      float64 `json:"offset,omitempty"`       // wave
	Flicker     float64 `json:"flicker,omitempty"`      // flame
	OrbitRadius float64 `json:"orbit_radius,omitempty"` // orbit
	OrbitSpeed  float64 `json:"orbit_speed,omitempty"`  // orbit
	Spin        float64 `json:"spin,omitempty"`         // leaf, blade
	Sway        float64 `json:"sway,omitempty"`         // leaf
	Metallic    bool    `json:"metallic,omitempty"`     // blade
}

// SaveSnapshot writes a snapshot to dir as snapshot_<tick>_<theme>.json.
// Returns the path it was saved to.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Theme != "" {
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, strings.ReplaceAll(snapshot.Theme, " ", "_"))
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}
	return &snapshot, nil
}
