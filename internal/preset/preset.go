// Package preset persists synthesis parameter snapshots in nine numbered
// slots and interpolates between them.
package preset

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/nmoreau/visynth/internal/synth"
)

// Slots is the number of preset slots (keys 1..Slots).
const Slots = 9

// Store holds the slot contents and the file they persist to.
type Store struct {
	path  string
	slots map[int]synth.Params
}

// DefaultPath returns the preset file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "visynth", "presets.json"), nil
}

// Open loads the store at path, or starts empty when the file is missing.
func Open(path string) (*Store, error) {
	s := &Store{path: path, slots: make(map[int]synth.Params)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading presets: %w", err)
	}
	if err := json.Unmarshal(data, &s.slots); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}
	return s, nil
}

// Save stores p in the slot and writes the file.
func (s *Store) Save(slot int, p synth.Params) error {
	if slot < 1 || slot > Slots {
		return fmt.Errorf("preset slot %d out of range 1..%d", slot, Slots)
	}
	s.slots[slot] = p.Clamped()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating preset dir: %w", err)
	}
	data, err := json.MarshalIndent(s.slots, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing presets: %w", err)
	}
	return nil
}

// Load returns the slot contents, clamped into valid ranges so a hand-edited
// file cannot feed the engine garbage.
func (s *Store) Load(slot int) (synth.Params, bool) {
	p, ok := s.slots[slot]
	if !ok {
		return synth.Params{}, false
	}
	return p.Clamped(), true
}

// Lerp interpolates the numeric fields between two presets. Discrete fields
// (mode, oscillator count) step: a's value below t=0.5, b's at and above.
func Lerp(a, b synth.Params, t float64) synth.Params {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	out := a
	if t >= 0.5 {
		out.Mode = b.Mode
	}
	out.Angle = lerp(a.Angle, b.Angle, t)
	out.Speed = lerp(a.Speed, b.Speed, t)
	out.Volume = lerp(a.Volume, b.Volume, t)
	out.Oscillators = int(math.Round(lerp(float64(a.Oscillators), float64(b.Oscillators), t)))
	out.MinFreq = lerp(a.MinFreq, b.MinFreq, t)
	out.MaxFreq = lerp(a.MaxFreq, b.MaxFreq, t)
	return out.Clamped()
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
