package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is a blockout made of axis aligned boxes. Units are centimetres,
// Z is up.
type Level struct {
	Name  string `json:"name"`
	Spawn Spawn  `json:"spawn"`
	Boxes []Box  `json:"boxes"`
}

type Spawn struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Z   float64 `json:"z"`
	Yaw float64 `json:"yaw"`
}

type Box struct {
	Name string     `json:"name,omitempty"`
	Min  [3]float64 `json:"min"`
	Max  [3]float64 `json:"max"`
	// Overlap boxes are reported by sweeps but never stop them.
	Overlap bool   `json:"overlap,omitempty"`
	Color   string `json:"color,omitempty"`
}

// Validate rejects boxes that are flat along any axis.
func (l *Level) Validate() error {
	for i, b := range l.Boxes {
		for axis := 0; axis < 3; axis++ {
			if b.Min[axis] == b.Max[axis] {
				return fmt.Errorf("%w: box %d (%s) has zero extent on axis %d", ErrInvalidLevel, i, b.Name, axis)
			}
		}
	}
	return nil
}

// LoadLevel reads levels/<name> from disk when present, otherwise the
// embedded copy.
func LoadLevel(name string) (*Level, error) {
	if data, err := os.ReadFile(filepath.Join("levels", name)); err == nil {
		return parseLevel(data)
	}
	return LoadLevelFromFS(name)
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return parseLevel(data)
}

func parseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}
