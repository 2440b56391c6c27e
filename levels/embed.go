package levels

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/milk9111/zonegen/levelgen"
	"gopkg.in/yaml.v3"
)

const DefaultPreset = "default"

var (
	ErrPresetNotFound    = errors.New("levels: preset not found")
	ErrInvalidPresetName = errors.New("levels: invalid preset name")
)

// PresetDir is checked before the embedded presets so edits on disk win.
var PresetDir = filepath.Join("levels", "presets")

//go:embed presets/*.yaml
var PresetsFS embed.FS

// Load returns the raw YAML for a preset.
func Load(name string) ([]byte, error) {
	clean := cleanPresetName(name)
	if clean == "" {
		clean = DefaultPreset
	}
	if !validPresetName(clean) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPresetName, name)
	}
	if data, err := os.ReadFile(diskPresetPath(clean)); err == nil {
		return data, nil
	}
	data, err := PresetsFS.ReadFile(path.Join("presets", clean+".yaml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
		}
		return nil, fmt.Errorf("read preset %q: %w", name, err)
	}
	return data, nil
}

// LoadConfig reads and validates a preset.
func LoadConfig(name string) (levelgen.Config, error) {
	data, err := Load(name)
	if err != nil {
		return levelgen.Config{}, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return levelgen.Config{}, fmt.Errorf("preset %q: %w", name, err)
	}
	return cfg, nil
}

// ParseConfig decodes a preset document. Fields the document leaves out keep
// their levelgen.DefaultConfig values.
func ParseConfig(data []byte) (levelgen.Config, error) {
	cfg := levelgen.DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return levelgen.Config{}, fmt.Errorf("decode preset: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return levelgen.Config{}, err
	}
	return cfg, nil
}

// Presets lists the embedded preset names, sorted.
func Presets() []string {
	entries, err := PresetsFS.ReadDir("presets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isPresetFile(e.Name()) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

func ModTime(name string) (time.Time, bool) {
	clean := cleanPresetName(name)
	if !validPresetName(clean) {
		return time.Time{}, false
	}
	info, err := os.Stat(diskPresetPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// PresetName maps a watched file path back to the preset it holds.
func PresetName(file string) string {
	return cleanPresetName(filepath.Base(file))
}

func cleanPresetName(name string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "presets/"); ok {
		s = after
	}
	if ext := path.Ext(s); ext == ".yaml" || ext == ".yml" {
		s = strings.TrimSuffix(s, ext)
	}
	return s
}

// validPresetName accepts only a bare basename, so a preset can never resolve
// outside PresetDir.
func validPresetName(clean string) bool {
	return clean != "" && clean != "." &&
		!strings.Contains(clean, "..") &&
		!strings.ContainsAny(clean, `/\:`)
}

func diskPresetPath(clean string) string {
	return filepath.Join(PresetDir, filepath.FromSlash(clean)+".yaml")
}
