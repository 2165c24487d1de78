package params

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Visualizer kinds a Source can be asked for.
const (
	KindStarfield = "starfield"
	KindGalaxy    = "galaxy"
	KindQuantum   = "quantum"
	KindStellar   = "stellar"
	KindTimeline  = "timeline"
)

// Kinds lists every visualizer kind in display order.
func Kinds() []string {
	return []string{KindStarfield, KindGalaxy, KindQuantum, KindStellar, KindTimeline}
}

// Source produces untyped shape data for a visualizer. It stands in for the
// generative service; its output is never trusted and always goes through
// the Decode functions.
type Source interface {
	Fetch(ctx context.Context, kind string) (Raw, error)
}

// FileSource reads one YAML or JSON document per kind from a directory,
// e.g. galaxy.json or stellar.yaml.
type FileSource struct {
	dir string
}

// NewFileSource fails fast when dir is empty or not a directory.
func NewFileSource(dir string) (*FileSource, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrSourceConfig)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceConfig, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceConfig, dir)
	}
	return &FileSource{dir: dir}, nil
}

func (s *FileSource) Fetch(ctx context.Context, kind string) (Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !knownKind(kind) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	names := []string{kind}
	if kind == KindTimeline {
		names = append(names, KindStellar)
	}
	for _, name := range names {
		for _, ext := range []string{".yaml", ".yml", ".json"} {
			path := filepath.Join(s.dir, name+ext)
			data, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, err
			}
			return ParseDocument(data)
		}
	}
	return nil, fs.ErrNotExist
}

// StaticSource serves fixed documents; used by presets and tests.
type StaticSource map[string]Raw

func (s StaticSource) Fetch(ctx context.Context, kind string) (Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, ok := s[kind]
	if !ok && kind == KindTimeline {
		raw, ok = s[KindStellar]
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return raw, nil
}

// ParseDocument decodes a YAML or JSON object into Raw.
func ParseDocument(data []byte) (Raw, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	m, ok := asMap(doc)
	if !ok {
		return nil, fmt.Errorf("%w: top level is %T", ErrMalformed, doc)
	}
	return m, nil
}

// Resolve fetches kind from src and decodes it into a Set. A missing
// document is not an error: the visualizer falls back to its defaults.
func Resolve(ctx context.Context, src Source, kind string) (Set, Report, error) {
	var set Set
	if !knownKind(kind) {
		return set, nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if src == nil {
		return set, nil, nil
	}
	raw, err := src.Fetch(ctx, kind)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrUnknownKind) {
		return set, nil, nil
	}
	if err != nil {
		return set, nil, err
	}
	var rep Report
	switch kind {
	case KindStarfield:
		p, r := DecodeStarfield(raw)
		set.Starfield, rep = &p, r
	case KindGalaxy:
		p, r := DecodeGalaxy(raw)
		set.Galaxy, rep = &p, r
	case KindQuantum:
		p, r := DecodeQuantum(raw)
		set.Quantum, rep = &p, r
	case KindStellar, KindTimeline:
		p, r := DecodeStages(raw)
		set.Stages, rep = &p, r
	}
	return set, rep, nil
}

// Encode renders a decoded value back to YAML, e.g. for the validate command.
func Encode(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// ToRaw converts a typed value into the untyped form the decoders accept.
// Presets use it so they pass through the same boundary as generated data.
func ToRaw(v any) (Raw, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return ParseDocument(data)
}

func knownKind(kind string) bool {
	switch kind {
	case KindStarfield, KindGalaxy, KindQuantum, KindStellar, KindTimeline:
		return true
	}
	return false
}
