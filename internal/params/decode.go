package params

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/cosmoviz/internal/palette"
)

// Raw is an untyped key/value document as produced by a generator.
type Raw = map[string]any

// Adjustment records one value replaced or clamped at the boundary.
type Adjustment struct {
	Field  string
	Reason string
}

type Report []Adjustment

func (r *Report) add(field, format string, args ...any) {
	*r = append(*r, Adjustment{Field: field, Reason: fmt.Sprintf(format, args...)})
}

func (r Report) Empty() bool { return len(r) == 0 }

func (r Report) String() string {
	parts := make([]string, len(r))
	for i, a := range r {
		parts[i] = a.Field + ": " + a.Reason
	}
	return strings.Join(parts, "; ")
}

// DecodeStarfield maps raw data onto Starfield.
func DecodeStarfield(raw Raw) (Starfield, Report) {
	var rep Report
	def := DefaultStarfield()
	out := Starfield{
		ParticleCount: intField(raw, &rep, "particleCount", def.ParticleCount, 0, MaxStarfield),
		Colors:        colorList(raw, &rep, "colors", def.Colors),
	}
	return out, rep
}

// DecodeGalaxy maps raw data onto Galaxy, clamping every ratio to [0,1].
func DecodeGalaxy(raw Raw) (Galaxy, Report) {
	var rep Report
	def := DefaultGalaxy()

	out := Galaxy{
		Type:            galaxyType(raw, &rep),
		ParticleCount:   intField(raw, &rep, "particleCount", def.ParticleCount, 0, MaxParticles),
		CoreColor:       colorField(raw, &rep, "coreColor", def.CoreColor),
		ArmColor:        colorField(raw, &rep, "armColor", def.ArmColor),
		DustColor:       colorField(raw, &rep, "dustColor", def.DustColor),
		CoreSize:        ratioField(raw, &rep, "coreSize", def.CoreSize),
		Ellipticity:     ratioField(raw, &rep, "ellipticity", def.Ellipticity),
		ArmCount:        intField(raw, &rep, "armCount", def.ArmCount, 0, MaxArms),
		SpiralTightness: floatField(raw, &rep, "spiralTightness", def.SpiralTightness, 0, MaxTightness),
		ColorDispersion: ratioField(raw, &rep, "colorDispersion", def.ColorDispersion),
	}
	return out, rep
}

// DecodeQuantum maps raw data onto Quantum. Missing values become 0, which
// renders an empty vacuum rather than failing.
func DecodeQuantum(raw Raw) (Quantum, Report) {
	var rep Report
	out := Quantum{
		EnergyLevel:      ratioField(raw, &rep, "energyLevel", 0),
		FluctuationScale: ratioField(raw, &rep, "fluctuationScale", 0),
	}
	return out, rep
}

// DecodeStages maps raw data onto a StageSequence. Entries that are not
// objects are dropped.
func DecodeStages(raw Raw) (StageSequence, Report) {
	var rep Report
	list, ok := lookup(raw, "stages")
	if !ok {
		rep.add("stages", "missing, sequence is empty")
		return StageSequence{}, rep
	}
	items, ok := list.([]any)
	if !ok {
		rep.add("stages", "not a list (%T)", list)
		return StageSequence{}, rep
	}

	seq := StageSequence{Stages: make([]Stage, 0, len(items))}
	for i, item := range items {
		m, ok := asMap(item)
		if !ok {
			rep.add(fmt.Sprintf("stages[%d]", i), "not an object, dropped")
			continue
		}
		var sub Report
		st := Stage{
			Name:           stringField(m, &sub, "name", fmt.Sprintf("Stage %d", i+1)),
			Duration:       stringField(m, &sub, "duration", ""),
			Temperature:    stringField(m, &sub, "temperature", ""),
			Description:    stringField(m, &sub, "description", ""),
			Color:          colorField(m, &sub, "color", "#FFFFFF"),
			CoronaColor:    colorField(m, &sub, "coronaColor", "#FFFFFF"),
			RelativeSize:   floatField(m, &sub, "relativeSize", 1, 0, MaxStageSize),
			CoronaSize:     floatField(m, &sub, "coronaSize", 0, 0, MaxCoronaSize),
			Emissivity:     ratioField(m, &sub, "emissivity", 0),
			SurfaceTexture: textureField(m, &sub),
		}
		for _, a := range sub {
			rep = append(rep, Adjustment{Field: fmt.Sprintf("stages[%d].%s", i, a.Field), Reason: a.Reason})
		}
		seq.Stages = append(seq.Stages, st)
	}
	return seq, rep
}

// lookup finds key by its camelCase name or its snake_case spelling.
func lookup(raw Raw, key string) (any, bool) {
	if raw == nil {
		return nil, false
	}
	if v, ok := raw[key]; ok && v != nil {
		return v, true
	}
	if v, ok := raw[snake(key)]; ok && v != nil {
		return v, true
	}
	return nil, false
}

func snake(s string) string {
	var b strings.Builder
	for i, c := range s {
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(c + ('a' - 'A'))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func asMap(v any) (Raw, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(Raw, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case interface{ Float64() (float64, error) }:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func floatField(raw Raw, rep *Report, key string, def, lo, hi float64) float64 {
	v, ok := lookup(raw, key)
	if !ok {
		rep.add(key, "missing, using %g", def)
		return def
	}
	f, ok := number(v)
	if !ok {
		rep.add(key, "not a number (%v), using %g", v, def)
		return def
	}
	if f < lo {
		rep.add(key, "%g below %g, clamped", f, lo)
		return lo
	}
	if f > hi {
		rep.add(key, "%g above %g, clamped", f, hi)
		return hi
	}
	return f
}

func ratioField(raw Raw, rep *Report, key string, def float64) float64 {
	return floatField(raw, rep, key, def, 0, 1)
}

func intField(raw Raw, rep *Report, key string, def, lo, hi int) int {
	f := floatField(raw, rep, key, float64(def), float64(lo), float64(hi))
	return int(math.Round(f))
}

func stringField(raw Raw, rep *Report, key, def string) string {
	v, ok := lookup(raw, key)
	if !ok {
		if def != "" {
			rep.add(key, "missing, using %q", def)
		}
		return def
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprint(v)
	}
	return s
}

func colorField(raw Raw, rep *Report, key, def string) string {
	v, ok := lookup(raw, key)
	if !ok {
		rep.add(key, "missing, using %s", def)
		return def
	}
	s, ok := v.(string)
	if !ok || !palette.Valid(strings.TrimSpace(s)) {
		rep.add(key, "malformed colour %v, using %s", v, def)
		return def
	}
	return strings.TrimSpace(s)
}

func colorList(raw Raw, rep *Report, key string, def []string) []string {
	v, ok := lookup(raw, key)
	if !ok {
		return def
	}
	items, ok := v.([]any)
	if !ok {
		rep.add(key, "not a list, using defaults")
		return def
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok || !palette.Valid(s) {
			rep.add(fmt.Sprintf("%s[%d]", key, i), "malformed colour %v, dropped", item)
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		rep.add(key, "no usable colours, using defaults")
		return def
	}
	return out
}

func galaxyType(raw Raw, rep *Report) string {
	v, _ := lookup(raw, "galaxyType")
	if v == nil {
		v, _ = lookup(raw, "type")
	}
	s, _ := v.(string)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spiral":
		return Spiral
	case "elliptical":
		return Elliptical
	case "irregular":
		return Irregular
	}
	rep.add("galaxyType", "unknown type %q, using %s", s, Spiral)
	return Spiral
}

func textureField(raw Raw, rep *Report) string {
	v, _ := lookup(raw, "surfaceTexture")
	s, _ := v.(string)
	switch t := strings.ToLower(strings.TrimSpace(s)); t {
	case TextureSmooth, TextureTurbulent, TextureCrystalline, TextureNebular, TextureBlackHole:
		return t
	case "black hole", "black_hole":
		return TextureBlackHole
	}
	rep.add("surfaceTexture", "unknown texture %q, using %s", s, TextureSmooth)
	return TextureSmooth
}
