package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cosmoviz/internal/automation"
	"github.com/san-kum/cosmoviz/internal/config"
	"github.com/san-kum/cosmoviz/internal/export"
	"github.com/san-kum/cosmoviz/internal/field"
	"github.com/san-kum/cosmoviz/internal/gui"
	"github.com/san-kum/cosmoviz/internal/logging"
	"github.com/san-kum/cosmoviz/internal/metrics"
	"github.com/san-kum/cosmoviz/internal/params"
	"github.com/san-kum/cosmoviz/internal/sim"
	"github.com/san-kum/cosmoviz/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

// loadConfig layers the config file, the positional visualizer, explicit
// flags, the preset and finally the generated shape documents.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, *log.Logger, error) {
	cfg := config.DefaultConfig()
	var normalized params.Report
	if configFile != "" {
		loaded, rep, err := config.Load(configFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg, normalized = loaded, rep
	}
	if len(args) > 0 {
		cfg.Visualizer = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("dpr") {
		cfg.DPR = dpr
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("stage") {
		cfg.Stage = stage
	}
	if flags.Changed("params") {
		cfg.ParamsDir = paramsDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if !normalized.Empty() {
		logger.Warn("config shapes adjusted", "file", configFile, "adjustments", normalized.String())
	}
	viz.SetTheme(theme)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if preset != "" {
		set, ok := config.Presets[cfg.Visualizer][preset]
		if !ok {
			return nil, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Visualizer))
		}
		cfg.Apply(set)
	}

	if cfg.ParamsDir != "" {
		src, err := params.NewFileSource(cfg.ParamsDir)
		if err != nil {
			return nil, nil, err
		}
		set, rep, err := params.Resolve(cmd.Context(), src, cfg.Visualizer)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load shape parameters: %w", err)
		}
		if !rep.Empty() {
			logger.Debug("shape parameters adjusted", "kind", cfg.Visualizer, "adjustments", rep.String())
		}
		cfg.Apply(set)
	}

	return cfg, logger, nil
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Frames: cfg.Frames,
		Width:  cfg.Width,
		Height: cfg.Height,
		DPR:    cfg.DPR,
		Seed:   cfg.Seed,
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	return viz.Run(cfg, logger)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	return gui.Run(backend, cfg, logger)
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	s := sim.New(cfg.Visualizer, cfg.Set(), logger)
	s.SetStage(cfg.Stage)

	anim := export.NewGIF(cfg.FPS)
	var svg *export.SVG
	if svgFile != "" {
		svg = export.NewSVG(cfg.Width, cfg.Height)
	}
	s.AddObserver(sim.ObserverFunc(func(frame int, f field.Field, img *image.RGBA) {
		anim.Add(img)
		if svg != nil && frame == cfg.Frames-1 {
			f.Draw(svg)
		}
	}))

	fmt.Printf("recording %d frames of %s...\n", cfg.Frames, cfg.Visualizer)
	rc := simConfig(cfg)
	if realtime {
		rc.FPS = cfg.FPS
	}
	result, err := s.Run(cmd.Context(), rc)
	if err != nil {
		return err
	}

	out := outFile
	if out == "" {
		out = cfg.Visualizer + ".gif"
	}
	if err := writeFile(out, anim.Encode); err != nil {
		return err
	}
	fmt.Printf("gif: %s\n", out)

	if pngFile != "" {
		if err := writeFile(pngFile, func(w io.Writer) error { return export.PNG(w, result.Final) }); err != nil {
			return err
		}
		fmt.Printf("png: %s\n", pngFile)
	}
	if svg != nil {
		if err := writeFile(svgFile, func(w io.Writer) error { _, err := svg.WriteTo(w); return err }); err != nil {
			return err
		}
		fmt.Printf("svg: %s\n", svgFile)
	}

	if saveStats {
		runID, err := saveRun(cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	logger.Debug("recording complete", "kind", cfg.Visualizer, "frames", result.Frames)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func saveRun(cfg *config.Config, result *sim.Result) (string, error) {
	st := export.NewStore(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}

	names := sortedKeys(result.Series)
	samples := make([]export.Sample, result.Frames)
	for i := range samples {
		samples[i] = export.Sample{Frame: i, Population: result.Population[i]}
		for _, name := range names {
			samples[i].Metrics = append(samples[i].Metrics, result.Series[name][i])
		}
	}

	meta := export.RunMetadata{
		Visualizer: cfg.Visualizer,
		Seed:       cfg.Seed,
		Width:      cfg.Width,
		Height:     cfg.Height,
		FPS:        cfg.FPS,
		Frames:     result.Frames,
		Params:     cfg.Set(),
		Metrics:    result.Metrics,
	}
	return st.Save(meta, names, samples)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if runs < 1 {
		return fmt.Errorf("runs must be positive, got %d", runs)
	}

	base := sim.New(cfg.Visualizer, cfg.Set(), logger)
	base.SetStage(cfg.Stage)
	results, err := sim.NewEnsemble(base, runs, cfg.Seed).Run(cmd.Context(), simConfig(cfg))
	if err != nil {
		return err
	}

	first := results[0]
	if pop := floats(first.Population); len(pop) > 1 {
		graph := asciigraph.Plot(pop,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("%s population, seed %d", cfg.Visualizer, first.Seed)))
		fmt.Println(graph)
	}

	fmt.Printf("\nmetrics over %d run(s) of %d frames:\n", len(results), cfg.Frames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  METRIC\tMEAN\tSTDDEV")
	for _, name := range sortedKeys(first.Metrics) {
		vals := make([]float64, len(results))
		for i, r := range results {
			vals[i] = r.Metrics[name]
		}
		mean, std := stat.MeanStdDev(vals, nil)
		if len(vals) < 2 {
			std = 0
		}
		fmt.Fprintf(w, "  %s\t%.4f\t%.4f\n", name, mean, std)
	}
	w.Flush()

	if g, ok := first.Field.(*field.Galaxy); ok {
		r := metrics.Radial(g.Distances(), g.MaxDist(), bins)
		fmt.Printf("\nradial profile (%d particles):\n", g.Len())
		fmt.Printf("  mean %.3f  median %.3f  stddev %.3f  core(<%.2f) %.1f%%\n",
			r.Mean, r.Median, r.StdDev, metrics.CoreRadius, r.CoreFraction*100)
		if len(r.Histogram) > 1 {
			fmt.Println(asciigraph.Plot(r.Histogram,
				asciigraph.Height(8),
				asciigraph.Caption("particles per ring, centre to edge")))
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := export.NewStore(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVISUALIZER\tFRAMES\tSEED\tTIMESTAMP")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", r.ID, r.Visualizer, r.Frames, r.Seed, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := export.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	names, samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("run %s has too few samples to plot", args[0])
	}

	pop := make([]float64, len(samples))
	for i, s := range samples {
		pop[i] = float64(s.Population)
	}
	fmt.Println(asciigraph.Plot(pop,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("%s population", meta.Visualizer))))

	for j, name := range names {
		series := make([]float64, len(samples))
		for i, s := range samples {
			if j < len(s.Metrics) {
				series[i] = s.Metrics[j]
			}
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(series, asciigraph.Height(5), asciigraph.Width(60), asciigraph.Caption(name)))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	kinds := params.Kinds()
	if len(args) > 0 {
		kinds = args[:1]
	}
	for _, kind := range kinds {
		presets := config.ListPresets(kind)
		if len(presets) == 0 {
			fmt.Printf("no presets for visualizer: %s\n", kind)
			continue
		}
		fmt.Printf("%s: %s\n", kind, strings.Join(presets, ", "))
	}
	return nil
}

func validateDocument(cmd *cobra.Command, args []string) error {
	path := args[0]
	kind := kindFlag
	if kind == "" {
		kind = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	raw, err := params.ParseDocument(data)
	if err != nil {
		return err
	}
	set, rep, err := params.Resolve(cmd.Context(), params.StaticSource{kind: raw}, kind)
	if err != nil {
		return err
	}

	if rep.Empty() {
		fmt.Println("# no adjustments")
	}
	for _, a := range rep {
		fmt.Printf("# %s: %s\n", a.Field, a.Reason)
	}

	var decoded any
	switch {
	case set.Starfield != nil:
		decoded = set.Starfield
	case set.Galaxy != nil:
		decoded = set.Galaxy
	case set.Quantum != nil:
		decoded = set.Quantum
	case set.Stages != nil:
		decoded = set.Stages
	}
	out, err := params.Encode(decoded)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	if sc.Name != "" {
		fmt.Printf("%s: %s\n", sc.Name, sc.Description)
	}

	results, err := automation.RunScenario(cmd.Context(), sc, cfg, logger)
	for i, r := range results {
		fmt.Printf("  step %d: %d frames, peak population %.0f\n", i+1, r.Frames, r.Metrics["peak_population"])
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	sweep := &automation.ParameterSweep{
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}
	results, err := automation.RunSweep(cmd.Context(), sweep, cfg, logger)
	if err != nil {
		return err
	}

	names := sortedKeys(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(sweepParam), strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		row := []string{fmt.Sprintf("%.4g", r.ParamValue)}
		if r.Adjusted {
			row[0] += "*"
		}
		for _, name := range names {
			row = append(row, fmt.Sprintf("%.4f", r.Metrics[name]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println("* adjusted during validation")
	return nil
}

func floats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
