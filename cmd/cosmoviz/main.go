package main

import (
	"fmt"
	"os"

	"github.com/san-kum/cosmoviz/internal/config"
	"github.com/san-kum/cosmoviz/internal/gui"
	"github.com/san-kum/cosmoviz/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	paramsDir  string
	logLevel   string
	seed       uint64
	width      float64
	height     float64
	dpr        float64
	fps        int
	frames     int
	stage      int
	theme      string
	// window
	backend string
	// record
	outFile   string
	pngFile   string
	svgFile   string
	saveStats bool
	realtime  bool
	// stats
	runs int
	bins int
	// validate
	kindFlag string
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "cosmoviz",
		Short:         "procedural cosmic particle visualizers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			return viz.RunInteractive(cfg, logger)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".cosmoviz", "data directory for saved runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use a named shape preset")
	pf.StringVar(&paramsDir, "params", "", "directory of generated shape documents (<kind>.yaml|json)")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	pf.Uint64Var(&seed, "seed", config.DefaultSeed, "random seed")
	pf.Float64Var(&width, "width", config.DefaultWidth, "viewport width")
	pf.Float64Var(&height, "height", config.DefaultHeight, "viewport height")
	pf.Float64Var(&dpr, "dpr", config.DefaultDPR, "device pixel ratio")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.IntVar(&frames, "frames", config.DefaultFrames, "frames to render headlessly")
	pf.IntVar(&stage, "stage", 0, "initial stellar stage")
	pf.StringVar(&theme, "theme", viz.ThemeNames()[0], fmt.Sprintf("terminal theme %v", viz.ThemeNames()))

	liveCmd := &cobra.Command{
		Use:   "live [visualizer]",
		Short: "run a visualizer in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}

	windowCmd := &cobra.Command{
		Use:   "window [visualizer]",
		Short: "run a visualizer in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWindow,
	}
	windowCmd.Flags().StringVar(&backend, "backend", gui.Backends[0], fmt.Sprintf("window backend %v", gui.Backends))

	recordCmd := &cobra.Command{
		Use:   "record [visualizer]",
		Short: "render frames headlessly to a GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRecord,
	}
	recordCmd.Flags().StringVarP(&outFile, "out", "o", "", "GIF output path (default <visualizer>.gif)")
	recordCmd.Flags().StringVar(&pngFile, "png", "", "also write the last frame as PNG")
	recordCmd.Flags().StringVar(&svgFile, "svg", "", "also write the last frame as SVG")
	recordCmd.Flags().BoolVar(&saveStats, "stats", false, "save per-frame metrics to the data directory")
	recordCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames at --fps instead of rendering flat out")

	statsCmd := &cobra.Command{
		Use:   "stats [visualizer]",
		Short: "render headlessly and summarize the particle population",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStats,
	}
	statsCmd.Flags().IntVar(&runs, "runs", 1, "number of seeds to run in parallel")
	statsCmd.Flags().IntVar(&bins, "bins", 10, "radial histogram rings (galaxy)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [visualizer]",
		Short: "list shape presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "decode a shape document and print what the renderer would use",
		Args:  cobra.ExactArgs(1),
		RunE:  validateDocument,
	}
	validateCmd.Flags().StringVar(&kindFlag, "kind", "", "visualizer kind (default from file name)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of recordings",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [visualizer]",
		Short: "render across a range of one shape parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "shape parameter, e.g. spiral_tightness")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.MarkFlagRequired("param")

	rootCmd.AddCommand(liveCmd, windowCmd, recordCmd, statsCmd, listCmd, plotCmd, presetsCmd, validateCmd, scenarioCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
