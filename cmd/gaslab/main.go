package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kvasha/gaslab/internal/archive"
	"github.com/kvasha/gaslab/internal/config"
	"github.com/kvasha/gaslab/internal/gas"
	"github.com/kvasha/gaslab/internal/viz"
)

var (
	dbPath      string
	configFile  string
	preset      string
	temperature float64
	population  int
	sizeScale   float64
	dt          float64
	duration    float64
	seed        int64
	exportAs    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gaslab",
		Short: "2d gas ensemble physics lab",
		Run: func(cmd *cobra.Command, args []string) {
			// Default to the live view when no subcommand is given.
			if err := runLive(cmd, args); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", ".gaslab.db", "run archive database")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and archive it",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration (s)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export one run's samples to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportAs, "format", "csv", "output format (csv or json)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-10s T=%gK N=%d size=%g\n", name, cfg.Temperature, cfg.Population, cfg.SizeScale)
			}
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the engine across populations and timesteps",
		RunE:  benchEngine,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, exportCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&temperature, "temperature", config.DefaultTemperature, "temperature (K)")
	cmd.Flags().IntVar(&population, "population", config.DefaultPopulation, "particle count")
	cmd.Flags().Float64Var(&sizeScale, "size", config.DefaultSizeScale, "particle size scale")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "frame timestep (s)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time)")
}

// resolveConfig merges preset, config file, and explicit flags in
// increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
	}

	if cmd.Flags().Changed("temperature") {
		cfg.Temperature = temperature
	}
	if cmd.Flags().Changed("population") {
		cfg.Population = population
	}
	if cmd.Flags().Changed("size") {
		cfg.SizeScale = sizeScale
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, nil
}

func newEngine(cfg *config.Config) (*gas.Engine, error) {
	e := gas.New(gas.Config{
		Temperature: cfg.Temperature,
		Population:  cfg.Population,
		SizeScale:   cfg.SizeScale,
		Seed:        cfg.Seed,
	})
	if err := e.Init(cfg.Region.Width, cfg.Region.Height); err != nil {
		return nil, err
	}
	return e, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	e, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer e.Destroy()

	frames := int(cfg.Duration / cfg.Dt)
	samples := make([]archive.Sample, 0, frames)

	fmt.Printf("running gas simulation: %s\n", e.StateDescription())
	start := time.Now()

	for frame := 0; frame < frames; frame++ {
		e.Update(cfg.Dt, nil)
		f := e.Observables()
		ke := 0.0
		if len(f.Species) > 0 {
			// Equipartition: same 1.5kT for every species.
			ke = f.Species[0].MeanKineticEnergy
		}
		samples = append(samples, archive.Sample{
			Frame:         frame,
			Time:          f.Time,
			Pressure:      f.Pressure,
			WallImpulse:   f.WallImpulse,
			MeanSpeed:     f.MeanSpeed(),
			TheorySpeed:   f.TheoreticalMeanSpeed(),
			KineticEnergy: ke,
		})
	}
	elapsed := time.Since(start)

	db, err := archive.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	run := archive.Run{
		ID:          archive.NewRunID(),
		CreatedAt:   time.Now().UTC(),
		Preset:      preset,
		Temperature: cfg.Temperature,
		Population:  cfg.Population,
		SizeScale:   cfg.SizeScale,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Seed:        cfg.Seed,
		Frames:      frames,
	}
	if err := db.SaveRun(run, samples); err != nil {
		return err
	}

	final := e.Observables()
	fmt.Printf("completed %s frames in %v\n", humanize.Comma(int64(frames)), elapsed)
	fmt.Printf("run id: %s\n", run.ID)
	fmt.Printf("final: %s\n", e.StateDescription())
	fmt.Printf("mean speed: %.1f px/s (theory %.1f)\n", final.MeanSpeed(), final.TheoreticalMeanSpeed())
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	e, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer e.Destroy()
	return viz.RunLive(e, cfg.Dt)
}

func listRuns(cmd *cobra.Command, args []string) error {
	db, err := archive.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tPRESET\tTEMP\tPOP\tSIZE\tDT\tFRAMES")
	for _, run := range runs {
		name := run.Preset
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fK\t%d\t%.2f\t%.4fs\t%s\n",
			run.ID,
			humanize.Time(run.CreatedAt),
			name,
			run.Temperature,
			run.Population,
			run.SizeScale,
			run.Dt,
			humanize.Comma(int64(run.Frames)),
		)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	db, err := archive.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := db.LoadRun(args[0])
	if err != nil {
		return err
	}
	samples, err := db.LoadSamples(run.ID)
	if err != nil {
		return err
	}

	switch exportAs {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Run     *archive.Run     `json:"run"`
			Samples []archive.Sample `json:"samples"`
		}{run, samples})
	case "csv":
		w := csv.NewWriter(os.Stdout)
		defer w.Flush()
		header := []string{"frame", "time", "pressure", "wall_impulse", "mean_speed", "theory_speed", "kinetic_energy"}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, s := range samples {
			row := []string{
				strconv.Itoa(s.Frame),
				strconv.FormatFloat(s.Time, 'f', 6, 64),
				strconv.FormatFloat(s.Pressure, 'f', 6, 64),
				strconv.FormatFloat(s.WallImpulse, 'e', 6, 64),
				strconv.FormatFloat(s.MeanSpeed, 'f', 6, 64),
				strconv.FormatFloat(s.TheorySpeed, 'f', 6, 64),
				strconv.FormatFloat(s.KineticEnergy, 'e', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s (csv or json)", exportAs)
	}
}

func benchEngine(cmd *cobra.Command, args []string) error {
	populations := []int{50, 100, 200, 300}
	dts := []float64{1.0 / 30, 1.0 / 60, 1.0 / 120}
	const benchFrames = 600

	fmt.Println("benchmarking gas engine")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POP\tDT\tFRAMES\tTIME\tFRAMES/SEC")

	for _, pop := range populations {
		for _, step := range dts {
			e := gas.New(gas.Config{Population: pop, Seed: 42})
			if err := e.Init(config.DefaultWidth, config.DefaultHeight); err != nil {
				return err
			}

			start := time.Now()
			for i := 0; i < benchFrames; i++ {
				e.Update(step, nil)
			}
			elapsed := time.Since(start)
			e.Destroy()

			fmt.Fprintf(w, "%d\t%.4fs\t%d\t%v\t%.0f\n",
				pop, step, benchFrames, elapsed,
				float64(benchFrames)/elapsed.Seconds())
		}
	}
	return w.Flush()
}
