package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/deformsim/internal/analysis"
	"github.com/san-kum/deformsim/internal/audio"
	"github.com/san-kum/deformsim/internal/config"
	"github.com/san-kum/deformsim/internal/contact"
	"github.com/san-kum/deformsim/internal/mesh"
	"github.com/san-kum/deformsim/internal/metrics"
	"github.com/san-kum/deformsim/internal/sculpt"
	"github.com/san-kum/deformsim/internal/session"
	"github.com/san-kum/deformsim/internal/solver"
	"github.com/san-kum/deformsim/internal/storage"
	"github.com/san-kum/deformsim/internal/tissue"
	"github.com/san-kum/deformsim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	force      float64
	mode       string
	stlPath    string
	configFile string
	preset     string
	withAudio  bool
	// carve flags
	carveOut     string
	carveRadius  float64
	carveHeight  float64
	carveRes     int
	carveStrokes int
	// bench flags
	benchVerts int
	benchSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deformsim",
		Short: "soft tissue deformation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, []string{"liver"})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".deformsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [organ]",
		Short: "run a scripted probe session",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSession,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().Float64Var(&force, "force", config.DefaultForce, "probe force")
	runCmd.Flags().StringVar(&mode, "mode", "", "stiffness mode (hard, soft)")
	runCmd.Flags().StringVar(&stlPath, "stl", "", "load mesh from STL file")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	liveCmd := &cobra.Command{
		Use:   "live [organ]",
		Short: "interactive probing with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&force, "force", config.DefaultForce, "probe force")
	liveCmd.Flags().StringVar(&mode, "mode", "", "stiffness mode (hard, soft)")
	liveCmd.Flags().StringVar(&stlPath, "stl", "", "load mesh from STL file")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().BoolVar(&withAudio, "audio", false, "enable contact audio")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run displacement trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "ringing and settle analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [organ]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Println("organs:")
				for _, o := range config.ListOrgans() {
					fmt.Printf("  %s\n", o)
				}
				return nil
			}
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for organ: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	meshCmd := &cobra.Command{
		Use:   "mesh [stl_file]",
		Short: "inspect an STL mesh",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectMesh,
	}

	carveCmd := &cobra.Command{
		Use:   "carve",
		Short: "carve a layered cylinder and export PLY",
		RunE:  runCarve,
	}
	carveCmd.Flags().StringVar(&carveOut, "out", "carved.ply", "output PLY path")
	carveCmd.Flags().Float64Var(&carveRadius, "radius", 2.0, "cylinder radius")
	carveCmd.Flags().Float64Var(&carveHeight, "height", 6.0, "cylinder height")
	carveCmd.Flags().IntVar(&carveRes, "res", 32, "grid resolution")
	carveCmd.Flags().IntVar(&carveStrokes, "strokes", 12, "carve strokes")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the integrator",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchVerts, "verts", 10000, "vertex count")
	benchCmd.Flags().IntVar(&benchSteps, "steps", 2000, "step count")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, analyzeCmd, presetsCmd, meshCmd, carveCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges organ arg, preset, config file and flags into one
// config. Flags set on cmd override everything else.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	organ := cfg.Organ
	if len(args) > 0 {
		organ = args[0]
	}
	cfg.Organ = organ

	// Organ defaults: the liver repels radially with a cubic falloff and
	// pinned recovery/damping, the nose pushes along rest normals with a
	// gaussian falloff derived from the mode.
	switch organ {
	case "nose":
		cfg.Rule = "rest_normal"
		cfg.Falloff = "gaussian"
		cfg.Mode = "soft"
		cfg.Recovery, cfg.Damping = 0, 0
	case "liver":
		cfg.Recovery, cfg.Damping = 8, 10
	}

	if preset != "" {
		p := config.GetPreset(organ, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(organ))
		}
		// Copy so flag overrides below cannot mutate the preset table.
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if f := cmd.Flags(); f != nil {
		if f.Changed("dt") {
			cfg.Dt = dt
		}
		if f.Changed("time") {
			cfg.Duration = duration
		}
		if f.Changed("force") {
			cfg.Force = config.ClampForce(force)
		}
		if f.Changed("mode") {
			cfg.Mode = mode
		}
		if f.Changed("stl") {
			cfg.Mesh = config.MeshConfig{Source: "stl", Path: stlPath}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildEngine assembles the engine from a validated config.
func buildEngine(cfg *config.Config) (*solver.Engine, error) {
	res := contact.Resolver{
		Rule:    tissue.ParseRule(cfg.Rule),
		Falloff: tissue.ParseFalloff(cfg.Falloff),
	}
	eng := solver.NewEngine(res, tissue.ParseMode(cfg.Mode))

	// Organ presets that pin recovery and damping independently of the
	// stiffness mode override the derived scalars.
	if cfg.Recovery > 0 || cfg.Damping > 0 {
		p := eng.Params()
		if cfg.Recovery > 0 {
			p.SpringK = cfg.Recovery * tissue.SpringFactor
		}
		if cfg.Damping > 0 {
			p.Damping = cfg.Damping
		}
		eng.SetParams(p)
	}

	var positions, normals []r3.Vec
	var err error
	switch cfg.Mesh.Source {
	case "cylinder":
		positions, normals, _ = mesh.Cylinder(cfg.Mesh.Radius, cfg.Mesh.Height, cfg.Mesh.Res)
	case "stl":
		positions, normals, err = mesh.ImportSTL(cfg.Mesh.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", cfg.Mesh.Path, err)
		}
	default:
		positions, normals = mesh.Ellipsoid(cfg.Mesh.Rings, cfg.Mesh.Segments)
	}

	if err := eng.LoadMesh(positions, normals); err != nil {
		return nil, err
	}
	return eng, nil
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	path, err := session.PathFromConfig(cfg.Probe)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sess := session.New(eng, path, tissue.ParseKind(cfg.Probe.Kind), cfg.Force)
	for _, m := range metrics.Standard() {
		sess.AddMetric(m)
	}

	fmt.Printf("probing %s (%s tissue)...\n", cfg.Organ, tissue.ParseMode(cfg.Mode))
	start := time.Now()

	result, err := sess.Run(context.Background(), cfg.Dt, cfg.Duration)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Organ:    cfg.Organ,
		Mode:     cfg.Mode,
		Rule:     cfg.Rule,
		Falloff:  cfg.Falloff,
		Force:    cfg.Force,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Vertices: eng.VertexCount(),
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	var sound viz.Sound
	if withAudio {
		synth := audio.NewSynth()
		if err := synth.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "audio disabled: %v\n", err)
		} else {
			defer synth.Stop()
			sound = synth
		}
	}

	model := viz.NewModel(eng, cfg.Organ, tissue.ParseKind(cfg.Probe.Kind), cfg.Force, sound)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tORGAN\tMODE\tTIME\tDURATION\tDT\tFORCE\tVERTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%.0f\t%d\n",
			run.ID,
			run.Organ,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Force,
			run.Vertices,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("organ: %s (%s)\n", meta.Organ, meta.Mode)
	fmt.Printf("samples: %d\n\n", len(frames))

	disp := make([]float64, len(frames))
	for i, f := range frames {
		disp[i] = f.MaxDisp
	}

	graph := asciigraph.Plot(disp,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("max displacement vs time"),
	)
	fmt.Println(graph)

	contactFrames := 0
	for _, f := range frames {
		if f.Contact {
			contactFrames++
		}
	}
	fmt.Printf("\ncontact frames: %d/%d\n", contactFrames, len(frames))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	result := &session.Result{
		Times:      make([]float64, len(frames)),
		Contacts:   make([]bool, len(frames)),
		MaxDisp:    make([]float64, len(frames)),
		ProbePos:   make([]r3.Vec, len(frames)),
		StepsTaken: len(frames),
		Metrics:    meta.Metrics,
	}
	for i, f := range frames {
		result.Times[i] = f.Time
		result.Contacts[i] = f.Contact
		result.MaxDisp[i] = f.MaxDisp
		result.ProbePos[i] = r3.Vec{X: f.ProbeX, Y: f.ProbeY, Z: f.ProbeZ}
	}

	return storage.ExportJSONStdout(*meta, result)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to analyze")
	}

	disp := make([]float64, len(frames))
	for i, f := range frames {
		disp[i] = f.MaxDisp
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("organ: %s (%s)\n\n", meta.Organ, meta.Mode)

	freq := analysis.PeakFrequency(disp, meta.Dt)
	if freq > 0 {
		fmt.Printf("dominant ring: %.2f Hz\n", freq)
	} else {
		fmt.Println("dominant ring: none")
	}

	switch idx := analysis.SettleIndex(disp, 1e-3); idx {
	case -1:
		fmt.Println("settle: did not settle")
	default:
		fmt.Printf("settle: %.3fs\n", frames[idx].Time)
	}

	ps := analysis.PowerSpectrum(analysis.Detrend(disp))
	if len(ps) > 1 {
		fmt.Println()
		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("spectrum"),
		)
		fmt.Println(graph)
	}

	return nil
}

func inspectMesh(cmd *cobra.Command, args []string) error {
	positions, normals, err := mesh.ImportSTL(args[0])
	if err != nil {
		return err
	}

	min, max := positions[0], positions[0]
	for _, p := range positions {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}

	fmt.Printf("file: %s\n", args[0])
	fmt.Printf("vertices: %d\n", len(positions))
	fmt.Printf("normals: %d\n", len(normals))
	fmt.Printf("extent: (%.2f, %.2f, %.2f) to (%.2f, %.2f, %.2f)\n",
		min.X, min.Y, min.Z, max.X, max.Y, max.Z)

	return nil
}

func runCarve(cmd *cobra.Command, args []string) error {
	s := sculpt.NewCylinder(carveRadius, carveHeight, carveRes)

	// Drag the tool down the front of the cylinder.
	for i := 0; i < carveStrokes; i++ {
		frac := float64(i) / float64(carveStrokes)
		tool := r3.Vec{
			X: carveRadius,
			Z: carveHeight * (0.25 + 0.5*frac),
		}
		s.Carve(tool, carveRadius*0.6, 0.25)
	}

	if err := sculpt.SavePLY(carveOut, s); err != nil {
		return err
	}

	fmt.Printf("carved %.1f%% of the surface\n", s.CarvedFraction()*100)
	fmt.Printf("wrote %s\n", carveOut)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	rings := 1
	for rings*rings*2 < benchVerts {
		rings++
	}
	positions, normals := mesh.Ellipsoid(rings, rings*2)

	eng := solver.NewEngine(contact.ForLiver(), tissue.ModeHard)
	if err := eng.LoadMesh(positions, normals); err != nil {
		return err
	}

	it := tissue.Interaction{
		ProbePos: r3.Vec{Z: 3},
		Kind:     tissue.VolumetricProbe,
		Active:   true,
		Force:    config.DefaultForce,
	}

	fmt.Printf("stepping %d vertices for %d frames...\n", len(positions), benchSteps)
	start := time.Now()

	for i := 0; i < benchSteps; i++ {
		if _, err := eng.Step(config.DefaultDt, it); err != nil {
			return err
		}
	}

	elapsed := time.Since(start)
	perStep := elapsed / time.Duration(benchSteps)
	fmt.Printf("total: %v\n", elapsed)
	fmt.Printf("per step: %v\n", perStep)
	fmt.Printf("vertex steps/sec: %.0f\n", float64(len(positions)*benchSteps)/elapsed.Seconds())

	return nil
}
