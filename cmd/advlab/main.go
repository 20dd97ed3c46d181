package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vkarel/advlab/internal/analysis"
	"github.com/vkarel/advlab/internal/compute"
	"github.com/vkarel/advlab/internal/experiment"
	"github.com/vkarel/advlab/internal/export"
	"github.com/vkarel/advlab/internal/field"
	"github.com/vkarel/advlab/internal/scenario"
	"github.com/vkarel/advlab/internal/storage"
	"github.com/vkarel/advlab/internal/viz"
)

var log = logrus.New()

var (
	dataDir    string
	verbose    bool
	workers    int
	configFile string
	schemeName string
	cfl        float64
	dt         float64
	duration   float64
	maxStep    float64
	seed       int64
	snapEvery  int
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepN     int
	sweepStat  string
	// trials
	trialCount int
	perturb    float64
	// tune
	tuneMin float64
	tuneMax float64
	tuneN   int
	// growth
	growthEps float64
	// run
	jsonOut string
	csvOut  string
	// export-svg
	svgWidth   int
	svgHeight  int
	svgOut     string
	svgTheme   string
	svgBraille bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "advlab",
		Short: "advection scheme laboratory",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			if workers > 0 {
				compute.SetWorkers(workers)
				log.WithField("workers", compute.Workers()).Debug("worker pool sized")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand opens the live view on the default scenario.
			return viz.Run(scenario.Default())
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".advlab", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "parallel workers (0 = all cores)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&jsonOut, "json", "", "also write the run as JSON to this file")
	runCmd.Flags().StringVar(&csvOut, "csv", "", "also write the frames as CSV to this file")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "watch a scenario in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scn, err := resolveScenario(cmd, args)
			if err != nil {
				return err
			}
			return viz.Run(scn)
		},
	}
	addScenarioFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [scheme...]",
		Short: "run the same scenario across schemes",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareSchemes,
	}
	addScenarioFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "sweep one scenario parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepScenario,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "cfl", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "lowest value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.2, "highest value")
	sweepCmd.Flags().IntVar(&sweepN, "points", 8, "sample count")
	sweepCmd.Flags().StringVar(&sweepStat, "metric", "mass_drift", "metric to plot")

	trialsCmd := &cobra.Command{
		Use:   "trials [preset]",
		Short: "run a perturbed ensemble",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrials,
	}
	addScenarioFlags(trialsCmd)
	trialsCmd.Flags().IntVar(&trialCount, "trials", 16, "ensemble size")
	trialsCmd.Flags().Float64Var(&perturb, "perturb", 0.1, "relative perturbation")

	tuneCmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "find the largest stable CFL number",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tuneScenario,
	}
	addScenarioFlags(tuneCmd)
	tuneCmd.Flags().Float64Var(&tuneMin, "min", 0.2, "lowest CFL")
	tuneCmd.Flags().Float64Var(&tuneMax, "max", 2.0, "highest CFL")
	tuneCmd.Flags().IntVar(&tuneN, "points", 8, "coarse samples")

	growthCmd := &cobra.Command{
		Use:   "growth [preset]",
		Short: "estimate the perturbation growth rate",
		Args:  cobra.MaximumNArgs(1),
		RunE:  growthScenario,
	}
	addScenarioFlags(growthCmd)
	growthCmd.Flags().Float64Var(&growthEps, "eps", 1e-8, "initial perturbation size")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "spatial power spectrum of the final state",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSpectrum,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print stored frames as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final state as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default stdout)")
	exportSVGCmd.Flags().StringVar(&svgTheme, "theme", "", "color theme (default current)")
	exportSVGCmd.Flags().BoolVar(&svgBraille, "braille", false, "render a 1D profile as terminal-style dots")

	rootCmd.AddCommand(runCmd, liveCmd, compareCmd, sweepCmd, trialsCmd, tuneCmd,
		growthCmd, presetsCmd, listCmd, plotCmd, spectrumCmd, exportCmd,
		exportCSVCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&schemeName, "scheme", "upwind", "advection scheme")
	cmd.Flags().Float64Var(&cfl, "cfl", scenario.DefaultCFL, "CFL number")
	cmd.Flags().Float64Var(&dt, "dt", 0, "fixed timestep (0 = automatic)")
	cmd.Flags().Float64Var(&duration, "time", scenario.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&maxStep, "max-step", scenario.DefaultMaxStep, "automatic step ceiling")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = clock)")
	cmd.Flags().IntVar(&snapEvery, "snapshots", 0, "record a frame every N steps")
}

// resolveScenario builds the scenario for a command: the named preset or
// the default, overridden by a config file, overridden by any flag the
// user actually set.
func resolveScenario(cmd *cobra.Command, args []string) (*scenario.Scenario, error) {
	scn := scenario.Default()
	if len(args) > 0 {
		s, err := scenario.Get(args[0])
		if err != nil {
			return nil, err
		}
		scn = s
	}
	if configFile != "" {
		s, err := scenario.Load(configFile)
		if err != nil {
			return nil, err
		}
		scn = s
	}

	fl := cmd.Flags()
	if fl.Changed("scheme") {
		base, limited := strings.CutSuffix(schemeName, "-limited")
		scn.Scheme, scn.Limiter = base, limited
	}
	if fl.Changed("cfl") {
		scn.CFL = cfl
	}
	if fl.Changed("dt") {
		scn.Dt = dt
	}
	if fl.Changed("time") {
		scn.Duration = duration
	}
	if fl.Changed("max-step") {
		scn.MaxStep = maxStep
	}
	if fl.Changed("seed") {
		scn.Seed = seed
	}
	if fl.Changed("snapshots") {
		scn.SnapshotEvery = snapEvery
	}
	return scn, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scn, err := resolveScenario(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"scenario": scn.Name,
		"scheme":   schemeLabel(scn),
		"grid":     dimsLabel(scn.Grid.Dims),
	}).Info("starting run")

	rec := storage.NewRecorder()
	out := experiment.Execute(cmd.Context(), scn, "", rec)
	if out.Err != nil {
		return out.Err
	}

	log.WithFields(logrus.Fields{
		"steps":     out.Steps,
		"sub_steps": out.SubSteps,
		"elapsed":   out.Elapsed.Round(time.Microsecond),
	}).Info("run complete")

	id, err := st.Save(scn, out, rec)
	if err != nil {
		return err
	}
	log.WithField("id", id).Info("run saved")

	if jsonOut != "" {
		if err := storage.ExportJSONFile(jsonOut, scn, out); err != nil {
			return err
		}
		log.WithField("file", jsonOut).Info("json written")
	}
	if csvOut != "" {
		if err := storage.ExportCSVFile(csvOut, out); err != nil {
			return err
		}
		log.WithField("file", csvOut).Info("csv written")
	}

	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(out.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, out.Metrics[name])
	}

	if len(scn.Grid.Dims) == 1 && out.Final.Len() > 0 {
		graph := asciigraph.Plot(out.Final.Data(),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("final profile, t=%.3f", out.Time)),
		)
		fmt.Println("\n" + graph)
	}
	return nil
}

func compareSchemes(cmd *cobra.Command, args []string) error {
	scn, err := resolveScenario(cmd, args[:1])
	if err != nil {
		return err
	}
	schemes := args[1:]
	if len(schemes) == 0 {
		schemes = experiment.DefaultSchemes
	}

	log.WithFields(logrus.Fields{
		"scenario": scn.Name,
		"schemes":  len(schemes),
	}).Info("comparing schemes")

	outs := experiment.Compare(cmd.Context(), scn, schemes)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCHEME\tSTEPS\tMASS_DRIFT\tOVERSHOOT\tVARIANCE\tPEAK\tTIME")
	for _, out := range outs {
		if out.Err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", out.Label, out.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%.3e\t%.3e\t%.4f\t%.4f\t%v\n",
			out.Label,
			out.Steps,
			out.Metrics["mass_drift"],
			out.Metrics["overshoot"],
			out.Metrics["variance_retention"],
			out.Metrics["peak"],
			out.Elapsed.Round(time.Microsecond),
		)
	}
	return w.Flush()
}

func sweepScenario(cmd *cobra.Command, args []string) error {
	scn, err := resolveScenario(cmd, args)
	if err != nil {
		return err
	}

	sw := experiment.Sweep{Param: sweepParam, Min: sweepMin, Max: sweepMax, Steps: sweepN}
	points, err := sw.Run(cmd.Context(), scn)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"param":  sweepParam,
		"points": len(points),
	}).Info("sweep complete")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTEPS\tMASS_DRIFT\tOVERSHOOT\tPEAK\n", strings.ToUpper(sweepParam))
	curve := make([]float64, 0, len(points))
	for _, pt := range points {
		if pt.Err != nil {
			fmt.Fprintf(w, "%.4g\terror: %v\n", pt.Value, pt.Err)
			continue
		}
		curve = append(curve, pt.Metrics[sweepStat])
		fmt.Fprintf(w, "%.4g\t%d\t%.3e\t%.3e\t%.4f\n",
			pt.Value, pt.Steps, pt.Metrics["mass_drift"], pt.Metrics["overshoot"], pt.Metrics["peak"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(curve) > 1 {
		graph := asciigraph.Plot(curve,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("%s vs %s", sweepStat, sweepParam)),
		)
		fmt.Println("\n" + graph)
	}
	return nil
}

func runTrials(cmd *cobra.Command, args []string) error {
	scn, err := resolveScenario(cmd, args)
	if err != nil {
		return err
	}

	results, stableCount := experiment.RunTrials(cmd.Context(), scn, experiment.TrialsConfig{
		Count:        trialCount,
		Perturbation: perturb,
		Seed:         seed,
	})
	if len(results) == 0 {
		return fmt.Errorf("no trials ran")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tFLOW\tAMP\tSTABLE\tMASS_DRIFT\tPEAK")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%d\t%.3f\t%.3f\terror: %v\n", r.Trial, r.FlowScale, r.AmpScale, r.Err)
			continue
		}
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%v\t%.3e\t%.4f\n",
			r.Trial, r.FlowScale, r.AmpScale, r.Stable, r.Metrics["mass_drift"], r.Metrics["peak"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	frac := 100 * float64(stableCount) / float64(len(results))
	fmt.Printf("\nstable: %d/%d (%.0f%%)\n", stableCount, len(results), frac)

	log.WithFields(logrus.Fields{
		"trials": len(results),
		"stable": stableCount,
	}).Info("ensemble complete")
	return nil
}

func tuneScenario(cmd *cobra.Command, args []string) error {
	scn, err := resolveScenario(cmd, args)
	if err != nil {
		return err
	}

	best, points, err := experiment.TuneCFL(cmd.Context(), scn, tuneMin, tuneMax, tuneN)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CFL\tSTEPS\tPEAK\tOVERSHOOT")
	for _, pt := range points {
		if pt.Err != nil {
			fmt.Fprintf(w, "%.4g\terror: %v\n", pt.Value, pt.Err)
			continue
		}
		fmt.Fprintf(w, "%.4g\t%d\t%.4g\t%.3e\n",
			pt.Value, pt.Steps, pt.Metrics["peak"], pt.Metrics["overshoot"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nlargest stable CFL: %.4g\n", best)
	log.WithFields(logrus.Fields{
		"scheme": schemeLabel(scn),
		"cfl":    best,
	}).Info("tuning complete")
	return nil
}

func growthScenario(cmd *cobra.Command, args []string) error {
	scn, err := resolveScenario(cmd, args)
	if err != nil {
		return err
	}

	rate, err := analysis.PerturbationGrowth(cmd.Context(), scn, growthEps)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s (%s)\n", scn.Name, schemeLabel(scn))
	fmt.Printf("growth rate: %.4g per unit time (eps %.1e)\n", rate, growthEps)
	if rate > 0 {
		fmt.Println("perturbations grow: the scheme is unstable at this step size")
	} else {
		fmt.Println("perturbations decay or hold: stable at this step size")
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGRID\tSCHEME\tFLOW")
	for _, name := range scenario.List() {
		s, err := scenario.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, dimsLabel(s.Grid.Dims), schemeLabel(s), s.Flow.Kind)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSCHEME\tGRID\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Scheme,
			dimsLabel(run.Dims),
			run.Steps,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, times, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s (%s)\n", meta.Scenario, meta.Scheme)
	fmt.Printf("frames: %d\n\n", len(frames))

	f, err := frameField(meta, frames[len(frames)-1])
	if err != nil {
		return err
	}

	switch len(meta.Dims) {
	case 1:
		graph := asciigraph.Plot(f.Data(),
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("final state, t=%.3f", times[len(times)-1])),
		)
		fmt.Println(graph)
	case 2:
		lo, hi := f.MinMax()
		fmt.Println(viz.Heatmap(f.Data(), meta.Dims[0], meta.Dims[1], 72, 18, lo, hi))
	default:
		plane, nu, nv := viz.Plane(f, 2, meta.Dims[2]/2)
		lo, hi := f.MinMax()
		fmt.Println(viz.Heatmap(plane, nu, nv, 72, 18, lo, hi))
	}

	if len(frames) > 1 {
		mass := make([]float64, len(frames))
		for i, row := range frames {
			for _, v := range row {
				mass[i] += v
			}
		}
		graph := asciigraph.Plot(mass,
			asciigraph.Height(6),
			asciigraph.Width(60),
			asciigraph.Caption("total mass per frame"),
		)
		fmt.Println("\n" + graph)
	}
	return nil
}

func plotSpectrum(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, _, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data")
	}

	f, err := frameField(meta, frames[len(frames)-1])
	if err != nil {
		return err
	}
	line := analysis.MidLine(f, 0)
	ps := analysis.PowerSpectrum(line)
	if len(ps) < 3 {
		return fmt.Errorf("line too short for a spectrum")
	}

	fmt.Printf("spectrum: %s (%s)\n\n", meta.ID, meta.Scheme)
	graph := asciigraph.Plot(ps[1:],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("spatial power spectrum (modes 1..n/2)"),
	)
	fmt.Println(graph)

	maxPower, maxIdx := 0.0, 1
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower, maxIdx = ps[i], i
		}
	}
	span := float64(meta.Dims[0]) * meta.Spacing[0]
	fmt.Printf("\ndominant mode: k=%d, power %.4g, wavelength %.4g\n",
		maxIdx, maxPower, span/float64(maxIdx))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, times, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range frames[0] {
		header = append(header, fmt.Sprintf("c%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, row := range frames {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, strconv.FormatFloat(times[i], 'g', -1, 64))
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	if svgTheme != "" {
		names := viz.ThemeNames()
		known := false
		for _, n := range names {
			if n == svgTheme {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown theme %q (themes: %s)", svgTheme, strings.Join(names, ", "))
		}
		viz.SetTheme(svgTheme)
	}

	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, _, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to render")
	}

	f, err := frameField(meta, frames[len(frames)-1])
	if err != nil {
		return err
	}

	var doc string
	if svgBraille {
		if f.Grid().Rank() != 1 {
			return fmt.Errorf("braille export needs a 1D run, this one is %s", dimsLabel(meta.Dims))
		}
		c := viz.NewCanvas(80, 20)
		lo, hi := f.MinMax()
		c.PlotSeries(f.Data(), lo, hi)
		doc = export.CanvasSVG(c, float64(svgWidth)/160)
	} else {
		doc = export.FieldSVG(f, svgWidth, svgHeight)
	}

	if svgOut == "" {
		fmt.Println(doc)
		return nil
	}
	if err := os.WriteFile(svgOut, []byte(doc), 0o644); err != nil {
		return err
	}
	log.WithField("file", svgOut).Info("svg written")
	return nil
}

// frameField rebuilds a stored frame on its original grid.
func frameField(meta *storage.RunMetadata, row []float64) (field.Field, error) {
	g, err := field.NewGrid(meta.Dims, meta.Spacing, meta.Origin)
	if err != nil {
		return field.Field{}, err
	}
	if g.Cells() != len(row) {
		return field.Field{}, fmt.Errorf("frame has %d cells, grid wants %d", len(row), g.Cells())
	}
	f := field.NewField(g)
	copy(f.Data(), row)
	return f, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dimsLabel(dims []int) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "x")
}

func schemeLabel(s *scenario.Scenario) string {
	if s.Limiter {
		return s.Scheme + "-limited"
	}
	return s.Scheme
}
