package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/piwi3910/RollCut/internal/engine"
	"github.com/piwi3910/RollCut/internal/export"
	"github.com/piwi3910/RollCut/internal/model"
	"github.com/piwi3910/RollCut/internal/project"
)

// settingsFlags override the configured optimizer defaults.
type settingsFlags struct {
	backend       string
	pricing       string
	epsilon       float64
	maxIterations int
	maxDuplicates int
	nodeLimit     int
	seedOnly      bool
	snapshotDir   string
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.backend, "backend", "", fmt.Sprintf("solver backend (%s)", joinBackends()))
	fl.StringVar(&f.pricing, "pricing", "", fmt.Sprintf("pricing method (%s, %s)", model.PricingDP, model.PricingMIP))
	fl.Float64Var(&f.epsilon, "epsilon", 0, "reduced cost tolerance ending column generation")
	fl.IntVar(&f.maxIterations, "max-iterations", 0, "stop column generation after this many iterations, 0 = unlimited")
	fl.IntVar(&f.maxDuplicates, "max-duplicates", 0, "consecutive duplicate patterns tolerated, negative disables the guard")
	fl.IntVar(&f.nodeLimit, "node-limit", 0, "branch-and-bound node limit for the integer re-solve, 0 = backend default")
	fl.BoolVar(&f.seedOnly, "seed-only", false, "skip column generation and cut with the seed patterns only")
	fl.StringVar(&f.snapshotDir, "snapshots", "", "write every master and pricing model with its solution to this directory")
}

// apply copies the flags given on the command line into s and validates
// the result.
func (f *settingsFlags) apply(cmd *cobra.Command, s *model.Settings) error {
	fl := cmd.Flags()
	if fl.Changed("backend") {
		s.Backend = model.Backend(f.backend)
	}
	if fl.Changed("pricing") {
		s.Pricing = model.PricingMethod(f.pricing)
	}
	if fl.Changed("epsilon") {
		s.Epsilon = f.epsilon
	}
	if fl.Changed("max-iterations") {
		s.MaxIterations = f.maxIterations
	}
	if fl.Changed("max-duplicates") {
		s.MaxDuplicates = f.maxDuplicates
	}
	if fl.Changed("node-limit") {
		s.NodeLimit = f.nodeLimit
	}
	if fl.Changed("seed-only") {
		s.SeedOnly = f.seedOnly
	}
	if fl.Changed("snapshots") {
		s.SnapshotDir = f.snapshotDir
	}
	return s.Validate()
}

func joinBackends() string {
	var names []string
	for _, b := range engine.Backends() {
		names = append(names, string(b))
	}
	return strings.Join(names, ", ")
}

// resolveSettings starts from the configured defaults, replaces them with a
// project's settings when one was loaded and applies the command line.
func resolveSettings(cmd *cobra.Command, cfg model.AppConfig, fromProject *model.Settings, sf *settingsFlags) (model.Settings, error) {
	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)
	if fromProject != nil {
		settings = *fromProject
	}
	err := sf.apply(cmd, &settings)
	return settings, err
}

type outputFlags struct {
	pdf    string
	labels string
	xlsx   string
	dxf    string
	save   string
	quiet  bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.pdf, "pdf", "", "write the cutting plan as PDF")
	fl.StringVar(&f.labels, "labels", "", "write QR roll labels as PDF")
	fl.StringVar(&f.xlsx, "xlsx", "", "write the plan as an Excel workbook")
	fl.StringVar(&f.dxf, "dxf", "", "write the patterns as a DXF drawing")
	fl.StringVar(&f.save, "save", "", "save order, settings and plan as a project file")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "do not print the text report")
}

func newSolveCmd() *cobra.Command {
	var (
		of  orderFlags
		sf  settingsFlags
		out outputFlags
	)

	cmd := &cobra.Command{
		Use:   "solve [orders.csv|orders.xlsx]",
		Short: "Compute a cutting plan by column generation",
		Long: `Solve reads an order, generates cutting patterns until no pattern can
lower the waste of the relaxed master problem, then solves the master
problem with integer roll counts and reports the plan.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			order, projSettings, err := of.resolve(cmd, args, cfg)
			if err != nil {
				return err
			}
			settings, err := resolveSettings(cmd, cfg, projSettings, &sf)
			if err != nil {
				return err
			}

			opts := []engine.Option{engine.WithLogger(log)}
			if settings.SnapshotDir != "" {
				w, err := project.NewSnapshotWriter(settings.SnapshotDir)
				if err != nil {
					return err
				}
				opts = append(opts, engine.WithSnapshotter(w))
			}

			ctrl, err := engine.NewController(order, settings, opts...)
			if err != nil {
				return err
			}
			plan, err := ctrl.Run()
			if err != nil {
				return err
			}

			if !out.quiet {
				if err := export.WriteReport(cmd.OutOrStdout(), plan); err != nil {
					return err
				}
			}
			if err := writeOutputs(plan, out); err != nil {
				return err
			}

			if out.save != "" {
				proj := model.Project{Name: order.Name, Order: order, Settings: settings, Plan: plan}
				if err := project.SaveProject(out.save, proj); err != nil {
					return err
				}
				cfg.AddRecentProject(out.save, 10)
				if err := project.SaveAppConfig(configPath, cfg); err != nil {
					log.WithError(err).Warn("could not record recent project")
				}
				log.WithField("file", out.save).Info("project saved")
			}
			return nil
		},
	}

	of.register(cmd)
	sf.register(cmd)
	out.register(cmd)
	return cmd
}

func writeOutputs(plan *model.Plan, out outputFlags) error {
	writers := []struct {
		path  string
		kind  string
		write func(string, *model.Plan) error
	}{
		{out.pdf, "pdf", export.ExportPDF},
		{out.labels, "labels", export.ExportLabels},
		{out.xlsx, "xlsx", export.ExportExcel},
		{out.dxf, "dxf", export.ExportDXF},
	}
	for _, w := range writers {
		if w.path == "" {
			continue
		}
		if err := w.write(w.path, plan); err != nil {
			return fmt.Errorf("failed to write %s: %w", w.kind, err)
		}
		log.WithFields(logrus.Fields{"kind": w.kind, "file": w.path}).Info("export written")
	}
	return nil
}
