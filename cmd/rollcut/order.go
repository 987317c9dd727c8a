package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/piwi3910/RollCut/internal/importer"
	"github.com/piwi3910/RollCut/internal/model"
	"github.com/piwi3910/RollCut/internal/project"
)

// orderFlags are shared by every command that works on an order.
type orderFlags struct {
	pieces      []string
	demo        bool
	rollWidth   int
	available   int
	preset      string
	projectFile string
	name        string
}

func (f *orderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringSliceVarP(&f.pieces, "piece", "p", nil, `ordered piece as "WIDTHxDEMAND", repeatable or comma separated`)
	fl.BoolVar(&f.demo, "demo", false, "use the built-in 15 width demo order")
	fl.IntVarP(&f.rollWidth, "roll-width", "w", 0, "master roll width in mm (default from preset or config)")
	fl.IntVarP(&f.available, "available", "n", 0, "master rolls available, 0 = unlimited")
	fl.StringVar(&f.preset, "preset", "", "take roll width and stock from a named roll preset")
	fl.StringVar(&f.projectFile, "project", "", "load order and settings from a project file")
	fl.StringVar(&f.name, "name", "", "order name (default derived from the input)")
}

// resolve builds the order from, in priority: a project file, an import
// file given as argument, inline pieces or the demo order. The returned
// settings come from the project file when one was loaded.
func (f *orderFlags) resolve(cmd *cobra.Command, args []string, cfg model.AppConfig) (model.Order, *model.Settings, error) {
	var (
		order    model.Order
		settings *model.Settings
	)

	switch {
	case f.projectFile != "":
		proj, err := project.LoadProject(f.projectFile)
		if err != nil {
			return order, nil, err
		}
		order = proj.Order
		settings = &proj.Settings
		log.WithField("file", f.projectFile).Info("loaded project")

	case len(args) > 0:
		res := importer.ImportFile(args[0])
		for _, w := range res.Warnings {
			log.WithField("file", args[0]).Warn(w)
		}
		if len(res.Errors) > 0 {
			for _, e := range res.Errors {
				log.WithField("file", args[0]).Error(e)
			}
			return order, nil, fmt.Errorf("failed to import %s: %d errors", args[0], len(res.Errors))
		}
		order = res.Order(orderName(args[0]), cfg.DefaultRollWidth, 0)
		log.WithFields(logrus.Fields{"file": args[0], "widths": len(order.Pieces)}).Info("imported order")

	case len(f.pieces) > 0:
		pieces, err := parsePieces(f.pieces)
		if err != nil {
			return order, nil, err
		}
		order = model.Order{Name: "inline", RollWidth: cfg.DefaultRollWidth, Pieces: pieces}

	case f.demo:
		order = model.DemoOrder(false)

	default:
		return order, nil, fmt.Errorf("no order given: pass a CSV/XLSX file, --piece, --project or --demo")
	}

	if f.preset != "" {
		inv, _, err := project.LoadOrCreateInventory(configPath)
		if err != nil {
			return order, nil, err
		}
		rp := inv.FindRollByName(f.preset)
		if rp == nil {
			return order, nil, fmt.Errorf("unknown roll preset %q", f.preset)
		}
		rp.ApplyToOrder(&order)
	}
	if cmd.Flags().Changed("roll-width") {
		order.RollWidth = f.rollWidth
	}
	if cmd.Flags().Changed("available") {
		order.AvailableRolls = f.available
	}
	if f.name != "" {
		order.Name = f.name
	}
	return order, settings, nil
}

func orderName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// parsePieces reads "WIDTHxDEMAND" items; a bare width means demand 1.
func parsePieces(items []string) ([]model.Piece, error) {
	var pieces []model.Piece
	for _, item := range items {
		wd := strings.Split(strings.TrimSpace(item), "x")
		if len(wd) == 1 {
			wd = append(wd, "1")
		}
		if len(wd) != 2 {
			return nil, fmt.Errorf("piece %q: expected WIDTHxDEMAND", item)
		}

		w, err := strconv.Atoi(wd[0])
		if err != nil {
			return nil, fmt.Errorf("piece %q: can't get width", item)
		}
		d, err := strconv.Atoi(wd[1])
		if err != nil {
			return nil, fmt.Errorf("piece %q: can't get demand", item)
		}
		pieces = append(pieces, model.NewPiece(fmt.Sprintf("W%d", w), w, d))
	}
	return pieces, nil
}
