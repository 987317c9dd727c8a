//go:build glpk

package main

import (
	"github.com/piwi3910/RollCut/internal/engine"
	"github.com/piwi3910/RollCut/internal/model"
	"github.com/piwi3910/RollCut/internal/solver"
	"github.com/piwi3910/RollCut/internal/solver/glpk"
)

func init() {
	engine.RegisterBackend(model.BackendGLPK, func(model.Settings) solver.Solver {
		return glpk.New()
	})
}
