package engine

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/piwi3910/RollCut/internal/model"
	"github.com/piwi3910/RollCut/internal/solver"
	"github.com/piwi3910/RollCut/internal/solver/simplex"
)

// BackendFactory creates a solver configured from run settings.
type BackendFactory func(settings model.Settings) solver.Solver

var backends = map[model.Backend]BackendFactory{
	model.BackendSimplex: func(settings model.Settings) solver.Solver {
		return simplex.New(simplex.WithNodeLimit(settings.NodeLimit))
	},
}

// RegisterBackend makes a solver backend selectable by name. It is meant to
// be called from init functions.
func RegisterBackend(name model.Backend, factory BackendFactory) {
	backends[name] = factory
}

// Backends lists the registered backend names in sorted order.
func Backends() []model.Backend {
	out := make([]model.Backend, 0, len(backends))
	for name := range backends {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewBackend creates the solver named by settings.Backend. An empty name
// selects the simplex backend.
func NewBackend(settings model.Settings) (solver.Solver, error) {
	name := settings.Backend
	if name == "" {
		name = model.BackendSimplex
	}
	factory, ok := backends[name]
	if !ok {
		return nil, errors.Errorf("solver backend %q is not available in this build", name)
	}
	return factory(settings), nil
}
