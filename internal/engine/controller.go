package engine

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/piwi3910/RollCut/internal/model"
	"github.com/piwi3910/RollCut/internal/solver"
)

// State is a phase of a column-generation run.
type State int

const (
	StateSeeding State = iota
	StateGenerating
	StateConverged
	StateIntegerizing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSeeding:
		return "Seeding"
	case StateGenerating:
		return "Generating"
	case StateConverged:
		return "Converged"
	case StateIntegerizing:
		return "Integerizing"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Snapshotter persists a model together with its latest solution under a
// base name such as "MP_Cutting_Stock_3".
type Snapshotter interface {
	Snapshot(name string, m *solver.Model, sol *solver.Solution) error
}

// modelSource is implemented by pricers that solve an explicit model.
type modelSource interface {
	Model() *solver.Model
	Solution() *solver.Solution
}

// Controller runs column generation for one order: it alternates master
// solves and pricing until no improving pattern remains, then re-solves the
// master with integer variables.
type Controller struct {
	order     model.Order
	settings  model.Settings
	backend   solver.Solver
	newPricer PricerFactory
	log       logrus.FieldLogger
	snapshots Snapshotter

	state   State
	catalog *Catalog
	master  *Master
}

// Option configures a Controller.
type Option func(*Controller)

// WithSolver overrides the backend selected by the settings.
func WithSolver(s solver.Solver) Option {
	return func(c *Controller) { c.backend = s }
}

// WithPricer overrides the pricer selected by the settings.
func WithPricer(f PricerFactory) Option {
	return func(c *Controller) { c.newPricer = f }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = l }
}

// WithSnapshotter enables per-iteration model snapshots.
func WithSnapshotter(s Snapshotter) Option {
	return func(c *Controller) { c.snapshots = s }
}

// NewController validates the order and settings and prepares a run.
func NewController(order model.Order, settings model.Settings, opts ...Option) (*Controller, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if settings.Epsilon <= 0 {
		settings.Epsilon = model.DefaultSettings().Epsilon
	}

	c := &Controller{
		order:    order,
		settings: settings,
		log:      logrus.StandardLogger(),
		state:    StateSeeding,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.backend == nil {
		b, err := NewBackend(settings)
		if err != nil {
			return nil, err
		}
		c.backend = b
	}
	if c.newPricer == nil {
		method := settings.Pricing
		c.newPricer = func(o model.Order, s solver.Solver, eps float64) Pricer {
			return NewPricer(method, o, s, eps)
		}
	}
	c.log = c.log.WithFields(logrus.Fields{
		"order":   order.Name,
		"backend": c.backend.Name(),
	})
	return c, nil
}

// State returns the phase the run is in.
func (c *Controller) State() State {
	return c.state
}

// Catalog returns the pattern catalog once seeding has happened.
func (c *Controller) Catalog() *Catalog {
	return c.catalog
}

// Master returns the master problem once seeding has happened.
func (c *Controller) Master() *Master {
	return c.master
}

func (c *Controller) enter(s State) {
	c.log.WithField("state", s).Debug("entering state")
	c.state = s
}

// Run executes the whole run. An infeasible master at any point is fatal and
// leaves the controller in StateFailed.
func (c *Controller) Run() (*model.Plan, error) {
	if c.state != StateSeeding {
		return nil, errors.Errorf("controller already ran (state %s)", c.state)
	}
	plan := model.NewPlan(c.order)
	plan.Backend = model.Backend(c.backend.Name())
	plan.Pricing = c.settings.Pricing
	if plan.Pricing == "" {
		plan.Pricing = model.PricingDP
	}

	c.catalog = NewCatalog(c.order)
	c.master = NewMaster(c.backend, c.order, c.catalog.Patterns())
	c.log.WithField("patterns", c.catalog.Len()).Info("seeded master problem")

	c.enter(StateGenerating)
	relaxed, converged, err := c.generate(plan)
	if err != nil {
		c.enter(StateFailed)
		return nil, err
	}

	c.enter(StateConverged)
	plan.Converged = converged
	plan.RelaxedWaste = relaxed.Objective
	c.log.WithFields(logrus.Fields{
		"waste":     relaxed.Objective,
		"patterns":  c.catalog.Len(),
		"converged": converged,
	}).Info("relaxed master solved")

	c.enter(StateIntegerizing)
	final, err := c.master.Integerize()
	if err != nil {
		c.enter(StateFailed)
		return nil, err
	}
	c.snapshot("master_CuttingStock_IP", c.master.Model(), c.master.Solution())

	for _, p := range c.catalog.Patterns() {
		u := model.PatternUsage{Pattern: p}
		if p.ID < len(relaxed.Values) {
			u.RelaxedRolls = relaxed.Values[p.ID]
		}
		if p.ID < len(final.Values) {
			u.Rolls = int(math.Round(final.Values[p.ID]))
		}
		plan.Patterns = append(plan.Patterns, u)
	}
	plan.Waste = final.Objective

	c.enter(StateDone)
	c.log.WithFields(logrus.Fields{
		"waste":         plan.Waste,
		"relaxed_waste": plan.RelaxedWaste,
		"rolls":         plan.RollsUsed(),
	}).Info("integer master solved")
	return plan, nil
}

// generate runs the master/pricing loop and returns the last relaxed
// solution, which covers every column in the master.
func (c *Controller) generate(plan *model.Plan) (MasterSolution, bool, error) {
	pricer := c.newPricer(c.order, c.backend, c.settings.Epsilon)
	counter := len(c.order.Pieces) - 1
	duplicates := 0

	for iter := 0; ; iter++ {
		sol, err := c.master.Solve()
		if err != nil {
			return MasterSolution{}, false, err
		}
		c.snapshot(fmt.Sprintf("MP_Cutting_Stock_%d", counter), c.master.Model(), c.master.Solution())

		switch {
		case c.settings.SeedOnly:
			c.log.Info("pattern generation disabled, using seed patterns only")
			return sol, false, nil
		case c.settings.MaxIterations > 0 && iter >= c.settings.MaxIterations:
			c.log.WithField("iterations", iter).Warn("iteration limit reached before convergence")
			return sol, false, nil
		case c.settings.MaxDuplicates >= 0 && duplicates > c.settings.MaxDuplicates:
			c.log.WithField("duplicates", duplicates).Warn("pricing keeps returning known patterns, stopping generation")
			return sol, false, nil
		}

		cand, err := pricer.Price(sol.Duals)
		if src, ok := pricer.(modelSource); ok && src.Solution() != nil {
			c.snapshot(fmt.Sprintf("AP_Cutting_Stock_%d", counter), src.Model(), src.Solution())
		}
		it := model.Iteration{
			Index:       iter,
			Objective:   sol.Objective,
			ReducedCost: cand.ReducedCost,
			PatternID:   -1,
		}
		if errors.Is(err, ErrNoImprovingPattern) {
			plan.Iterations = append(plan.Iterations, it)
			c.log.WithFields(logrus.Fields{
				"iteration":    iter,
				"reduced_cost": cand.ReducedCost,
			}).Info("no improving pattern, column generation converged")
			return sol, true, nil
		}
		if err != nil {
			return MasterSolution{}, false, err
		}

		counter++
		p, dup := c.catalog.Register(cand.Counts)
		c.master.AddColumn(p, cand.Slack)
		it.PatternID = p.ID
		it.Duplicate = dup
		plan.Iterations = append(plan.Iterations, it)

		entry := c.log.WithFields(logrus.Fields{
			"iteration":    iter,
			"objective":    sol.Objective,
			"reduced_cost": cand.ReducedCost,
			"pattern":      p.Describe(c.order.Pieces),
		})
		if dup {
			duplicates++
			entry.Warn("pricing returned a pattern already in the catalog")
		} else {
			duplicates = 0
			entry.Debug("added pattern")
		}
	}
}

func (c *Controller) snapshot(name string, m *solver.Model, sol *solver.Solution) {
	if c.snapshots == nil || sol == nil {
		return
	}
	if err := c.snapshots.Snapshot(name, m, sol); err != nil {
		c.log.WithError(err).WithField("snapshot", name).Warn("failed to write snapshot")
	}
}
