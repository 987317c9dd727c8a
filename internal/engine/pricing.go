package engine

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/piwi3910/RollCut/internal/model"
	"github.com/piwi3910/RollCut/internal/solver"
)

// ErrNoImprovingPattern is returned by a Pricer when no pattern has a
// negative reduced cost. It ends column generation and is not a failure.
var ErrNoImprovingPattern = errors.New("no improving pattern")

// Candidate is the best pattern found by pricing.
// Σ width[i]·Counts[i] + Slack equals the roll width.
type Candidate struct {
	ReducedCost float64
	Counts      []int
	Slack       float64
}

// Pricer searches for the pattern with the most negative reduced cost under
// the given master duals. When the best reduced cost is not below -epsilon
// the candidate is still returned, together with ErrNoImprovingPattern.
type Pricer interface {
	Price(duals []float64) (Candidate, error)
}

// PricerFactory creates the pricer for a run.
type PricerFactory func(order model.Order, backend solver.Solver, epsilon float64) Pricer

// NewPricer returns the pricer for the given method, the dynamic programme
// by default.
func NewPricer(method model.PricingMethod, order model.Order, backend solver.Solver, epsilon float64) Pricer {
	if method == model.PricingMIP {
		return NewKnapsackPricer(order, backend, epsilon)
	}
	return NewDPPricer(order, epsilon)
}

// splitDuals separates the demand duals from the capacity dual, which is
// zero when the master has no capacity row.
func splitDuals(duals []float64, m int) ([]float64, float64) {
	y := make([]float64, m)
	copy(y, duals)
	if len(duals) > m {
		return y, duals[m]
	}
	return y, 0
}

func finish(c Candidate, epsilon float64) (Candidate, error) {
	if c.ReducedCost >= -epsilon {
		return c, ErrNoImprovingPattern
	}
	return c, nil
}

// DPPricer solves the pricing knapsack exactly by dynamic programming over
// the integer roll width. The reduced cost of a pattern a is
//
//	W - Σ (w[i] + y[i])·a[i] - yCap
//
// so the programme maximises Σ (w[i] + y[i])·a[i] over Σ w[i]·a[i] ≤ W.
type DPPricer struct {
	widths    []int
	rollWidth int
	epsilon   float64
}

func NewDPPricer(order model.Order, epsilon float64) *DPPricer {
	return &DPPricer{
		widths:    order.Widths(),
		rollWidth: order.RollWidth,
		epsilon:   epsilon,
	}
}

func (p *DPPricer) Price(duals []float64) (Candidate, error) {
	y, capDual := splitDuals(duals, len(p.widths))

	best := make([]float64, p.rollWidth+1)
	take := make([]int, p.rollWidth+1)
	take[0] = -1
	for c := 1; c <= p.rollWidth; c++ {
		best[c], take[c] = best[c-1], -1
		for i, w := range p.widths {
			if w <= 0 || w > c {
				continue
			}
			if v := best[c-w] + float64(w) + y[i]; v > best[c]+1e-12 {
				best[c], take[c] = v, i
			}
		}
	}

	counts := make([]int, len(p.widths))
	for c := p.rollWidth; c > 0; {
		i := take[c]
		if i < 0 {
			c--
			continue
		}
		counts[i]++
		c -= p.widths[i]
	}
	return finish(p.candidate(counts, y, capDual), p.epsilon)
}

func (p *DPPricer) candidate(counts []int, y []float64, capDual float64) Candidate {
	used := 0
	collected := 0.0
	for i, n := range counts {
		used += n * p.widths[i]
		collected += y[i] * float64(n)
	}
	slack := float64(p.rollWidth - used)
	return Candidate{
		ReducedCost: slack - collected - capDual,
		Counts:      counts,
		Slack:       slack,
	}
}

// KnapsackPricer hands the pricing knapsack to a solver backend:
//
//	min d - Σ y[i]·a[i] - yCap  s.t.  Σ w[i]·a[i] + d = W,  a integer ≥ 0, d ≥ 0
//
// The model is built once; only its objective changes between calls.
type KnapsackPricer struct {
	backend solver.Solver
	epsilon float64
	widths  []int
	width   int
	model   *solver.Model
	a       []solver.Var
	d       solver.Var
	last    *solver.Solution
}

func NewKnapsackPricer(order model.Order, backend solver.Solver, epsilon float64) *KnapsackPricer {
	p := &KnapsackPricer{
		backend: backend,
		epsilon: epsilon,
		widths:  order.Widths(),
		width:   order.RollWidth,
		model:   solver.NewModel("Knapsack", solver.Minimize),
	}
	terms := make([]solver.Term, 0, len(p.widths)+1)
	for i, w := range p.widths {
		v := p.model.AddVariable(fmt.Sprintf("a[%d]", i), solver.Integer, 0, 0)
		p.a = append(p.a, v)
		terms = append(terms, solver.Term{Var: v, Coef: float64(w)})
	}
	p.d = p.model.AddVariable("d", solver.Continuous, 0, 1)
	terms = append(terms, solver.Term{Var: p.d, Coef: 1})
	p.model.AddConstraint("Knapsack", terms, solver.Equal, float64(order.RollWidth))
	return p
}

func (p *KnapsackPricer) Price(duals []float64) (Candidate, error) {
	y, capDual := splitDuals(duals, len(p.widths))

	obj := make([]solver.Term, 0, len(p.a)+1)
	obj = append(obj, solver.Term{Var: p.d, Coef: 1})
	for i, v := range p.a {
		obj = append(obj, solver.Term{Var: v, Coef: -y[i]})
	}
	p.model.SetObjective(obj, solver.Minimize, -capDual)

	sol, err := p.backend.Solve(p.model)
	if err != nil {
		return Candidate{}, errors.Wrap(err, "solving pricing knapsack")
	}
	p.last = sol

	counts := make([]int, len(p.a))
	used := 0
	for i, v := range p.a {
		counts[i] = int(math.Round(sol.Value(v)))
		used += counts[i] * p.widths[i]
	}
	slack := float64(p.width - used)
	return finish(Candidate{
		ReducedCost: sol.Objective,
		Counts:      counts,
		Slack:       slack,
	}, p.epsilon)
}

// Model returns the knapsack model with the objective of the last call.
func (p *KnapsackPricer) Model() *solver.Model {
	return p.model
}

// Solution returns the raw result of the last call.
func (p *KnapsackPricer) Solution() *solver.Solution {
	return p.last
}
