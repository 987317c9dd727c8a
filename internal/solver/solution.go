package solver

import "github.com/pkg/errors"

var (
	// ErrInfeasible is returned when the model has no feasible solution.
	ErrInfeasible = errors.New("solver: model is infeasible")
	// ErrUnbounded is returned when the objective is unbounded.
	ErrUnbounded = errors.New("solver: model is unbounded")
	// ErrNodeLimit is returned when branch-and-bound stops before finding any
	// integer solution.
	ErrNodeLimit = errors.New("solver: node limit reached without integer solution")
)

// Status indicates the outcome of a solve.
type Status int

const (
	StatusOptimal Status = iota
	// StatusFeasible means an integer solution was found but optimality was
	// not proven (node limit).
	StatusFeasible
)

func (s Status) String() string {
	if s == StatusFeasible {
		return "Feasible"
	}
	return "Optimal"
}

// Solution contains the results from solving a model.
type Solution struct {
	Status Status

	// Objective is the value of the objective function, offset included.
	Objective float64

	// Values contains the primal value of each variable, in Var order.
	Values []float64

	// Duals contains the dual price of each constraint, in Constraint order,
	// as ∂Objective/∂rhs. Only populated for continuous models.
	Duals []float64

	// Nodes is the number of branch-and-bound nodes explored (0 for LPs).
	Nodes int
}

// Value returns the value of v, or 0 if v is out of range.
func (s *Solution) Value(v Var) float64 {
	if int(v) < 0 || int(v) >= len(s.Values) {
		return 0
	}
	return s.Values[v]
}

// DualPrices returns the duals of the given constraints. Missing duals read as 0.
func (s *Solution) DualPrices(cons ...Constraint) []float64 {
	out := make([]float64, len(cons))
	for k, c := range cons {
		if int(c) >= 0 && int(c) < len(s.Duals) {
			out[k] = s.Duals[c]
		}
	}
	return out
}

// Solver optimizes a model. Implementations must not retain the model.
type Solver interface {
	Solve(m *Model) (*Solution, error)
	Name() string
}
