// Package solver defines the backend-neutral linear and mixed-integer model
// the optimizer builds, and the contract a solver backend must satisfy.
//
// The model solves problems of the form:
//
//	Minimize (or Maximize): Σ obj[j]·x[j] + Offset
//	Subject to:             Σ a[i][j]·x[j]  (≥ | ≤ | =)  rhs[i]
//	And:                    lower[j] ≤ x[j] ≤ upper[j], x[j] integer if kind is Integer
//
// Variables and constraints are addressed by the handles returned when they
// are added. Columns may be appended to existing constraints at any time,
// which is what column generation relies on.
package solver

import (
	"fmt"
	"math"
)

// Sense is the optimization direction.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "Maximize"
	}
	return "Minimize"
}

// VarKind is the domain of a variable.
type VarKind int

const (
	Continuous VarKind = iota
	Integer
)

func (k VarKind) String() string {
	if k == Integer {
		return "Integer"
	}
	return "Continuous"
}

// Relation is the comparison operator of a constraint.
type Relation int

const (
	GreaterEqual Relation = iota
	LessEqual
	Equal
)

func (r Relation) String() string {
	switch r {
	case LessEqual:
		return "<="
	case Equal:
		return "="
	default:
		return ">="
	}
}

// Var is a handle to a model variable (its column index).
type Var int

// Constraint is a handle to a model constraint (its row index).
type Constraint int

// Term is one coefficient of a linear expression.
type Term struct {
	Var  Var
	Coef float64
}

// Variable describes a model column.
type Variable struct {
	Name  string
	Kind  VarKind
	Lower float64
	Upper float64 // +Inf when unbounded
	Obj   float64
}

// Row describes a model constraint.
type Row struct {
	Name     string
	Relation Relation
	RHS      float64
	Terms    []Term
}

// Model is an in-memory LP/MILP description consumed by a Solver.
type Model struct {
	Name   string
	Sense  Sense
	Offset float64

	vars []Variable
	rows []Row
}

// NewModel creates an empty model.
func NewModel(name string, sense Sense) *Model {
	return &Model{Name: name, Sense: sense}
}

// AddVariable appends a variable with the given domain, lower bound and
// objective coefficient. The upper bound is +Inf.
func (m *Model) AddVariable(name string, kind VarKind, lower, obj float64) Var {
	if name == "" {
		name = fmt.Sprintf("x%d", len(m.vars))
	}
	m.vars = append(m.vars, Variable{
		Name:  name,
		Kind:  kind,
		Lower: lower,
		Upper: math.Inf(1),
		Obj:   obj,
	})
	return Var(len(m.vars) - 1)
}

// SetUpperBound sets the upper bound of v.
func (m *Model) SetUpperBound(v Var, upper float64) {
	m.vars[v].Upper = upper
}

// SetVariableKind changes the domain of v in place.
func (m *Model) SetVariableKind(v Var, kind VarKind) {
	m.vars[v].Kind = kind
}

// AddConstraint appends the row Σ terms (relation) rhs.
func (m *Model) AddConstraint(name string, terms []Term, rel Relation, rhs float64) Constraint {
	if name == "" {
		name = fmt.Sprintf("c%d", len(m.rows))
	}
	cp := make([]Term, 0, len(terms))
	for _, t := range terms {
		if t.Coef != 0 {
			cp = append(cp, t)
		}
	}
	m.rows = append(m.rows, Row{Name: name, Relation: rel, RHS: rhs, Terms: cp})
	return Constraint(len(m.rows) - 1)
}

// SetObjective replaces the objective: every variable not named in terms
// gets coefficient zero.
func (m *Model) SetObjective(terms []Term, sense Sense, offset float64) {
	for j := range m.vars {
		m.vars[j].Obj = 0
	}
	for _, t := range terms {
		m.vars[t.Var].Obj += t.Coef
	}
	m.Sense = sense
	m.Offset = offset
}

// AddColumn appends a variable together with its coefficients in existing
// constraints. cons and coefs are parallel slices.
func (m *Model) AddColumn(name string, kind VarKind, lower, obj float64, cons []Constraint, coefs []float64) Var {
	if len(cons) != len(coefs) {
		panic("solver: AddColumn constraints and coefficients differ in length")
	}
	v := m.AddVariable(name, kind, lower, obj)
	for k, c := range cons {
		if coefs[k] == 0 {
			continue
		}
		m.rows[c].Terms = append(m.rows[c].Terms, Term{Var: v, Coef: coefs[k]})
	}
	return v
}

// NumVars returns the number of variables in the model.
func (m *Model) NumVars() int {
	return len(m.vars)
}

// NumConstraints returns the number of constraints in the model.
func (m *Model) NumConstraints() int {
	return len(m.rows)
}

// Variable returns a copy of the description of v.
func (m *Model) Variable(v Var) Variable {
	return m.vars[v]
}

// Row returns a copy of the description of c.
func (m *Model) Row(c Constraint) Row {
	r := m.rows[c]
	r.Terms = append([]Term(nil), r.Terms...)
	return r
}

// IsMIP reports whether any variable is integer.
func (m *Model) IsMIP() bool {
	for _, v := range m.vars {
		if v.Kind == Integer {
			return true
		}
	}
	return false
}

// Objective evaluates the objective at x.
func (m *Model) Objective(x []float64) float64 {
	z := m.Offset
	for j, v := range m.vars {
		if j < len(x) {
			z += v.Obj * x[j]
		}
	}
	return z
}

// Feasible reports whether x satisfies every bound and constraint within tol.
func (m *Model) Feasible(x []float64, tol float64) bool {
	if len(x) != len(m.vars) {
		return false
	}
	for j, v := range m.vars {
		if x[j] < v.Lower-tol || x[j] > v.Upper+tol {
			return false
		}
	}
	for _, r := range m.rows {
		lhs := 0.0
		for _, t := range r.Terms {
			lhs += t.Coef * x[t.Var]
		}
		switch r.Relation {
		case GreaterEqual:
			if lhs < r.RHS-tol {
				return false
			}
		case LessEqual:
			if lhs > r.RHS+tol {
				return false
			}
		case Equal:
			if math.Abs(lhs-r.RHS) > tol {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	c := &Model{Name: m.Name, Sense: m.Sense, Offset: m.Offset}
	c.vars = append([]Variable(nil), m.vars...)
	c.rows = make([]Row, len(m.rows))
	for i, r := range m.rows {
		c.rows[i] = r
		c.rows[i].Terms = append([]Term(nil), r.Terms...)
	}
	return c
}
