package engine

import (
	"fmt"

	"github.com/piwi3910/RollCut/internal/model"
)

// ComparisonScenario defines a named set of settings to compare. Order, when
// set, replaces the order the comparison runs on.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
	Order    *model.Order
}

// ComparisonResult holds the plan and computed statistics for a single
// scenario. Err is set instead of Plan when the run failed.
type ComparisonResult struct {
	Scenario          ComparisonScenario
	Plan              *model.Plan
	RollsUsed         int
	Waste             float64
	RelaxedWaste      float64
	PatternsGenerated int
	Iterations        int
	Err               error
}

// CompareScenarios runs column generation for each scenario and returns the
// results in scenario order. This enables side-by-side comparison of pricing
// methods, capacity caps and the benefit of pattern generation itself.
// opts are applied to every run after the scenario's own backend is chosen.
func CompareScenarios(scenarios []ComparisonScenario, order model.Order, opts ...Option) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		o := order
		if scenario.Order != nil {
			o = *scenario.Order
		}

		res := ComparisonResult{Scenario: scenario}
		ctrl, err := NewController(o, scenario.Settings, opts...)
		if err == nil {
			res.Plan, err = ctrl.Run()
		}
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		res.RollsUsed = res.Plan.RollsUsed()
		res.Waste = res.Plan.Waste
		res.RelaxedWaste = res.Plan.RelaxedWaste
		res.PatternsGenerated = res.Plan.GeneratedPatterns()
		res.Iterations = len(res.Plan.Iterations)
		results = append(results, res)
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.Settings, order model.Order) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// Scenario: Try the other pricing method
	altPricing := baseSettings
	if baseSettings.Pricing == model.PricingMIP {
		altPricing.Pricing = model.PricingDP
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Dynamic Programming Pricing",
			Settings: altPricing,
		})
	} else {
		altPricing.Pricing = model.PricingMIP
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Knapsack MIP Pricing",
			Settings: altPricing,
		})
	}

	// Scenario: Seed patterns only (no column generation)
	if !baseSettings.SeedOnly {
		seedOnly := baseSettings
		seedOnly.SeedOnly = true
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Seed Patterns Only",
			Settings: seedOnly,
		})
	}

	// Scenario: Lift the roll cap
	if order.HasCapacity() {
		uncapped := order
		uncapped.AvailableRolls = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Unlimited Rolls (cap %d lifted)", order.AvailableRolls),
			Settings: baseSettings,
			Order:    &uncapped,
		})
	}

	return scenarios
}
