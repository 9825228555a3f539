/*
Package factory builds accrual policies from JSON definitions.

PURPOSE:
  Lets a deployment define extra accrual policies without code changes.
  A JSON config names a policy type and a tenure tier table; the factory
  compiles it into an accrual.Calculator and registers it at startup.

JSON SCHEMA:
  {
    "type": "GENEROUS",
    "monthly_cap": 11,
    "tiers": [
      {"after_years": 0, "annual_days": 15},
      {"after_years": 3, "annual_days": 20},
      {"after_years": 5, "annual_days": 25}
    ]
  }

SEMANTICS:
  The compiled calculator mirrors the shape of the DEFAULT policy:
  - before the first anniversary: one day per completed month, capped at
    monthly_cap (default 11)
  - from the first anniversary: monthly_cap + the sum over completed
    service years of the tier in effect for that year (the last tier whose
    after_years has been reached)

  A config whose type is "DEFAULT" with no tiers is a passthrough: it
  resolves to the built-in statutory policy.

USAGE:
  reg := accrual.NewRegistry(log)
  f := factory.New()
  cfg, err := f.RegisterFromJSON(reg, jsonBytes)

SEE ALSO:
  - accrual/policy.go: the built-in DEFAULT policy
  - accrual/registry.go: where compiled policies land
*/
package factory

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/warp/leave-engine/accrual"
	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// PolicyJSON is the JSON representation of an accrual policy.
type PolicyJSON struct {
	Type       string     `json:"type"`
	MonthlyCap int        `json:"monthly_cap,omitempty"`
	Tiers      []TierJSON `json:"tiers,omitempty"`
}

// TierJSON is one tenure tier: from after_years completed years on, each
// service year grants annual_days.
type TierJSON struct {
	AfterYears int `json:"after_years"`
	AnnualDays int `json:"annual_days"`
}

// =============================================================================
// FACTORY
// =============================================================================

// PolicyFactory compiles PolicyJSON configs into calculators.
type PolicyFactory struct{}

func New() *PolicyFactory { return &PolicyFactory{} }

// Parse decodes and validates a policy definition.
func (f *PolicyFactory) Parse(data []byte) (PolicyJSON, error) {
	var pj PolicyJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return PolicyJSON{}, fmt.Errorf("invalid policy JSON: %w", err)
	}
	if pj.Type == "" {
		return PolicyJSON{}, fmt.Errorf("policy type is required")
	}
	if pj.Type != accrual.DefaultPolicy && len(pj.Tiers) == 0 {
		return PolicyJSON{}, fmt.Errorf("policy %q: at least one tier is required", pj.Type)
	}
	for i, tier := range pj.Tiers {
		if tier.AfterYears < 0 {
			return PolicyJSON{}, fmt.Errorf("policy %q: tier[%d] after_years must be non-negative", pj.Type, i)
		}
		if tier.AnnualDays <= 0 {
			return PolicyJSON{}, fmt.Errorf("policy %q: tier[%d] annual_days must be positive", pj.Type, i)
		}
	}
	return pj, nil
}

// RegisterFromJSON parses a definition and registers the compiled
// calculator, returning the accrual.Config that selects it. A "DEFAULT"
// config without tiers is a passthrough and registers nothing.
func (f *PolicyFactory) RegisterFromJSON(reg *accrual.Registry, data []byte) (accrual.Config, error) {
	pj, err := f.Parse(data)
	if err != nil {
		return accrual.Config{}, err
	}
	if pj.Type == accrual.DefaultPolicy && len(pj.Tiers) == 0 {
		return accrual.Config{Type: accrual.DefaultPolicy}, nil
	}
	reg.Register(pj.Type, f.compile(pj))
	return accrual.Config{Type: pj.Type}, nil
}

// compile builds the tier-table calculator.
func (f *PolicyFactory) compile(pj PolicyJSON) accrual.Calculator {
	monthlyCap := pj.MonthlyCap
	if monthlyCap <= 0 {
		monthlyCap = 11
	}

	tiers := make([]TierJSON, len(pj.Tiers))
	copy(tiers, pj.Tiers)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].AfterYears < tiers[j].AfterYears })

	yearly := func(y int) int {
		days := 0
		for _, tier := range tiers {
			if y >= tier.AfterYears {
				days = tier.AnnualDays
			}
		}
		return days
	}

	return func(hire, asOf calendar.Date) int {
		if asOf.Before(hire) {
			return 0
		}
		period := calendar.ServicePeriodBetween(hire, asOf)
		if period.Years < 1 {
			if period.TotalMonths > monthlyCap {
				return monthlyCap
			}
			return period.TotalMonths
		}
		total := monthlyCap
		for y := 1; y <= period.Years; y++ {
			total += yearly(y)
		}
		return total
	}
}
