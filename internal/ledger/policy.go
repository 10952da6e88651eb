// AngelaMos | 2026
// policy.go

package ledger

// Policy maps {plan, capability} to a daily allowance. It is static
// process-wide configuration: loaded once, read-only afterwards.
//
// A capability missing from a plan's ceiling map is not entitled on that
// plan (default deny). Plans in the unlimited set admit every capability,
// with no ceiling.
type Policy struct {
	ceilings  map[string]map[Capability]int
	unlimited map[string]bool
}

// DefaultPolicy is the shipped quota table: FREE users get a small daily
// allowance on the text agents and a tighter one on image generation, and
// cannot use competitor-profile analysis at all. PRO is unlimited.
func DefaultPolicy() *Policy {
	return &Policy{
		ceilings: map[string]map[Capability]int{
			"free": {
				CapGenerateSocialCopy:     5,
				CapResearchHashtags:       5,
				CapGenerateImage:          2,
				CapSuggestContentTopics:   5,
				CapGenerateCopyVariations: 5,
			},
		},
		unlimited: map[string]bool{
			"pro": true,
		},
	}
}

func NewPolicy(
	ceilings map[string]map[Capability]int,
	unlimitedPlans []string,
) *Policy {
	unlimited := make(map[string]bool, len(unlimitedPlans))
	for _, plan := range unlimitedPlans {
		unlimited[plan] = true
	}

	return &Policy{
		ceilings:  ceilings,
		unlimited: unlimited,
	}
}

// Unlimited reports whether the plan admits every capability without a
// ceiling.
func (p *Policy) Unlimited(plan string) bool {
	return p.unlimited[plan]
}

// Ceiling returns the plan's daily allowance for the capability. A zero
// ceiling means the capability is not entitled on that plan.
func (p *Policy) Ceiling(plan string, capability Capability) int {
	planCeilings, ok := p.ceilings[plan]
	if !ok {
		return 0
	}
	return planCeilings[capability]
}
