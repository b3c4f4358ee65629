package subscriptions

// Plan is one entry of the pricing catalog.
type Plan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Features []string `json:"features"`
}

var catalog = []Plan{
	{
		ID:   "free",
		Name: "Starter",
		Features: []string{
			"5 resume analyses per month",
			"Basic question types",
			"Email support",
		},
	},
	{
		ID:   "basic",
		Name: "Basic",
		Features: []string{
			"50 resume uploads per month",
			"5 job templates",
			"Basic question generation",
			"Email support",
		},
	},
	{
		ID:   "professional",
		Name: "Professional",
		Features: []string{
			"200 resume uploads per month",
			"20 job templates",
			"Advanced question generation",
			"Team collaboration",
			"Priority email support",
		},
	},
	{
		ID:   "enterprise",
		Name: "Enterprise",
		Features: []string{
			"Unlimited resume uploads",
			"Unlimited job templates",
			"Custom AI training",
			"API access",
			"SSO authentication",
			"Dedicated account manager",
		},
	},
}

// Plans returns a copy of the catalog in display order.
func Plans() []Plan {
	out := make([]Plan, len(catalog))
	for i, p := range catalog {
		p.Features = append([]string(nil), p.Features...)
		out[i] = p
	}
	return out
}

// LookupPlan reports the catalog entry for id.
func LookupPlan(id string) (Plan, bool) {
	for _, p := range catalog {
		if p.ID == id {
			p.Features = append([]string(nil), p.Features...)
			return p, true
		}
	}
	return Plan{}, false
}
