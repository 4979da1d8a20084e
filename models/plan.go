package models

// Plan is a subscription tier shown on the pricing page. Amount is in paise.
type Plan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Amount   int64    `json:"amount"`
	Period   string   `json:"period"`
	Features []string `json:"features"`
}

// Plans is the static pricing catalog
var Plans = []Plan{
	{
		ID:     "free",
		Name:   "Free",
		Amount: 0,
		Period: "forever",
		Features: []string{
			"5 videos per month",
			"720p video quality",
			"Basic templates",
			"Text to video only",
			"Watermarked videos",
			"Community support",
		},
	},
	{
		ID:     "pro",
		Name:   "Pro",
		Amount: 49900,
		Period: "month",
		Features: []string{
			"50 videos per month",
			"1080p HD quality",
			"All video templates",
			"Text & Image to video",
			"No watermarks",
			"Priority support",
			"Commercial license",
			"API access",
		},
	},
	{
		ID:     "enterprise",
		Name:   "Enterprise",
		Amount: 199900,
		Period: "month",
		Features: []string{
			"Unlimited videos",
			"4K video quality",
			"Custom templates",
			"All features included",
			"No watermarks",
			"24/7 priority support",
			"Full commercial license",
			"Dedicated account manager",
			"Custom integrations",
			"Advanced analytics",
		},
	},
}

// FindPlan looks up a plan by id
func FindPlan(id string) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
