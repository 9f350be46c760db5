package reward

// Candidate is one possible reward of a resolution: a case item, a slot
// entry or a mini-game prize. Candidates are never mutated by this package.
type Candidate struct {
	ID     string            `json:"id"`
	Weight float64           `json:"weight"`
	Price  float64           `json:"price"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// Category returns the rarity tag, falling back to the candidate ID.
func (c Candidate) Category() string {
	if r, ok := c.Tags[TagRarity]; ok && r != "" {
		return r
	}
	return c.ID
}

// RandomSource returns a uniform value in [0, 1).
type RandomSource func() float64

// Result is the outcome of a single resolution, kept for granting and auditing.
type Result struct {
	Selected         Candidate `json:"selected"`
	Index            int       `json:"index"`
	Roll             float64   `json:"rolled_value"`
	AppliedWeights   []float64 `json:"applied_weights"`
	ProtectionWaived bool      `json:"protection_waived,omitempty"`
}
