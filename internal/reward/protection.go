package reward

// SelectWithProtection draws from candidates while excluding any candidate
// whose ID is among the first window entries of recentIDs (newest first).
// If the exclusion removes every usable weight, protection is waived and a
// normal draw happens; the caller always receives a candidate.
func SelectWithProtection(candidates []Candidate, weights []float64, recentIDs []string, window int, rnd RandomSource) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, ErrEmptyPool
	}

	excluded := recentSet(recentIDs, window)
	if len(excluded) == 0 {
		return draw(candidates, weights, rnd)
	}

	protected := make([]float64, len(weights))
	copy(protected, weights)
	for i, c := range candidates {
		if i < len(protected) && excluded[c.ID] {
			protected[i] = 0
		}
	}

	if TotalWeight(protected) > 0 {
		return draw(candidates, protected, rnd)
	}

	res, err := draw(candidates, weights, rnd)
	if err != nil {
		return Result{}, err
	}
	res.ProtectionWaived = true
	return res, nil
}

// ResolveWithProtection applies the default modifier, then SelectWithProtection.
func ResolveWithProtection(candidates []Candidate, bonusPercent float64, recentIDs []string, window int, rnd RandomSource) (Result, error) {
	return DefaultModifier().ResolveWithProtection(candidates, bonusPercent, recentIDs, window, rnd)
}

// ResolveWithProtection applies m, then SelectWithProtection.
func (m Modifier) ResolveWithProtection(candidates []Candidate, bonusPercent float64, recentIDs []string, window int, rnd RandomSource) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, ErrEmptyPool
	}
	return SelectWithProtection(candidates, m.Apply(candidates, bonusPercent), recentIDs, window, rnd)
}

func recentSet(recentIDs []string, window int) map[string]bool {
	if window <= 0 || len(recentIDs) == 0 {
		return nil
	}
	if window < len(recentIDs) {
		recentIDs = recentIDs[:window]
	}
	set := make(map[string]bool, len(recentIDs))
	for _, id := range recentIDs {
		set[id] = true
	}
	return set
}
