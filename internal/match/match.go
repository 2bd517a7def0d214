// Package match computes the coarse candidate-to-task fit signal.
package match

// Score constants. The matcher is deliberately binary: a task either
// wants a skill the candidate holds or it does not.
const (
	MatchScore   = 90
	NoMatchScore = 30
)

// Score returns MatchScore when requiredSkill is a member of skills and
// NoMatchScore otherwise. Membership is case-sensitive and exact; there
// is no partial credit or normalization. Pure and deterministic.
func Score(skills []string, requiredSkill string) int {
	for _, skill := range skills {
		if skill == requiredSkill {
			return MatchScore
		}
	}
	return NoMatchScore
}
