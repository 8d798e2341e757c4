package engine

import (
	"github.com/user/crooked-ladder/internal/types"
)

// Interview difficulty scales down the effective hire probability.
var difficultyFactor = map[types.InterviewDifficulty]float64{
	types.InterviewEasy:     1.0,
	types.InterviewMedium:   0.9,
	types.InterviewHard:     0.75,
	types.InterviewVeryHard: 0.6,
	types.InterviewExtreme:  0.45,
}

// ResolveCrimeAttempt rolls one crime attempt. The success trial and the
// arrest, injury and death trials are independent: a successful score can
// still end in handcuffs. Precedence is death > arrest > injury; a fatal
// attempt yields no reward, no XP and no heat, and suppresses the other
// flags. The caller applies the returned deltas to the character.
func ResolveCrimeAttempt(attrs types.CharacterAttributes, crime types.CrimeDefinition, roller Roller) types.CrimeAttemptResult {
	rate := CrimeSuccessRate(attrs, crime.Requirement)

	result := types.CrimeAttemptResult{
		Success: roller.Chance(float64(rate)),
	}

	if roller.Chance(crime.DeathRisk) {
		result.Died = true
		result.Success = false
		return result
	}

	result.Arrested = roller.Chance(crime.ArrestChance)
	result.Injured = roller.Chance(crime.InjuryChance)

	if result.Success {
		result.Reward = roller.Between(crime.MinReward, crime.MaxReward)
		result.XPGain = crime.ExperienceReward
		result.HeatGain = crime.HeatGain
	} else {
		result.HeatGain = crime.HeatOnFail
	}

	return result
}

// ResolveApplication rolls the single hire decision for a job application,
// down-weighting the computed success rate by the suspicion-derived
// interview difficulty.
func ResolveApplication(successRate int, suspicion types.SuspicionResult, roller Roller) bool {
	factor, ok := difficultyFactor[suspicion.InterviewDifficulty]
	if !ok {
		factor = 1.0
	}
	return roller.Chance(float64(ClampRate(successRate)) * factor)
}
