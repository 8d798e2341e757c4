package engine

import (
	"github.com/user/crooked-ladder/internal/types"
)

// ComputeSuspicion screens a CV against the character's real record. Only
// over-claiming counts: an honest or modest CV scores zero. The function is
// pure and deterministic.
func ComputeSuspicion(cv types.ApplicationCV) types.SuspicionResult {
	suspicion := 0.0

	if lie := cv.ClaimedYearsExperience - cv.RealYearsExperience; lie > 0 {
		suspicion += lie * 10
	}

	for skill, claimed := range cv.ClaimedSkills {
		actual := 0
		if cv.RealSkills != nil {
			actual = cv.RealSkills[skill]
		}
		if lie := claimed - actual; lie > 0 {
			suspicion += float64(lie/10) * 5
		}
	}

	level := int(suspicion)
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}

	return types.SuspicionResult{
		SuspicionLevel:      level,
		InterviewDifficulty: difficultyFor(level),
		ReviewChance:        reviewChanceFor(level),
		ProbationTerms:      probationTermsFor(level),
	}
}

func difficultyFor(level int) types.InterviewDifficulty {
	switch {
	case level <= 20:
		return types.InterviewEasy
	case level <= 40:
		return types.InterviewMedium
	case level <= 60:
		return types.InterviewHard
	case level <= 80:
		return types.InterviewVeryHard
	default:
		return types.InterviewExtreme
	}
}

// A heavily embellished CV is more likely to get a close read from the
// recruiter, not less.
func reviewChanceFor(level int) float64 {
	chance := 50 + float64(level)*0.5
	if chance > 95 {
		chance = 95
	}
	return chance
}

func probationTermsFor(level int) *types.ProbationTerms {
	switch {
	case level <= 20:
		return nil
	case level < 40:
		return &types.ProbationTerms{DurationDays: 15, RequiredPerformancePct: 70}
	case level <= 60:
		return &types.ProbationTerms{DurationDays: 30, RequiredPerformancePct: 75}
	default:
		return &types.ProbationTerms{DurationDays: 45, RequiredPerformancePct: 80}
	}
}
