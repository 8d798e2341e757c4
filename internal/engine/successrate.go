package engine

import (
	"math"

	"github.com/user/crooked-ladder/internal/types"
)

// Success rates are never exactly impossible or certain.
const (
	minSuccessRate = 5
	maxSuccessRate = 95
)

// ClampRate clamps a computed rate to the [5,95] band. Re-applying it to an
// already-clamped value is a no-op.
func ClampRate(rate int) int {
	if rate < minSuccessRate {
		return minSuccessRate
	}
	if rate > maxSuccessRate {
		return maxSuccessRate
	}
	return rate
}

// JobSuccessRate computes the interview success rate for a job application
// from the character's real attributes. The result is clamped to [5,95].
func JobSuccessRate(attrs types.CharacterAttributes, req types.RequirementSpec) int {
	rate := 50

	// Level
	switch {
	case attrs.Level >= req.RequiredLevel+5:
		rate += 20
	case attrs.Level >= req.RequiredLevel:
		rate += 10
	default:
		rate -= 30
	}

	// Education
	if req.RequiredEducation != "" {
		switch {
		case attrs.Education.Rank() > req.RequiredEducation.Rank():
			rate += 15
		case attrs.Education.Rank() == req.RequiredEducation.Rank():
			rate += 5
		default:
			rate -= 40
		}
	}

	// Major
	if req.RequiredMajor != "" {
		if attrs.Major == req.RequiredMajor {
			rate += 15
		} else {
			rate -= 25
		}
	}

	// Skills: near-misses cost less than outright gaps, and meeting every
	// minimum earns a flat bonus.
	skillsMet := 0
	for skill, required := range req.RequiredSkills {
		value := attrs.SkillValue(skill)
		switch {
		case value >= required:
			skillsMet++
		case float64(value) >= 0.8*float64(required):
			rate -= 5
		default:
			rate -= 15
		}
	}
	if len(req.RequiredSkills) > 0 && skillsMet == len(req.RequiredSkills) {
		rate += 10
	}

	return ClampRate(rate)
}

// CrimeSuccessRate computes the success rate for a crime attempt. The rate
// starts at the crime's base rate and moves with the weighted surplus or
// deficit of each relevant skill against its minimum, so raising any
// weighted skill never lowers the result. Meeting every minimum exactly
// yields exactly the base rate. Clamped to [5,95].
func CrimeSuccessRate(attrs types.CharacterAttributes, req types.RequirementSpec) int {
	adjustment := 0.0
	for skill, weight := range req.SkillWeights {
		if weight <= 0 {
			continue
		}
		required := 0
		if req.RequiredSkills != nil {
			required = req.RequiredSkills[skill]
		}
		adjustment += weight * float64(attrs.SkillValue(skill)-required) / 2.0
	}

	return ClampRate(req.BaseRate + int(math.Round(adjustment)))
}
