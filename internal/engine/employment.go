package engine

import (
	"time"

	"github.com/user/crooked-ladder/internal/types"
)

// MaxGrade is the top within-position pay tier.
const MaxGrade = 4

// NewEmployment creates the probation-phase employment state for a fresh
// hire. A suspicious application carries its own stricter probation terms;
// a clean one gets the job's standard terms.
func NewEmployment(characterID string, job types.JobDefinition, suspicion types.SuspicionResult) types.EmploymentState {
	days := job.ProbationDays
	performance := job.ProbationPerformancePct
	if suspicion.ProbationTerms != nil {
		days = suspicion.ProbationTerms.DurationDays
		performance = suspicion.ProbationTerms.RequiredPerformancePct
	}

	return types.EmploymentState{
		CharacterID:            characterID,
		JobID:                  job.ID,
		Status:                 types.StatusProbation,
		Grade:                  1,
		ProbationDaysRemaining: days,
		RequiredPerformancePct: performance,
		HiredAt:                time.Now(),
	}
}

// AdvanceEmployment advances an employment state by the given number of
// elapsed days and returns the new state. It is a pure transition function:
// the caller owns the clock and the performance feed.
//
// Probation is evaluated once its remaining days run out: meeting the
// required performance moves the hire into the first active grade, missing
// it terminates the position. Active grades auto-advance after the job's
// grade probation period whenever performance sits at or above the ongoing
// threshold; sub-threshold performance only delays the check, it never
// demotes. Promotion eligibility unlocks after the job's eligibility period
// measured from entry into the first active grade. Terminated is absorbing:
// advancing it is a no-op returning the state unchanged.
func AdvanceEmployment(state types.EmploymentState, daysElapsed int, job types.JobDefinition) types.EmploymentState {
	if state.Status == types.StatusTerminated || daysElapsed <= 0 {
		return state
	}

	for day := 0; day < daysElapsed; day++ {
		switch state.Status {
		case types.StatusProbation:
			state.ProbationDaysRemaining--
			if state.ProbationDaysRemaining > 0 {
				continue
			}
			state.ProbationDaysRemaining = 0
			if state.PerformanceScore >= float64(state.RequiredPerformancePct) {
				state.Status = types.StatusActive
				state.Grade = 1
				state.DaysInGrade = 0
				state.DaysSinceFirstGrade = 0
			} else {
				state.Status = types.StatusTerminated
				return state
			}

		case types.StatusActive:
			state.DaysInGrade++
			state.DaysSinceFirstGrade++

			if state.Grade < MaxGrade &&
				state.DaysInGrade >= job.GradeProbationDays &&
				state.PerformanceScore >= float64(job.OngoingPerformancePct) {
				state.Grade++
				state.DaysInGrade = 0
			}

			if job.PromotionEligibilityDays > 0 &&
				state.DaysSinceFirstGrade >= job.PromotionEligibilityDays {
				state.PromotionEligible = true
			}
		}
	}

	return state
}
