package career

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/crooked-ladder/config"
	"github.com/user/crooked-ladder/internal/types"
)

// scriptedRoller returns pre-seeded answers so resolution branches can be
// forced deterministically.
type scriptedRoller struct {
	chances []bool
	draws   []int
}

func (r *scriptedRoller) Chance(pct float64) bool {
	if len(r.chances) == 0 {
		return false
	}
	next := r.chances[0]
	r.chances = r.chances[1:]
	return next
}

func (r *scriptedRoller) Between(min, max int) int {
	if len(r.draws) == 0 {
		return min
	}
	next := r.draws[0]
	r.draws = r.draws[1:]
	return next
}

func newTestManager(t *testing.T) *CareerManager {
	cfg := config.DefaultConfig()
	cfg.Career.StatePath = filepath.Join(t.TempDir(), "career_state.json")
	return NewCareerManager(cfg)
}

func testCrimeDef() *types.CrimeDefinition {
	return &types.CrimeDefinition{
		ID:   "pickpocket",
		Name: "Pickpocketing",
		Requirement: types.RequirementSpec{
			RequiredLevel: 1,
			RequiredSkills: map[types.Skill]int{
				types.SkillStealth: 10,
			},
			SkillWeights: map[types.Skill]float64{
				types.SkillStealth: 1.0,
			},
			BaseRate: 55,
		},
		MinReward:        20,
		MaxReward:        80,
		ExperienceReward: 5,
		HeatGain:         1,
		HeatOnFail:       2,
		ArrestChance:     15,
		InjuryChance:     5,
		DeathRisk:        1,
	}
}

func testJobDef() *types.JobDefinition {
	return &types.JobDefinition{
		ID:    "bookkeeper",
		Title: "Bookkeeper",
		Requirement: types.RequirementSpec{
			RequiredLevel:     1,
			RequiredEducation: types.EducationHighSchool,
			RequiredSkills: map[types.Skill]int{
				types.SkillAccounting: 20,
			},
		},
		SalaryPerDay:             90,
		ProbationDays:            15,
		ProbationPerformancePct:  70,
		GradeProbationDays:       60,
		OngoingPerformancePct:    65,
		PromotionEligibilityDays: 180,
	}
}

func TestRegisterCharacter(t *testing.T) {
	cm := newTestManager(t)

	character, err := cm.RegisterCharacter("Lena", types.EducationHighSchool, "")
	assert.NoError(t, err)
	assert.NotNil(t, character)
	assert.Equal(t, "Lena", character.Name)
	assert.Equal(t, "active", character.Status)
	assert.Equal(t, cm.config.Career.DefaultMoney, character.Money)
	assert.Equal(t, cm.config.Career.DefaultLevel, character.Attributes.Level)
	assert.Equal(t, types.EducationHighSchool, character.Attributes.Education)
	assert.Len(t, character.History, 0)

	retrieved, err := cm.GetCharacter(character.ID)
	assert.NoError(t, err)
	assert.Equal(t, character.ID, retrieved.ID)

	_, err = cm.RegisterCharacter("", types.EducationNone, "")
	assert.Error(t, err)

	_, err = cm.GetCharacter("missing")
	assert.Error(t, err)
	assert.Equal(t, "character not found", err.Error())
}

func TestTrainSkill(t *testing.T) {
	cm := newTestManager(t)
	character, err := cm.RegisterCharacter("Lena", types.EducationNone, "")
	require.NoError(t, err)

	err = cm.TrainSkill(character.ID, types.SkillStealth, 30)
	assert.NoError(t, err)

	err = cm.TrainSkill(character.ID, types.SkillStealth, 90)
	assert.NoError(t, err)

	updated, err := cm.GetCharacter(character.ID)
	assert.NoError(t, err)
	assert.Equal(t, 100, updated.Attributes.Skills[types.SkillStealth])

	err = cm.TrainSkill(character.ID, types.Skill("juggling"), 10)
	assert.Error(t, err)
	assert.Equal(t, "unknown skill", err.Error())

	err = cm.TrainSkill(character.ID, types.SkillStealth, 0)
	assert.Error(t, err)
}

func TestAttemptCrimeSuccessAppliesDeltas(t *testing.T) {
	cm := newTestManager(t)
	cm.LoadCrimes([]*types.CrimeDefinition{testCrimeDef()})

	character, err := cm.RegisterCharacter("Lena", types.EducationNone, "")
	require.NoError(t, err)
	require.NoError(t, cm.TrainSkill(character.ID, types.SkillStealth, 10))

	startMoney := character.Money

	// success, no death, no arrest, no injury
	cm.SetRoller(&scriptedRoller{chances: []bool{true, false, false, false}, draws: []int{50}})

	result, err := cm.AttemptCrime(character.ID, "pickpocket")
	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Equal(t, 50, result.Reward)

	updated, err := cm.GetCharacter(character.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, updated.Attributes.Heat)
	assert.Equal(t, 5, updated.XP)
	assert.Equal(t, startMoney+50, updated.Money)
	assert.Len(t, updated.History, 1)
	assert.Equal(t, "succeeded", updated.History[0].Outcome)
}

func TestAttemptCrimeFailureRaisesHeat(t *testing.T) {
	cm := newTestManager(t)
	cm.LoadCrimes([]*types.CrimeDefinition{testCrimeDef()})

	character, err := cm.RegisterCharacter("Lena", types.EducationNone, "")
	require.NoError(t, err)

	cm.SetRoller(&scriptedRoller{chances: []bool{false, false, false, false}})

	result, err := cm.AttemptCrime(character.ID, "pickpocket")
	assert.NoError(t, err)
	assert.False(t, result.Success)

	updated, err := cm.GetCharacter(character.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2.0, updated.Attributes.Heat)
	assert.Equal(t, 0, updated.XP)
}

func TestAttemptCrimeDeathMarksCharacter(t *testing.T) {
	cm := newTestManager(t)
	cm.LoadCrimes([]*types.CrimeDefinition{testCrimeDef()})

	character, err := cm.RegisterCharacter("Lena", types.EducationNone, "")
	require.NoError(t, err)

	// success roll then fatal death roll
	cm.SetRoller(&scriptedRoller{chances: []bool{true, true}})

	result, err := cm.AttemptCrime(character.ID, "pickpocket")
	assert.NoError(t, err)
	assert.True(t, result.Died)

	updated, err := cm.GetCharacter(character.ID)
	assert.NoError(t, err)
	assert.Equal(t, "dead", updated.Status)
	assert.Equal(t, 0.0, updated.Attributes.Heat)

	// A dead character can no longer act
	_, err = cm.AttemptCrime(character.ID, "pickpocket")
	assert.Error(t, err)
	assert.Equal(t, "character is not active", err.Error())
}

func TestAttemptCrimeGuards(t *testing.T) {
	cm := newTestManager(t)
	crime := testCrimeDef()
	crime.Requirement.RequiredLevel = 10
	cm.LoadCrimes([]*types.CrimeDefinition{crime})

	character, err := cm.RegisterCharacter("Lena", types.EducationNone, "")
	require.NoError(t, err)

	_, err = cm.AttemptCrime(character.ID, "pickpocket")
	assert.Error(t, err)
	assert.Equal(t, "character level too low for this crime", err.Error())

	_, err = cm.AttemptCrime(character.ID, "bank_job")
	assert.Error(t, err)
	assert.Equal(t, "crime not found", err.Error())

	_, err = cm.AttemptCrime("missing", "pickpocket")
	assert.Error(t, err)
	assert.Equal(t, "character not found", err.Error())
}

func TestApplyToJobHonestHire(t *testing.T) {
	cm := newTestManager(t)
	cm.LoadJobs([]*types.JobDefinition{testJobDef()})

	character, err := cm.RegisterCharacter("Lena", types.EducationHighSchool, "")
	require.NoError(t, err)
	require.NoError(t, cm.TrainSkill(character.ID, types.SkillAccounting, 25))

	// no review, interview succeeds
	cm.SetRoller(&scriptedRoller{chances: []bool{false, true}})

	result, err := cm.ApplyToJob(character.ID, "bookkeeper", types.ApplicationCV{
		ClaimedYearsExperience: 0,
		ClaimedSkills:          map[types.Skill]int{types.SkillAccounting: 25},
	})
	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Hired)
	assert.Equal(t, 0, result.Suspicion.SuspicionLevel)
	assert.Equal(t, types.InterviewEasy, result.Suspicion.InterviewDifficulty)

	employment, err := cm.GetEmployment(character.ID)
	assert.NoError(t, err)
	assert.Equal(t, types.StatusProbation, employment.Status)
	assert.Equal(t, 15, employment.ProbationDaysRemaining)
	assert.Equal(t, 70, employment.RequiredPerformancePct)

	// Already employed: second application is refused
	_, err = cm.ApplyToJob(character.ID, "bookkeeper", types.ApplicationCV{})
	assert.Error(t, err)
	assert.Equal(t, "character already employed", err.Error())
}

func TestApplyToJobInflatedCVCaughtOnReview(t *testing.T) {
	cm := newTestManager(t)
	cm.LoadJobs([]*types.JobDefinition{testJobDef()})

	character, err := cm.RegisterCharacter("Lena", types.EducationHighSchool, "")
	require.NoError(t, err)

	// Real record is empty; the CV claims seven years and expert accounting.
	// Review fires and the suspicion is too high to survive it.
	cm.SetRoller(&scriptedRoller{chances: []bool{true, true}})

	result, err := cm.ApplyToJob(character.ID, "bookkeeper", types.ApplicationCV{
		ClaimedYearsExperience: 7,
		ClaimedSkills:          map[types.Skill]int{types.SkillAccounting: 90},
	})
	assert.NoError(t, err)
	assert.True(t, result.Reviewed)
	assert.False(t, result.Hired)
	assert.Greater(t, result.Suspicion.SuspicionLevel, 60)

	_, err = cm.GetEmployment(character.ID)
	assert.Error(t, err)
}

func TestApplyToJobSuspiciousHireGetsStrictProbation(t *testing.T) {
	cm := newTestManager(t)
	cm.LoadJobs([]*types.JobDefinition{testJobDef()})

	character, err := cm.RegisterCharacter("Lena", types.EducationHighSchool, "")
	require.NoError(t, err)

	// Moderate embellishment: three invented years, suspicion 30.
	// No review, interview succeeds anyway.
	cm.SetRoller(&scriptedRoller{chances: []bool{false, true}})

	result, err := cm.ApplyToJob(character.ID, "bookkeeper", types.ApplicationCV{
		ClaimedYearsExperience: 3,
	})
	assert.NoError(t, err)
	assert.True(t, result.Hired)
	assert.Equal(t, 30, result.Suspicion.SuspicionLevel)

	employment, err := cm.GetEmployment(character.ID)
	assert.NoError(t, err)
	assert.Equal(t, 15, employment.ProbationDaysRemaining)
	assert.Equal(t, 70, employment.RequiredPerformancePct)
}

func TestPerformanceAndDayAdvancement(t *testing.T) {
	cm := newTestManager(t)
	cm.LoadJobs([]*types.JobDefinition{testJobDef()})

	character, err := cm.RegisterCharacter("Lena", types.EducationHighSchool, "")
	require.NoError(t, err)

	cm.SetRoller(&scriptedRoller{chances: []bool{false, true}})
	_, err = cm.ApplyToJob(character.ID, "bookkeeper", types.ApplicationCV{})
	require.NoError(t, err)

	require.NoError(t, cm.RecordPerformance(character.ID, 80))

	startMoney := 0
	if ch, err := cm.GetCharacter(character.ID); err == nil {
		startMoney = ch.Money
	}

	require.NoError(t, cm.AdvanceDays(15))

	employment, err := cm.GetEmployment(character.ID)
	assert.NoError(t, err)
	assert.Equal(t, types.StatusActive, employment.Status)
	assert.Equal(t, 1, employment.Grade)

	updated, err := cm.GetCharacter(character.ID)
	assert.NoError(t, err)
	assert.Equal(t, startMoney+15*90, updated.Money)
	assert.InDelta(t, 15.0/365.0, updated.Attributes.YearsInJob, 1e-9)
}

func TestRecordPerformanceBlendsAfterZeroScore(t *testing.T) {
	cm := newTestManager(t)
	cm.LoadJobs([]*types.JobDefinition{testJobDef()})

	character, err := cm.RegisterCharacter("Lena", types.EducationHighSchool, "")
	require.NoError(t, err)

	cm.SetRoller(&scriptedRoller{chances: []bool{false, true}})
	_, err = cm.ApplyToJob(character.ID, "bookkeeper", types.ApplicationCV{})
	require.NoError(t, err)

	// A recorded zero is a real sample: the next score blends against it
	// instead of landing at full weight.
	require.NoError(t, cm.RecordPerformance(character.ID, 0))
	require.NoError(t, cm.RecordPerformance(character.ID, 100))

	employment, err := cm.GetEmployment(character.ID)
	assert.NoError(t, err)
	assert.InDelta(t, 30.0, employment.PerformanceScore, 1e-9)
}

func TestAdvanceDaysTerminatesDeadCharacterEmployment(t *testing.T) {
	cm := newTestManager(t)
	cm.LoadJobs([]*types.JobDefinition{testJobDef()})
	cm.LoadCrimes([]*types.CrimeDefinition{testCrimeDef()})

	character, err := cm.RegisterCharacter("Lena", types.EducationHighSchool, "")
	require.NoError(t, err)

	cm.SetRoller(&scriptedRoller{chances: []bool{false, true}})
	_, err = cm.ApplyToJob(character.ID, "bookkeeper", types.ApplicationCV{})
	require.NoError(t, err)

	// Fatal side job: success roll then death roll.
	cm.SetRoller(&scriptedRoller{chances: []bool{true, true}})
	result, err := cm.AttemptCrime(character.ID, "pickpocket")
	require.NoError(t, err)
	require.True(t, result.Died)

	dead, err := cm.GetCharacter(character.ID)
	require.NoError(t, err)
	moneyAtDeath := dead.Money

	require.NoError(t, cm.AdvanceDays(5))

	// The position closes out and no salary accrues past death.
	employment, err := cm.GetEmployment(character.ID)
	assert.NoError(t, err)
	assert.Equal(t, types.StatusTerminated, employment.Status)

	updated, err := cm.GetCharacter(character.ID)
	assert.NoError(t, err)
	assert.Equal(t, moneyAtDeath, updated.Money)
	assert.Equal(t, 0.0, updated.Attributes.YearsInJob)
}

func TestFailedProbationTerminates(t *testing.T) {
	cm := newTestManager(t)
	cm.LoadJobs([]*types.JobDefinition{testJobDef()})

	character, err := cm.RegisterCharacter("Lena", types.EducationHighSchool, "")
	require.NoError(t, err)

	cm.SetRoller(&scriptedRoller{chances: []bool{false, true}})
	_, err = cm.ApplyToJob(character.ID, "bookkeeper", types.ApplicationCV{})
	require.NoError(t, err)

	require.NoError(t, cm.RecordPerformance(character.ID, 60))
	require.NoError(t, cm.AdvanceDays(15))

	employment, err := cm.GetEmployment(character.ID)
	assert.NoError(t, err)
	assert.Equal(t, types.StatusTerminated, employment.Status)

	// Terminated employment no longer accepts performance
	err = cm.RecordPerformance(character.ID, 90)
	assert.Error(t, err)

	// But the character may apply again
	cm.SetRoller(&scriptedRoller{chances: []bool{false, true}})
	result, err := cm.ApplyToJob(character.ID, "bookkeeper", types.ApplicationCV{})
	assert.NoError(t, err)
	assert.True(t, result.Hired)
}

func TestQuitJob(t *testing.T) {
	cm := newTestManager(t)
	cm.LoadJobs([]*types.JobDefinition{testJobDef()})

	character, err := cm.RegisterCharacter("Lena", types.EducationHighSchool, "")
	require.NoError(t, err)

	err = cm.QuitJob(character.ID)
	assert.Error(t, err)

	cm.SetRoller(&scriptedRoller{chances: []bool{false, true}})
	_, err = cm.ApplyToJob(character.ID, "bookkeeper", types.ApplicationCV{})
	require.NoError(t, err)

	assert.NoError(t, cm.QuitJob(character.ID))

	employment, err := cm.GetEmployment(character.ID)
	assert.NoError(t, err)
	assert.Equal(t, types.StatusTerminated, employment.Status)
}

func TestGetCharacterStatus(t *testing.T) {
	cm := newTestManager(t)
	cm.LoadJobs([]*types.JobDefinition{testJobDef()})

	character, err := cm.RegisterCharacter("Lena", types.EducationHighSchool, "")
	require.NoError(t, err)

	status, err := cm.GetCharacterStatus(character.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Lena", status["name"])
	assert.Equal(t, "active", status["status"])
	assert.NotContains(t, status, "employment")

	cm.SetRoller(&scriptedRoller{chances: []bool{false, true}})
	_, err = cm.ApplyToJob(character.ID, "bookkeeper", types.ApplicationCV{})
	require.NoError(t, err)

	status, err = cm.GetCharacterStatus(character.ID)
	assert.NoError(t, err)
	employment, ok := status["employment"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "Bookkeeper", employment["job"])
	assert.Equal(t, types.StatusProbation, employment["status"])

	_, err = cm.GetCharacterStatus("missing")
	assert.Error(t, err)
}
