package career

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/user/crooked-ladder/config"
	"github.com/user/crooked-ladder/internal/engine"
	"github.com/user/crooked-ladder/internal/interfaces"
	"github.com/user/crooked-ladder/internal/types"
	"go.uber.org/zap"
)

// CareerManager hosts the rules engine and owns all mutable character and
// employment state. Every mutating operation runs under the state lock, so
// concurrent attempts against the same character serialize here.
type CareerManager struct {
	state     *types.CareerState
	stateLock sync.RWMutex
	jobs      map[string]*types.JobDefinition
	crimes    map[string]*types.CrimeDefinition
	storage   *StateStorage
	config    config.Config
	Logger    *zap.Logger
	roller    engine.Roller
	validate  *validator.Validate
	dayCycle  *DayCycleSystem
}

// Ensure CareerManager satisfies the interfaces.CareerManager interface
var _ interfaces.CareerManager = (*CareerManager)(nil)

// NewCareerManager creates a new career manager
func NewCareerManager(cfg config.Config) *CareerManager {
	// Create storage
	storage := NewStateStorage(cfg.Career.StatePath)

	// Try to load existing state
	state, err := storage.LoadState()
	if err != nil {
		// If there's an error loading, create a new state
		state = &types.CareerState{
			Characters:  make(map[string]*types.Character),
			Employments: make(map[string]*types.EmploymentState),
		}
	}

	cm := &CareerManager{
		state:    state,
		jobs:     make(map[string]*types.JobDefinition),
		crimes:   make(map[string]*types.CrimeDefinition),
		storage:  storage,
		config:   cfg,
		Logger:   zap.NewNop(), // Will be set by the server
		roller:   engine.NewDiceRoller(),
		validate: validator.New(),
	}

	// Initialize day cycle system
	cm.dayCycle = NewDayCycleSystem(cm, time.Duration(cfg.Career.DayCycleInterval)*time.Minute)

	return cm
}

// SetLogger sets the manager's logger
func (cm *CareerManager) SetLogger(logger *zap.Logger) {
	cm.Logger = logger
}

// SetRoller replaces the randomness source. Tests pass a seeded roller to
// make outcomes reproducible.
func (cm *CareerManager) SetRoller(roller engine.Roller) {
	cm.roller = roller
}

// saveState persists the current career state
func (cm *CareerManager) saveState() error {
	return cm.storage.SaveState(cm.state)
}

// RegisterCharacter adds a new character to the game
func (cm *CareerManager) RegisterCharacter(name string, education types.EducationLevel, major string) (*types.Character, error) {
	cm.stateLock.Lock()
	defer cm.stateLock.Unlock()

	if name == "" {
		return nil, errors.New("character name is required")
	}

	character := &types.Character{
		ID:           uuid.New().String(),
		Name:         name,
		CreatedAt:    time.Now(),
		LastActiveAt: time.Now(),
		Status:       "active",
		Money:        cm.config.Career.DefaultMoney,
		Attributes: types.CharacterAttributes{
			Level:     cm.config.Career.DefaultLevel,
			Education: education,
			Major:     major,
			Skills:    make(map[types.Skill]int),
		},
		History: make([]types.CareerDecision, 0),
	}

	cm.state.Characters[character.ID] = character

	if err := cm.saveState(); err != nil {
		return nil, fmt.Errorf("failed to save career state: %w", err)
	}

	return character, nil
}

// GetCharacter retrieves a character by ID
func (cm *CareerManager) GetCharacter(characterID string) (*types.Character, error) {
	cm.stateLock.RLock()
	defer cm.stateLock.RUnlock()

	character, exists := cm.state.Characters[characterID]
	if !exists {
		return nil, errors.New("character not found")
	}

	return character, nil
}

// TrainSkill raises one of a character's skills, capped at 100
func (cm *CareerManager) TrainSkill(characterID string, skill types.Skill, amount int) error {
	cm.stateLock.Lock()
	defer cm.stateLock.Unlock()

	character, exists := cm.state.Characters[characterID]
	if !exists {
		return errors.New("character not found")
	}
	if !types.ValidSkill(skill) {
		return errors.New("unknown skill")
	}
	if amount <= 0 {
		return errors.New("training amount must be positive")
	}

	value := character.Attributes.Skills[skill] + amount
	if value > 100 {
		value = 100
	}
	character.Attributes.Skills[skill] = value
	character.LastActiveAt = time.Now()

	if err := cm.saveState(); err != nil {
		return fmt.Errorf("failed to save career state: %w", err)
	}

	return nil
}

// AttemptCrime resolves one crime attempt for a character and applies the
// resulting heat, XP and money deltas
func (cm *CareerManager) AttemptCrime(characterID, crimeID string) (*types.CrimeAttemptResult, error) {
	cm.stateLock.Lock()
	defer cm.stateLock.Unlock()

	character, exists := cm.state.Characters[characterID]
	if !exists {
		return nil, errors.New("character not found")
	}
	if character.Status != "active" {
		return nil, errors.New("character is not active")
	}

	crime, exists := cm.crimes[crimeID]
	if !exists {
		return nil, errors.New("crime not found")
	}

	if character.Attributes.Level < crime.Requirement.RequiredLevel {
		return nil, errors.New("character level too low for this crime")
	}

	result := engine.ResolveCrimeAttempt(character.Attributes, *crime, cm.roller)

	// Apply the deltas the engine reported. Heat only ever goes up here;
	// any decay belongs to a collaborator outside this engine.
	character.Attributes.Heat += result.HeatGain
	character.XP += result.XPGain
	character.Money += result.Reward
	character.LastActiveAt = time.Now()

	outcome := "failed"
	switch {
	case result.Died:
		character.Status = "dead"
		outcome = "died"
	case result.Success && result.Arrested:
		outcome = "succeeded but arrested"
	case result.Success:
		outcome = "succeeded"
	case result.Arrested:
		outcome = "failed and arrested"
	}

	character.History = append(character.History, types.CareerDecision{
		ID:          uuid.New().String(),
		Kind:        "crime",
		TargetID:    crimeID,
		Timestamp:   time.Now(),
		Outcome:     outcome,
		XPChange:    result.XPGain,
		MoneyChange: result.Reward,
		HeatChange:  result.HeatGain,
	})

	cm.Logger.Info("Crime attempt resolved",
		zap.String("character_id", characterID),
		zap.String("crime_id", crimeID),
		zap.Bool("success", result.Success),
		zap.Bool("arrested", result.Arrested),
		zap.Bool("injured", result.Injured),
		zap.Bool("died", result.Died),
		zap.Float64("heat", character.Attributes.Heat))

	if err := cm.saveState(); err != nil {
		return nil, fmt.Errorf("failed to save career state: %w", err)
	}

	return &result, nil
}

// ApplyToJob resolves a job application. The claimed side of the CV comes
// from the caller; the real side is always taken from the character's
// authoritative record, never trusted from input. Rejection is a normal
// result, not an error.
func (cm *CareerManager) ApplyToJob(characterID, jobID string, claimed types.ApplicationCV) (*types.ApplicationResult, error) {
	cm.stateLock.Lock()
	defer cm.stateLock.Unlock()

	character, exists := cm.state.Characters[characterID]
	if !exists {
		return nil, errors.New("character not found")
	}
	if character.Status != "active" {
		return nil, errors.New("character is not active")
	}

	job, exists := cm.jobs[jobID]
	if !exists {
		return nil, errors.New("job not found")
	}

	if employment, employed := cm.state.Employments[characterID]; employed &&
		employment.Status != types.StatusTerminated {
		return nil, errors.New("character already employed")
	}

	if err := cm.validate.Struct(&claimed); err != nil {
		return nil, fmt.Errorf("invalid application: %w", err)
	}
	for skill := range claimed.ClaimedSkills {
		if !types.ValidSkill(skill) {
			return nil, errors.New("unknown skill in application")
		}
	}

	cv := types.ApplicationCV{
		ClaimedYearsExperience: claimed.ClaimedYearsExperience,
		RealYearsExperience:    character.Attributes.YearsInJob,
		ClaimedSkills:          claimed.ClaimedSkills,
		RealSkills:             character.Attributes.Skills,
	}

	suspicion := engine.ComputeSuspicion(cv)
	rate := engine.JobSuccessRate(character.Attributes, job.Requirement)

	result := &types.ApplicationResult{
		SuccessRate: rate,
		Suspicion:   suspicion,
	}

	// An embellished CV invites a closer read. A review that catches a
	// heavily inflated CV ends the application before the interview.
	result.Reviewed = cm.roller.Chance(suspicion.ReviewChance)
	if result.Reviewed && suspicion.SuspicionLevel > 60 {
		result.Hired = false
	} else {
		result.Hired = engine.ResolveApplication(rate, suspicion, cm.roller)
	}

	if result.Hired {
		employment := engine.NewEmployment(characterID, *job, suspicion)
		cm.state.Employments[characterID] = &employment
	}

	outcome := "rejected"
	if result.Hired {
		outcome = "hired"
	}
	character.History = append(character.History, types.CareerDecision{
		ID:        uuid.New().String(),
		Kind:      "application",
		TargetID:  jobID,
		Timestamp: time.Now(),
		Outcome:   outcome,
	})
	character.LastActiveAt = time.Now()

	cm.Logger.Info("Job application resolved",
		zap.String("character_id", characterID),
		zap.String("job_id", jobID),
		zap.Int("success_rate", rate),
		zap.Int("suspicion", suspicion.SuspicionLevel),
		zap.Bool("reviewed", result.Reviewed),
		zap.Bool("hired", result.Hired))

	if err := cm.saveState(); err != nil {
		return nil, fmt.Errorf("failed to save career state: %w", err)
	}

	return result, nil
}

// RecordPerformance feeds a work-execution score into a character's rolling
// employment performance
func (cm *CareerManager) RecordPerformance(characterID string, score float64) error {
	cm.stateLock.Lock()
	defer cm.stateLock.Unlock()

	employment, exists := cm.state.Employments[characterID]
	if !exists || employment.Status == types.StatusTerminated {
		return errors.New("character is not employed")
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	// Rolling blend: recent work weighs a third. The sample count, not the
	// score, decides whether history exists, so a recorded zero still blends.
	if employment.PerformanceSamples == 0 {
		employment.PerformanceScore = score
	} else {
		employment.PerformanceScore = employment.PerformanceScore*0.7 + score*0.3
	}
	employment.PerformanceSamples++

	if err := cm.saveState(); err != nil {
		return fmt.Errorf("failed to save career state: %w", err)
	}

	return nil
}

// QuitJob ends a character's current employment
func (cm *CareerManager) QuitJob(characterID string) error {
	cm.stateLock.Lock()
	defer cm.stateLock.Unlock()

	employment, exists := cm.state.Employments[characterID]
	if !exists || employment.Status == types.StatusTerminated {
		return errors.New("character is not employed")
	}

	employment.Status = types.StatusTerminated

	if err := cm.saveState(); err != nil {
		return fmt.Errorf("failed to save career state: %w", err)
	}

	return nil
}

// AdvanceDays moves every active employment forward by the given number of
// simulated days, paying salaries and driving the progression state machine
func (cm *CareerManager) AdvanceDays(days int) error {
	cm.stateLock.Lock()
	defer cm.stateLock.Unlock()

	if days <= 0 {
		return errors.New("days must be positive")
	}

	for characterID, employment := range cm.state.Employments {
		if employment.Status == types.StatusTerminated {
			continue
		}

		character, hasCharacter := cm.state.Characters[characterID]
		if hasCharacter && character.Status != "active" {
			// A dead character cannot hold a position or draw salary.
			employment.Status = types.StatusTerminated
			cm.Logger.Info("Employment terminated for inactive character",
				zap.String("character_id", characterID),
				zap.String("job_id", employment.JobID))
			continue
		}

		job, exists := cm.jobs[employment.JobID]
		if !exists {
			cm.Logger.Warn("Employment references unknown job",
				zap.String("character_id", characterID),
				zap.String("job_id", employment.JobID))
			continue
		}

		before := employment.Status
		advanced := engine.AdvanceEmployment(*employment, days, *job)
		*employment = advanced

		if !hasCharacter {
			continue
		}

		if advanced.Status != types.StatusTerminated {
			character.Money += job.SalaryPerDay * days
			character.Attributes.YearsInJob += float64(days) / 365.0
		}

		if before != advanced.Status {
			cm.Logger.Info("Employment status changed",
				zap.String("character_id", characterID),
				zap.String("job_id", employment.JobID),
				zap.String("from", string(before)),
				zap.String("to", string(advanced.Status)),
				zap.Int("grade", advanced.Grade))
		}
	}

	if err := cm.saveState(); err != nil {
		return fmt.Errorf("failed to save career state: %w", err)
	}

	return nil
}

// GetEmployment retrieves a character's employment state
func (cm *CareerManager) GetEmployment(characterID string) (*types.EmploymentState, error) {
	cm.stateLock.RLock()
	defer cm.stateLock.RUnlock()

	employment, exists := cm.state.Employments[characterID]
	if !exists {
		return nil, errors.New("character is not employed")
	}

	return employment, nil
}

// GetCharacterStatus retrieves a character's current status and stats
func (cm *CareerManager) GetCharacterStatus(characterID string) (map[string]interface{}, error) {
	cm.stateLock.RLock()
	defer cm.stateLock.RUnlock()

	character, exists := cm.state.Characters[characterID]
	if !exists {
		return nil, errors.New("character not found")
	}

	status := map[string]interface{}{
		"name":         character.Name,
		"status":       character.Status,
		"xp":           character.XP,
		"money":        character.Money,
		"level":        character.Attributes.Level,
		"education":    character.Attributes.Education,
		"heat":         character.Attributes.Heat,
		"years_in_job": character.Attributes.YearsInJob,
		"skills":       character.Attributes.Skills,
	}

	if employment, employed := cm.state.Employments[characterID]; employed {
		job, exists := cm.jobs[employment.JobID]
		title := employment.JobID
		if exists {
			title = job.Title
		}
		status["employment"] = map[string]interface{}{
			"job":                 title,
			"status":              employment.Status,
			"grade":               employment.Grade,
			"days_in_grade":       employment.DaysInGrade,
			"performance":         employment.PerformanceScore,
			"probation_remaining": employment.ProbationDaysRemaining,
			"promotion_eligible":  employment.PromotionEligible,
		}
	}

	return status, nil
}

// LoadJobs loads job definitions into the catalog
func (cm *CareerManager) LoadJobs(jobs []*types.JobDefinition) {
	cm.stateLock.Lock()
	defer cm.stateLock.Unlock()

	for _, job := range jobs {
		cm.jobs[job.ID] = job
	}
}

// LoadCrimes loads crime definitions into the catalog
func (cm *CareerManager) LoadCrimes(crimes []*types.CrimeDefinition) {
	cm.stateLock.Lock()
	defer cm.stateLock.Unlock()

	for _, crime := range crimes {
		cm.crimes[crime.ID] = crime
	}
}

// ListJobs returns all job definitions in a stable order
func (cm *CareerManager) ListJobs() []*types.JobDefinition {
	cm.stateLock.RLock()
	defer cm.stateLock.RUnlock()

	ids := make([]string, 0, len(cm.jobs))
	for id := range cm.jobs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	jobs := make([]*types.JobDefinition, 0, len(ids))
	for _, id := range ids {
		jobs = append(jobs, cm.jobs[id])
	}
	return jobs
}

// ListCrimes returns all crime definitions in a stable order
func (cm *CareerManager) ListCrimes() []*types.CrimeDefinition {
	cm.stateLock.RLock()
	defer cm.stateLock.RUnlock()

	ids := make([]string, 0, len(cm.crimes))
	for id := range cm.crimes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	crimes := make([]*types.CrimeDefinition, 0, len(ids))
	for _, id := range ids {
		crimes = append(crimes, cm.crimes[id])
	}
	return crimes
}

// StartDayCycle starts the background day cycle
func (cm *CareerManager) StartDayCycle() {
	cm.dayCycle.Start()
}

// StopDayCycle stops the background day cycle
func (cm *CareerManager) StopDayCycle() {
	cm.dayCycle.Stop()
}
