package types

import "time"

// Skill identifies one of the closed set of character skills. Skill names
// arriving from catalogs or CVs are validated against this set at load time.
type Skill string

const (
	SkillStrength     Skill = "strength"
	SkillHacking      Skill = "hacking"
	SkillCharisma     Skill = "charisma"
	SkillIntelligence Skill = "intelligence"
	SkillManagement   Skill = "management"
	SkillLeadership   Skill = "leadership"
	SkillDriving      Skill = "driving"
	SkillStealth      Skill = "stealth"
	SkillLockpicking  Skill = "lockpicking"
	SkillShooting     Skill = "shooting"
	SkillNegotiation  Skill = "negotiation"
	SkillAccounting   Skill = "accounting"
)

// AllSkills lists every valid skill name in a fixed order.
var AllSkills = []Skill{
	SkillStrength, SkillHacking, SkillCharisma, SkillIntelligence,
	SkillManagement, SkillLeadership, SkillDriving, SkillStealth,
	SkillLockpicking, SkillShooting, SkillNegotiation, SkillAccounting,
}

// ValidSkill reports whether s is a member of the closed skill set.
func ValidSkill(s Skill) bool {
	for _, known := range AllSkills {
		if s == known {
			return true
		}
	}
	return false
}

// EducationLevel is an ordered education tier.
type EducationLevel string

const (
	EducationNone        EducationLevel = "none"
	EducationElementary  EducationLevel = "elementary"
	EducationHighSchool  EducationLevel = "high_school"
	EducationTradeSchool EducationLevel = "trade_school"
	EducationUniversity  EducationLevel = "university"
	EducationGraduate    EducationLevel = "graduate"
)

var educationOrder = []EducationLevel{
	EducationNone, EducationElementary, EducationHighSchool,
	EducationTradeSchool, EducationUniversity, EducationGraduate,
}

// Rank returns the ordinal position of the education level. Unknown values
// rank as none.
func (e EducationLevel) Rank() int {
	for i, level := range educationOrder {
		if e == level {
			return i
		}
	}
	return 0
}

// CharacterAttributes is a snapshot of a character's real stats, plus the
// risk counters the engine mutates through the manager.
type CharacterAttributes struct {
	Level      int            `json:"level"`
	Education  EducationLevel `json:"education"`
	Major      string         `json:"major,omitempty"`
	Skills     map[Skill]int  `json:"skills"`
	Heat       float64        `json:"heat"`
	YearsInJob float64        `json:"years_in_job"`
}

// SkillValue returns the character's value for a skill, treating missing
// entries as zero.
func (a CharacterAttributes) SkillValue(s Skill) int {
	if a.Skills == nil {
		return 0
	}
	return a.Skills[s]
}

// Character is a registered player character.
type Character struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	CreatedAt    time.Time           `json:"created_at"`
	LastActiveAt time.Time           `json:"last_active_at"`
	Status       string              `json:"status"` // active, dead
	XP           int                 `json:"xp"`
	Money        int                 `json:"money"`
	Attributes   CharacterAttributes `json:"attributes"`
	History      []CareerDecision    `json:"history"`
}

// CareerDecision records one resolved crime attempt or job application.
type CareerDecision struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"` // crime, application
	TargetID    string    `json:"target_id"`
	Timestamp   time.Time `json:"timestamp"`
	Outcome     string    `json:"outcome"`
	XPChange    int       `json:"xp_change"`
	MoneyChange int       `json:"money_change"`
	HeatChange  float64   `json:"heat_change"`
}

// RequirementSpec is the immutable requirement half of a job or crime
// definition. Crimes leave the education and major fields empty.
type RequirementSpec struct {
	RequiredLevel     int               `json:"required_level" validate:"min=0"`
	RequiredEducation EducationLevel    `json:"required_education,omitempty"`
	RequiredMajor     string            `json:"required_major,omitempty"`
	RequiredSkills    map[Skill]int     `json:"required_skills,omitempty"`
	BaseRate          int               `json:"base_rate" validate:"min=0,max=100"`
	SkillWeights      map[Skill]float64 `json:"skill_weights,omitempty"`
}

// JobDefinition describes a job position, its requirements and its
// progression parameters.
type JobDefinition struct {
	ID          string          `json:"id" validate:"required"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description,omitempty"`
	Requirement RequirementSpec `json:"requirement"`

	SalaryPerDay             int    `json:"salary_per_day" validate:"min=0"`
	ProbationDays            int    `json:"probation_days" validate:"min=0"`
	ProbationPerformancePct  int    `json:"probation_performance_pct" validate:"min=0,max=100"`
	GradeProbationDays       int    `json:"grade_probation_days" validate:"min=1"`
	OngoingPerformancePct    int    `json:"ongoing_performance_pct" validate:"min=0,max=100"`
	PromotionEligibilityDays int    `json:"promotion_eligibility_days" validate:"min=0"`
	NextPositionID           string `json:"next_position_id,omitempty"`
}

// CrimeDefinition describes a crime type, its requirements and its risk
// profile. Chances are percentages in [0,100].
type CrimeDefinition struct {
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description,omitempty"`
	Requirement RequirementSpec `json:"requirement"`

	MinReward        int     `json:"min_reward" validate:"min=0"`
	MaxReward        int     `json:"max_reward" validate:"min=0"`
	ExperienceReward int     `json:"experience_reward" validate:"min=0"`
	HeatGain         float64 `json:"heat_gain" validate:"min=0"`
	HeatOnFail       float64 `json:"heat_on_fail" validate:"min=0"`
	ArrestChance     float64 `json:"arrest_chance" validate:"min=0,max=100"`
	InjuryChance     float64 `json:"injury_chance" validate:"min=0,max=100"`
	DeathRisk        float64 `json:"death_risk" validate:"min=0,max=100"`
}

// ApplicationCV is the transient claimed-vs-real snapshot submitted with a
// job application. Claimed values below the real ones are allowed and simply
// contribute no suspicion.
type ApplicationCV struct {
	ClaimedYearsExperience float64       `json:"claimed_years_experience" validate:"min=0"`
	RealYearsExperience    float64       `json:"real_years_experience" validate:"min=0"`
	ClaimedSkills          map[Skill]int `json:"claimed_skills"`
	RealSkills             map[Skill]int `json:"real_skills"`
}

// InterviewDifficulty is the ordinal difficulty derived from suspicion.
type InterviewDifficulty string

const (
	InterviewEasy     InterviewDifficulty = "easy"
	InterviewMedium   InterviewDifficulty = "medium"
	InterviewHard     InterviewDifficulty = "hard"
	InterviewVeryHard InterviewDifficulty = "very_hard"
	InterviewExtreme  InterviewDifficulty = "extreme"
)

// ProbationTerms are the stricter probation conditions imposed on a
// suspicious hire.
type ProbationTerms struct {
	DurationDays           int `json:"duration_days"`
	RequiredPerformancePct int `json:"required_performance_pct"`
}

// SuspicionResult is the outcome of screening a CV against the real record.
type SuspicionResult struct {
	SuspicionLevel      int                 `json:"suspicion_level"`
	InterviewDifficulty InterviewDifficulty `json:"interview_difficulty"`
	ReviewChance        float64             `json:"review_chance"`
	ProbationTerms      *ProbationTerms     `json:"probation_terms,omitempty"`
}

// EmploymentStatus is the lifecycle phase of a held position.
type EmploymentStatus string

const (
	StatusProbation  EmploymentStatus = "probation"
	StatusActive     EmploymentStatus = "active"
	StatusTerminated EmploymentStatus = "terminated"
)

// EmploymentState tracks one character-position pairing.
type EmploymentState struct {
	CharacterID            string           `json:"character_id"`
	JobID                  string           `json:"job_id"`
	Status                 EmploymentStatus `json:"status"`
	Grade                  int              `json:"grade"`
	DaysInGrade            int              `json:"days_in_grade"`
	DaysSinceFirstGrade    int              `json:"days_since_first_grade"`
	ProbationDaysRemaining int              `json:"probation_days_remaining"`
	RequiredPerformancePct int              `json:"required_performance_pct"`
	PerformanceScore       float64          `json:"performance_score"`
	PerformanceSamples     int              `json:"performance_samples"`
	PromotionEligible      bool             `json:"promotion_eligible"`
	HiredAt                time.Time        `json:"hired_at"`
}

// CrimeAttemptResult is emitted once per resolved crime attempt. Heat and XP
// deltas are carried on the result; the manager applies them to the
// character under its state lock.
type CrimeAttemptResult struct {
	Success  bool    `json:"success"`
	Reward   int     `json:"reward"`
	XPGain   int     `json:"xp_gain"`
	HeatGain float64 `json:"heat_gain"`
	Arrested bool    `json:"arrested"`
	Injured  bool    `json:"injured"`
	Died     bool    `json:"died"`
}

// ApplicationResult is emitted once per resolved job application. Rejection
// is a normal result value, not an error.
type ApplicationResult struct {
	Hired       bool            `json:"hired"`
	Reviewed    bool            `json:"reviewed"`
	SuccessRate int             `json:"success_rate"`
	Suspicion   SuspicionResult `json:"suspicion"`
}

// CareerState is the full persisted state of the career system.
type CareerState struct {
	Characters  map[string]*Character       `json:"characters"`
	Employments map[string]*EmploymentState `json:"employments"`
}
