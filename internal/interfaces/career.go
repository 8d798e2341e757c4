package interfaces

import "github.com/user/crooked-ladder/internal/types"

// CareerManager defines the interface for career operations
type CareerManager interface {
	RegisterCharacter(name string, education types.EducationLevel, major string) (*types.Character, error)
	GetCharacter(characterID string) (*types.Character, error)
	TrainSkill(characterID string, skill types.Skill, amount int) error
	AttemptCrime(characterID, crimeID string) (*types.CrimeAttemptResult, error)
	ApplyToJob(characterID, jobID string, claimed types.ApplicationCV) (*types.ApplicationResult, error)
	RecordPerformance(characterID string, score float64) error
	QuitJob(characterID string) error
	AdvanceDays(days int) error
	GetEmployment(characterID string) (*types.EmploymentState, error)
	GetCharacterStatus(characterID string) (map[string]interface{}, error)
	ListJobs() []*types.JobDefinition
	ListCrimes() []*types.CrimeDefinition
}
