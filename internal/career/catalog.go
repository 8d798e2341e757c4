package career

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/user/crooked-ladder/internal/types"
)

// CatalogLoader loads job and crime definitions from seed files. Catalogs
// are immutable reference data: they are validated once here and never
// mutated by the engine.
type CatalogLoader struct {
	basePath string
	validate *validator.Validate
}

// NewCatalogLoader creates a new catalog loader
func NewCatalogLoader(basePath string) *CatalogLoader {
	return &CatalogLoader{
		basePath: basePath,
		validate: validator.New(),
	}
}

// LoadJobs loads job definitions from file
func (cl *CatalogLoader) LoadJobs() ([]*types.JobDefinition, error) {
	path := filepath.Join(cl.basePath, "jobs.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs file: %w", err)
	}

	var jobs []*types.JobDefinition
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse jobs data: %w", err)
	}

	for _, job := range jobs {
		if err := cl.validate.Struct(job); err != nil {
			return nil, fmt.Errorf("invalid job definition %q: %w", job.ID, err)
		}
		if err := validateRequirement(job.Requirement); err != nil {
			return nil, fmt.Errorf("invalid job definition %q: %w", job.ID, err)
		}
	}

	return jobs, nil
}

// LoadCrimes loads crime definitions from file
func (cl *CatalogLoader) LoadCrimes() ([]*types.CrimeDefinition, error) {
	path := filepath.Join(cl.basePath, "crimes.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read crimes file: %w", err)
	}

	var crimes []*types.CrimeDefinition
	if err := json.Unmarshal(data, &crimes); err != nil {
		return nil, fmt.Errorf("failed to parse crimes data: %w", err)
	}

	for _, crime := range crimes {
		if err := cl.validate.Struct(crime); err != nil {
			return nil, fmt.Errorf("invalid crime definition %q: %w", crime.ID, err)
		}
		if err := validateRequirement(crime.Requirement); err != nil {
			return nil, fmt.Errorf("invalid crime definition %q: %w", crime.ID, err)
		}
		if crime.MaxReward < crime.MinReward {
			return nil, fmt.Errorf("invalid crime definition %q: max reward below min reward", crime.ID)
		}
	}

	return crimes, nil
}

// validateRequirement applies the structural checks the validator tags
// cannot express: skill names must belong to the closed skill set and
// weights must be non-negative and sum to at most 1.0.
func validateRequirement(req types.RequirementSpec) error {
	for skill, min := range req.RequiredSkills {
		if !types.ValidSkill(skill) {
			return fmt.Errorf("unknown required skill %q", skill)
		}
		if min < 0 || min > 100 {
			return fmt.Errorf("required skill %q out of range: %d", skill, min)
		}
	}

	total := 0.0
	for skill, weight := range req.SkillWeights {
		if !types.ValidSkill(skill) {
			return fmt.Errorf("unknown weighted skill %q", skill)
		}
		if weight < 0 {
			return fmt.Errorf("negative weight for skill %q", skill)
		}
		total += weight
	}
	if total > 1.0+1e-9 {
		return fmt.Errorf("skill weights sum to %.2f, must not exceed 1.0", total)
	}

	return nil
}
