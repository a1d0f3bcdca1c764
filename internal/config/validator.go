package config

import (
	"errors"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hbollon/go-edlib"

	fserrors "github.com/standardbeagle/findsweep/internal/errors"
)

// Validator validates configuration and sets smart defaults
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart defaults.
// Returns an error if validation fails.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateProjectConfig(&cfg.Project); err != nil {
		return fserrors.NewConfigError("project", "", err)
	}

	if err := v.validateSearchConfig(&cfg.Search); err != nil {
		return fserrors.NewConfigError("search", "", err)
	}

	if err := v.validateWatchConfig(&cfg.Watch); err != nil {
		return fserrors.NewConfigError("watch", "", err)
	}

	if err := v.validateGlobs(cfg.Include); err != nil {
		return fserrors.NewConfigError("include", "", err)
	}

	if err := v.validateGlobs(cfg.Exclude); err != nil {
		return fserrors.NewConfigError("exclude", "", err)
	}

	v.setSmartDefaults(cfg)
	return nil
}

func (v *Validator) validateProjectConfig(project *Project) error {
	if project.Root == "" {
		return errors.New("project root cannot be empty")
	}
	return nil
}

func (v *Validator) validateSearchConfig(search *Search) error {
	if search.Binary == "" {
		return errors.New("search binary cannot be empty")
	}

	if search.MaxResults < 0 {
		return fmt.Errorf("MaxResults must not be negative, got %d", search.MaxResults)
	}

	if search.DebounceMs < 0 {
		return fmt.Errorf("DebounceMs must not be negative, got %d", search.DebounceMs)
	}

	if search.DebounceMs > 10000 {
		return fmt.Errorf("DebounceMs should not exceed 10000ms, got %d", search.DebounceMs)
	}

	return nil
}

func (v *Validator) validateWatchConfig(watch *Watch) error {
	if watch.DebounceMs < 0 {
		return fmt.Errorf("DebounceMs must not be negative, got %d", watch.DebounceMs)
	}
	return nil
}

func (v *Validator) validateGlobs(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fserrors.NewGlobError(pattern)
		}
	}
	return nil
}

// setSmartDefaults fills in values that depend on other settings
func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.Search.DebounceMs == 0 {
		cfg.Search.DebounceMs = 250
	}
	if cfg.Watch.DebounceMs == 0 {
		cfg.Watch.DebounceMs = cfg.Search.DebounceMs
	}
}

// SuggestKey returns the closest known key for a misspelled config key, or
// empty when nothing is similar enough to be a plausible typo.
func SuggestKey(key string, known []string) string {
	const threshold = 0.78

	best := ""
	var bestScore float32
	for _, candidate := range known {
		score, err := edlib.StringsSimilarity(key, candidate, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}

	if bestScore < threshold {
		return ""
	}
	return best
}
