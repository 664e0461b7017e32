// Package config loads and validates prosegate configuration.
// Configuration is resolved from (highest to lowest priority):
// 1. Project config (.prosegate.yaml in the project directory)
// 2. Home config (~/.prosegate.yaml)
// 3. Defaults
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/prosegate/prosegate/internal/safety"
)

const FileName = ".prosegate.yaml"

// File is the on-disk configuration shape. Optional scalar fields are
// pointers so an absent field is distinguishable from a zero value.
type File struct {
	Safety struct {
		Enabled          *bool    `yaml:"enabled"`
		AutoFixThreshold *float64 `yaml:"auto_fix_threshold"`
		ReviewThreshold  *float64 `yaml:"review_threshold"`
		AlwaysReview     []string `yaml:"always_review"`
		NeverFlag        []string `yaml:"never_flag"`
	} `yaml:"safety"`

	Telemetry struct {
		// Path is the decision log DuckDB file. Empty means in-memory.
		Path string `yaml:"path"`
	} `yaml:"telemetry"`

	Review struct {
		// Model is the OpenRouter model used for AI adjudication.
		Model string `yaml:"model"`
	} `yaml:"review"`
}

// FieldError describes one invalid configuration field. Validation never
// aborts: the field falls back to its default and the error is surfaced
// for the caller to log.
type FieldError struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Value    any    `json:"value"`
	Expected string `json:"expected"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s (got %v, expected %s)", e.Field, e.Message, e.Value, e.Expected)
}

// Load reads the configuration file for a project, falling back to the
// home directory and then to an empty file. A missing file is not an
// error.
func Load(projectDir string) (*File, error) {
	paths := []string{filepath.Join(projectDir, FileName)}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, FileName))
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}

		var f File
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return &f, nil
	}

	return &File{}, nil
}

// Resolve merges a configuration file over the defaults and validates the
// result. Invalid fields are reported and replaced by their defaults.
func Resolve(f *File) (safety.Config, []FieldError) {
	cfg := safety.DefaultConfig()
	var errs []FieldError

	if f == nil {
		return cfg, nil
	}

	if f.Safety.Enabled != nil {
		cfg.Enabled = *f.Safety.Enabled
	}

	if f.Safety.AutoFixThreshold != nil {
		v := *f.Safety.AutoFixThreshold
		if math.IsNaN(v) || v < 0 || v > 1 {
			errs = append(errs, FieldError{
				Field:    "safety.auto_fix_threshold",
				Message:  "threshold out of range",
				Value:    v,
				Expected: "number in [0, 1]",
			})
		} else {
			cfg.AutoFixThreshold = v
		}
	}

	if f.Safety.ReviewThreshold != nil {
		v := *f.Safety.ReviewThreshold
		if math.IsNaN(v) || v < 0 || v > 1 {
			errs = append(errs, FieldError{
				Field:    "safety.review_threshold",
				Message:  "threshold out of range",
				Value:    v,
				Expected: "number in [0, 1]",
			})
		} else {
			cfg.ReviewThreshold = v
		}
	}

	if cfg.ReviewThreshold > cfg.AutoFixThreshold {
		errs = append(errs, FieldError{
			Field:    "safety.review_threshold",
			Message:  "review threshold exceeds auto-fix threshold",
			Value:    cfg.ReviewThreshold,
			Expected: fmt.Sprintf("number <= %v", cfg.AutoFixThreshold),
		})
		cfg.AutoFixThreshold = safety.DefaultAutoFixThreshold
		cfg.ReviewThreshold = safety.DefaultReviewThreshold
	}

	var listErrs []FieldError
	cfg.AlwaysReview, listErrs = cleanTerms("safety.always_review", f.Safety.AlwaysReview)
	errs = append(errs, listErrs...)
	cfg.NeverFlag, listErrs = cleanTerms("safety.never_flag", f.Safety.NeverFlag)
	errs = append(errs, listErrs...)

	// neverFlag wins: a term listed in both is dropped from alwaysReview.
	cfg.AlwaysReview, listErrs = dropOverlap(cfg.AlwaysReview, cfg.NeverFlag)
	errs = append(errs, listErrs...)

	return cfg, errs
}

func cleanTerms(field string, terms []string) ([]string, []FieldError) {
	var cleaned []string
	var errs []FieldError
	for i, term := range terms {
		if strings.TrimSpace(term) == "" {
			errs = append(errs, FieldError{
				Field:    fmt.Sprintf("%s[%d]", field, i),
				Message:  "empty term",
				Value:    term,
				Expected: "non-empty string",
			})
			continue
		}
		cleaned = append(cleaned, term)
	}
	return cleaned, errs
}

func dropOverlap(alwaysReview, neverFlag []string) ([]string, []FieldError) {
	flagged := make(map[string]struct{}, len(neverFlag))
	for _, term := range neverFlag {
		flagged[strings.ToLower(term)] = struct{}{}
	}

	var kept []string
	var errs []FieldError
	for _, term := range alwaysReview {
		if _, ok := flagged[strings.ToLower(term)]; ok {
			errs = append(errs, FieldError{
				Field:    "safety.always_review",
				Message:  "term also present in never_flag",
				Value:    term,
				Expected: "term in at most one list",
			})
			continue
		}
		kept = append(kept, term)
	}
	return kept, errs
}
