// Package corpus loads the learning-resource corpus and provides semantic
// search over it.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/skillpath/internal/types"
)

// LoadError represents a failure to load or validate the corpus file.
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// corpusFile is the on-disk shape of the corpus.
type corpusFile struct {
	Resources []types.LearningResource `json:"resources"`
}

// LoadResources loads and validates learning resources from a JSON file.
// Records must have unique IDs and pass struct validation.
func LoadResources(path string) ([]types.LearningResource, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read corpus file %s", path),
			Cause:   err,
		}
	}

	var file corpusFile
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal corpus JSON",
			Cause:   err,
		}
	}

	if err := ValidateResources(file.Resources); err != nil {
		return nil, err
	}

	return file.Resources, nil
}

// ValidateResources checks every record against its struct tags and rejects
// duplicate IDs.
func ValidateResources(resources []types.LearningResource) error {
	validate := validator.New()
	seen := make(map[string]bool, len(resources))

	for i, res := range resources {
		if err := validate.Struct(res); err != nil {
			return &LoadError{
				Message: fmt.Sprintf("invalid resource at index %d (id %q)", i, res.ID),
				Cause:   err,
			}
		}
		if seen[res.ID] {
			return &LoadError{Message: fmt.Sprintf("duplicate resource id %q", res.ID)}
		}
		seen[res.ID] = true
	}
	return nil
}
