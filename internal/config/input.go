package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkellner/wohnval/internal/domain"
)

// InputParser handles parsing of offline application files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads an application file from YAML.
func (ip *InputParser) LoadFromFile(filename string) (*domain.ApplicationFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var app domain.ApplicationFile
	if err := yaml.Unmarshal(data, &app); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateApplication(&app); err != nil {
		return nil, fmt.Errorf("application validation failed: %w", err)
	}
	return &app, nil
}

// ValidateApplication checks the structural minimum of an application
// file. Content-level problems are the engine's job; this only rejects
// files the engine could not attribute to a subject at all.
func (ip *InputParser) ValidateApplication(app *domain.ApplicationFile) error {
	if app.SubjectID == "" {
		return fmt.Errorf("subject_id is required")
	}

	if app.MainApplication == nil && app.IncomeDeclaration == nil &&
		app.SelfDisclosure == nil && app.SelfHelp == nil && app.FloorArea == nil {
		return fmt.Errorf("application %s contains no forms", app.SubjectID)
	}

	if main := app.MainApplication; main != nil {
		if main.AdultCount < 0 || main.ChildCount < 0 {
			return fmt.Errorf("household counts must not be negative")
		}
		if main.RequestedBaseLoan.IsNegative() {
			return fmt.Errorf("requested base loan must not be negative")
		}
	}

	if decl := app.IncomeDeclaration; decl != nil {
		for id, rec := range decl.Members {
			if id == "" {
				return fmt.Errorf("member key must not be empty (member %q)", rec.Name)
			}
		}
	}
	return nil
}
