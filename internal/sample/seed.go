// Package sample loads the outage and notification sample data.
package sample

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/good-yellow-bee/powerconnect/internal/models"
)

//go:embed seed.yaml
var defaultSeed []byte

// Data is the decoded seed document.
type Data struct {
	Outages       []*models.Outage       `yaml:"outages" validate:"dive,required"`
	Notifications []*models.Notification `yaml:"notifications" validate:"dive,required"`

	// Warnings lists records that are accepted but look inconsistent.
	Warnings []string `yaml:"-"`
}

var validate = validator.New()

// Default returns the built-in sample data.
func Default() (*Data, error) {
	return Load(bytes.NewReader(defaultSeed))
}

// LoadFile loads sample data from a YAML file.
func LoadFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes and validates sample data from a reader.
func Load(r io.Reader) (*Data, error) {
	var data Data
	if err := yaml.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("parse seed YAML: %w", err)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// Validate checks field rules and id uniqueness and fills Warnings.
func (d *Data) Validate() error {
	if err := validate.Struct(d); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid seed: %s failed on '%s' validation", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid seed: %w", err)
	}

	seen := make(map[string]bool)
	for _, o := range d.Outages {
		if seen[o.ID] {
			return fmt.Errorf("invalid seed: duplicate outage id %s", o.ID)
		}
		seen[o.ID] = true
	}
	seen = make(map[string]bool)
	for _, n := range d.Notifications {
		if seen[n.ID] {
			return fmt.Errorf("invalid seed: duplicate notification id %s", n.ID)
		}
		seen[n.ID] = true
	}

	d.Warnings = d.Warnings[:0]
	for _, o := range d.Outages {
		if o.ResolutionBeforeStart() {
			d.Warnings = append(d.Warnings,
				fmt.Sprintf("outage %s: estimated resolution %s is before start %s",
					o.ID, o.EstimatedResolution.Format("2006-01-02T15:04"), o.StartTime.Format("2006-01-02T15:04")))
		}
	}
	return nil
}
