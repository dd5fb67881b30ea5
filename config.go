package containers

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config holds global tuning for the container library
var Config config = config{tuning: defaultTuning()}

type config struct {
	tuning Tuning
}

// Tuning returns the active growth/layout profile.
func (c *config) Tuning() Tuning {
	return c.tuning
}

// SetTuning replaces the active profile. Containers consult the profile on
// their next growth decision; existing buffers are untouched.
func (c *config) SetTuning(t Tuning) error {
	if err := t.validate(); err != nil {
		return err
	}
	c.tuning = t
	return nil
}

// LoadTuning reads a YAML tuning profile. Fields absent from the document
// keep their default values.
func (c *config) LoadTuning(r io.Reader) error {
	t := defaultTuning()
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return fmt.Errorf("failed to decode tuning profile: %w", err)
	}
	return c.SetTuning(t)
}
