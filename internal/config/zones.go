package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pulseforge/alarm-report-etl/internal/domain"
	"github.com/pulseforge/alarm-report-etl/internal/notify"
)

// Zones is the operator-maintained zones file: the display/alert priority
// order, the severity threshold, and the message template.
type Zones struct {
	PriorityZones []string        `yaml:"priority_zones"`
	HighThreshold int             `yaml:"high_threshold"`
	Message       notify.Template `yaml:"message"`
}

// DefaultZones returns the built-in zones configuration used when no zones
// file exists.
func DefaultZones() Zones {
	return Zones{
		PriorityZones: []string{"Sylhet", "Gazipur", "Shariatpur", "Narayanganj", "Faridpur", "Mymensingh"},
		HighThreshold: domain.DefaultHighThreshold,
		Message:       notify.DefaultTemplate(),
	}
}

// LoadZones reads the zones file at path. A missing file yields the
// defaults with ok=false so the caller can log the fallback; a present but
// unparseable file is an error. Omitted fields fall back individually.
func LoadZones(path string) (Zones, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultZones(), false, nil
		}
		return Zones{}, false, fmt.Errorf("read zones file: %w", err)
	}

	z := DefaultZones()
	if err := yaml.Unmarshal(data, &z); err != nil {
		return Zones{}, false, fmt.Errorf("parse zones file %s: %w", path, err)
	}
	if z.HighThreshold <= 0 {
		z.HighThreshold = domain.DefaultHighThreshold
	}
	if z.Message.Header == "" {
		z.Message.Header = notify.DefaultTemplate().Header
	}
	if z.Message.Closing == "" {
		z.Message.Closing = notify.DefaultTemplate().Closing
	}
	return z, true, nil
}
