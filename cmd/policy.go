package cmd

import (
	"fmt"
	"os"
	"time"

	"offroute/internal/core/domain/model/offroute"

	"go.yaml.in/yaml/v4"
)

// PolicyFile is the YAML form of the detection thresholds. Omitted keys keep
// their defaults; durations use Go syntax ("10m", "90s").
type PolicyFile struct {
	YellowThresholdMeters *float64 `yaml:"yellow_threshold_meters"`
	RedThresholdMeters    *float64 `yaml:"red_threshold_meters"`
	ReturnThresholdMeters *float64 `yaml:"return_threshold_meters"`
	RedAfter              string   `yaml:"red_after"`
	GracePeriod           string   `yaml:"grace_period"`
	GraceExtension        string   `yaml:"grace_extension"`
	MaxGraceExtensions    *int     `yaml:"max_grace_extensions"`
}

// LoadPolicy reads thresholds from filename. An empty filename yields the
// default policy.
func LoadPolicy(filename string) (offroute.Policy, error) {
	if filename == "" {
		return offroute.DefaultPolicy(), nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return offroute.Policy{}, fmt.Errorf("failed to read policy file: %w", err)
	}

	var file PolicyFile
	if err = yaml.Unmarshal(data, &file); err != nil {
		return offroute.Policy{}, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	t, err := file.thresholds()
	if err != nil {
		return offroute.Policy{}, err
	}
	return offroute.NewPolicy(t)
}

func (f PolicyFile) thresholds() (offroute.Thresholds, error) {
	t := offroute.DefaultThresholds()

	if f.YellowThresholdMeters != nil {
		t.YellowThresholdMeters = *f.YellowThresholdMeters
	}
	if f.RedThresholdMeters != nil {
		t.RedThresholdMeters = *f.RedThresholdMeters
	}
	if f.ReturnThresholdMeters != nil {
		t.ReturnThresholdMeters = *f.ReturnThresholdMeters
	}
	if f.MaxGraceExtensions != nil {
		t.MaxGraceExtensions = *f.MaxGraceExtensions
	}

	for _, d := range []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"red_after", f.RedAfter, &t.RedAfter},
		{"grace_period", f.GracePeriod, &t.GracePeriod},
		{"grace_extension", f.GraceExtension, &t.GraceExtension},
	} {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return offroute.Thresholds{}, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	return t, nil
}
