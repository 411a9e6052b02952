package module

import (
	"os"

	"github.com/gentlementlegen/assistive-pricing/internal/core/labelpack"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/config"
)

// Options holds configuration settings for the pricing module
type Options struct {
	ConfigFile     string
	TimeLabels     string
	PriorityLabels string
	Currency       string
	BaseMultiplier float64
	PublicSetLabel bool
	Aggregation    string
	DryRun         bool
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	pf := cfg.Prefix("PRICING_")
	return Options{
		ConfigFile:     pf.MayString("CONFIG_FILE", ""),
		TimeLabels:     pf.MayString("TIME_LABELS", ""),
		PriorityLabels: pf.MayString("PRIORITY_LABELS", ""),
		Currency:       pf.MayString("CURRENCY", ""),
		BaseMultiplier: pf.MayFloat64("BASE_MULTIPLIER", 0),
		PublicSetLabel: pf.MayBool("PUBLIC_SET_LABEL", false),
		Aggregation:    pf.MayEnum("PARENT_AGGREGATION", "sum", "sum", "max", "min"),
		DryRun:         pf.MayBool("DRY_RUN", false),
	}
}

// BuildPack compiles the label vocabulary: embedded defaults, then the
// optional YAML file, then the env scale/currency/multiplier overrides
func (o Options) BuildPack() (*labelpack.Pack, error) {
	p, err := labelpack.Load()
	if err != nil {
		return nil, err
	}
	if o.ConfigFile != "" {
		raw, err := os.ReadFile(o.ConfigFile)
		if err != nil {
			return nil, err
		}
		ov, err := labelpack.ParseOverlayYAML(raw)
		if err != nil {
			return nil, err
		}
		if err := p.Apply(ov); err != nil {
			return nil, err
		}
	}

	ov := labelpack.Overlay{
		Currency:       o.Currency,
		BaseMultiplier: o.BaseMultiplier,
	}
	if o.TimeLabels != "" {
		es, err := labelpack.ParseScaleCSV(o.TimeLabels)
		if err != nil {
			return nil, err
		}
		ov.Time = es
	}
	if o.PriorityLabels != "" {
		es, err := labelpack.ParseScaleCSV(o.PriorityLabels)
		if err != nil {
			return nil, err
		}
		ov.Priority = es
	}
	if err := p.Apply(ov); err != nil {
		return nil, err
	}
	return p, nil
}
