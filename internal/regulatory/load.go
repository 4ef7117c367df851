package regulatory

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// fileFormat is the YAML shape of a regulatory override file. Every block
// is optional; missing blocks keep the built-in defaults.
type fileFormat struct {
	Thresholds []thresholdRow `yaml:"thresholds"`

	ChildBonusSingle *ChildBonus      `yaml:"child_bonus_single"`
	ChildBonusCouple *ChildBonus      `yaml:"child_bonus_couple"`
	MarriageBonus    *decimal.Decimal `yaml:"marriage_bonus"`

	DeductionStep        *decimal.Decimal `yaml:"deduction_step"`
	SourceAllowanceSmall *decimal.Decimal `yaml:"source_allowance_small"`
	SourceAllowanceLarge *decimal.Decimal `yaml:"source_allowance_large"`

	CareAllowances *CareAllowances `yaml:"care_allowances"`

	SubsistenceSingle   *decimal.Decimal `yaml:"subsistence_single"`
	SubsistenceCouple   *decimal.Decimal `yaml:"subsistence_couple"`
	SubsistencePerExtra *decimal.Decimal `yaml:"subsistence_per_extra"`
}

type thresholdRow struct {
	Adults      int  `yaml:"adults"`
	HasChildren bool `yaml:"has_children"`
	Retired     bool `yaml:"retired"`

	GrossTierA decimal.Decimal `yaml:"gross_tier_a"`
	NetTierA   decimal.Decimal `yaml:"net_tier_a"`
	GrossTierB decimal.Decimal `yaml:"gross_tier_b"`
	NetTierB   decimal.Decimal `yaml:"net_tier_b"`
}

// LoadFile reads a regulatory override file and applies it on top of the
// defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read regulatory file %s: %w", path, err)
	}

	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("failed to parse regulatory file %s: %w", path, err)
	}

	cfg := Default()
	for _, r := range ff.Thresholds {
		if r.Adults < 1 || r.Adults > 2 {
			return nil, fmt.Errorf("threshold row adults must be 1 or 2, got %d", r.Adults)
		}
		cfg.Thresholds[ThresholdKey{r.Adults, r.HasChildren, r.Retired}] = Thresholds{
			GrossTierA: r.GrossTierA,
			NetTierA:   r.NetTierA,
			GrossTierB: r.GrossTierB,
			NetTierB:   r.NetTierB,
		}
	}
	if ff.ChildBonusSingle != nil {
		cfg.ChildBonusSingle = *ff.ChildBonusSingle
	}
	if ff.ChildBonusCouple != nil {
		cfg.ChildBonusCouple = *ff.ChildBonusCouple
	}
	if ff.MarriageBonus != nil {
		cfg.MarriageBonus = *ff.MarriageBonus
	}
	if ff.DeductionStep != nil {
		cfg.DeductionStep = *ff.DeductionStep
	}
	if ff.SourceAllowanceSmall != nil {
		cfg.SourceAllowanceSmall = *ff.SourceAllowanceSmall
	}
	if ff.SourceAllowanceLarge != nil {
		cfg.SourceAllowanceLarge = *ff.SourceAllowanceLarge
	}
	if ff.CareAllowances != nil {
		cfg.CareAllowances = *ff.CareAllowances
	}
	if ff.SubsistenceSingle != nil {
		cfg.SubsistenceSingle = *ff.SubsistenceSingle
	}
	if ff.SubsistenceCouple != nil {
		cfg.SubsistenceCouple = *ff.SubsistenceCouple
	}
	if ff.SubsistencePerExtra != nil {
		cfg.SubsistencePerExtra = *ff.SubsistencePerExtra
	}

	return cfg, nil
}
