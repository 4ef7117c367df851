// Package regulatory holds the statutory numbers the eligibility engine
// applies: income threshold rows, bonuses, allowances, deduction rates and
// subsistence floors. Defaults can be overridden from a regulatory.yaml.
package regulatory

import "github.com/shopspring/decimal"

// ThresholdKey selects a threshold row by household shape. Adults is
// clamped to the statutory 1/2 domain before lookup.
type ThresholdKey struct {
	Adults      int
	HasChildren bool
	Retired     bool
}

// Thresholds is one row of the income limit table.
type Thresholds struct {
	GrossTierA decimal.Decimal `yaml:"gross_tier_a"`
	NetTierA   decimal.Decimal `yaml:"net_tier_a"`
	GrossTierB decimal.Decimal `yaml:"gross_tier_b"`
	NetTierB   decimal.Decimal `yaml:"net_tier_b"`
}

// ChildBonus is the per-additional-child increase of the limit rows.
type ChildBonus struct {
	Gross decimal.Decimal `yaml:"gross"`
	Net   decimal.Decimal `yaml:"net"`
}

// CareAllowances are the amounts of the disability/care precedence
// cascade, largest first.
type CareAllowances struct {
	Severe   decimal.Decimal `yaml:"severe"`   // cascade rules 1-2
	High     decimal.Decimal `yaml:"high"`     // rules 3-5
	Elevated decimal.Decimal `yaml:"elevated"` // rules 6-7
	Medium   decimal.Decimal `yaml:"medium"`   // rules 8-10
	Low      decimal.Decimal `yaml:"low"`      // rules 11-12
	Minimal  decimal.Decimal `yaml:"minimal"`  // rule 13
}

// Config bundles every statutory constant the engine consumes.
type Config struct {
	Thresholds map[ThresholdKey]Thresholds

	ChildBonusSingle ChildBonus
	ChildBonusCouple ChildBonus
	MarriageBonus    decimal.Decimal

	// Mandatory deduction: percentage points added per deduction flag.
	DeductionStep decimal.Decimal

	// Fixed per-source allowances.
	SourceAllowanceSmall decimal.Decimal // pension, unemployment, maintenance
	SourceAllowanceLarge decimal.Decimal // foreign, flat-taxed mini-job

	CareAllowances CareAllowances

	// Subsistence floor by household size.
	SubsistenceSingle   decimal.Decimal
	SubsistenceCouple   decimal.Decimal
	SubsistencePerExtra decimal.Decimal
}

// Default returns the built-in statutory tables.
func Default() *Config {
	return &Config{
		Thresholds: map[ThresholdKey]Thresholds{
			{1, false, false}: row(35000, 23000, 50000, 30000),
			{1, true, false}:  row(44000, 29000, 62000, 38000),
			{2, false, false}: row(52000, 34000, 73000, 45000),
			{2, true, false}:  row(60000, 40000, 84000, 52000),
			{1, false, true}:  row(32000, 21000, 46000, 27500),
			{1, true, true}:   row(40000, 26500, 57000, 35000),
			{2, false, true}:  row(48000, 31500, 67000, 41500),
			{2, true, true}:   row(55000, 36500, 77000, 48000),
		},
		ChildBonusSingle: ChildBonus{Gross: decimal.NewFromInt(6000), Net: decimal.NewFromInt(4000)},
		ChildBonusCouple: ChildBonus{Gross: decimal.NewFromInt(5000), Net: decimal.NewFromInt(3300)},
		MarriageBonus:    decimal.NewFromInt(4000),

		DeductionStep: decimal.NewFromFloat(0.12),

		SourceAllowanceSmall: decimal.NewFromInt(102),
		SourceAllowanceLarge: decimal.NewFromInt(1230),

		CareAllowances: CareAllowances{
			Severe:   decimal.NewFromInt(5830),
			High:     decimal.NewFromInt(4500),
			Elevated: decimal.NewFromInt(2100),
			Medium:   decimal.NewFromInt(1330),
			Low:      decimal.NewFromInt(665),
			Minimal:  decimal.NewFromInt(330),
		},

		SubsistenceSingle:   decimal.NewFromInt(990),
		SubsistenceCouple:   decimal.NewFromInt(1270),
		SubsistencePerExtra: decimal.NewFromInt(320),
	}
}

// ThresholdRow resolves the limit row for a household shape. Adult counts
// above two use the two-adult row; below one, the one-adult row.
func (c *Config) ThresholdRow(adults int, hasChildren, retired bool) Thresholds {
	if adults < 1 {
		adults = 1
	}
	if adults > 2 {
		adults = 2
	}
	return c.Thresholds[ThresholdKey{Adults: adults, HasChildren: hasChildren, Retired: retired}]
}

// ChildBonusFor returns the per-child bonus table for the household type.
func (c *Config) ChildBonusFor(adults int) ChildBonus {
	if adults <= 1 {
		return c.ChildBonusSingle
	}
	return c.ChildBonusCouple
}

// SubsistenceFloor returns the monthly subsistence floor for a household
// of the given size.
func (c *Config) SubsistenceFloor(size int) decimal.Decimal {
	switch {
	case size <= 1:
		return c.SubsistenceSingle
	case size == 2:
		return c.SubsistenceCouple
	default:
		extra := decimal.NewFromInt(int64(size - 2))
		return c.SubsistenceCouple.Add(c.SubsistencePerExtra.Mul(extra))
	}
}

func row(grossA, netA, grossB, netB int64) Thresholds {
	return Thresholds{
		GrossTierA: decimal.NewFromInt(grossA),
		NetTierA:   decimal.NewFromInt(netA),
		GrossTierB: decimal.NewFromInt(grossB),
		NetTierB:   decimal.NewFromInt(netB),
	}
}
