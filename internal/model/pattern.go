package model

import (
	"fmt"
	"strings"
)

// Kind tags which domain a pattern or price point belongs to.
type Kind int

// Pattern kinds.
const (
	KindAccessory Kind = iota
	KindBracelet
)

func (k Kind) String() string {
	switch k {
	case KindAccessory:
		return "accessory"
	case KindBracelet:
		return "bracelet"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses "accessory" or "bracelet".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "", "accessory", "acc":
		return KindAccessory, nil
	case "bracelet":
		return KindBracelet, nil
	default:
		return 0, fmt.Errorf("invalid kind %q (want accessory or bracelet)", s)
	}
}

// OptionValues maps a supplemental option name to value -> price delta.
type OptionValues map[string]map[string]float64

// QualityPrices maps a quality tier key ("60".."90") to a price.
type QualityPrices map[string]float64

// Price returns the price for a tier; zero when absent.
func (qp QualityPrices) Price(tier QualityTier) float64 {
	if qp == nil {
		return 0
	}
	return qp[tier.Key()]
}

// Best returns the highest non-zero tier price, scanning from the top tier down.
func (qp QualityPrices) Best() float64 {
	for i := len(QualityTiers) - 1; i >= 0; i-- {
		if p := qp.Price(QualityTiers[i]); p > 0 {
			return p
		}
	}
	return 0
}

// AccessoryPattern is one accessory option combination as returned by /all-patterns.
type AccessoryPattern struct {
	QualityPrices      QualityPrices `json:"quality_prices"`
	CommonOptionValues OptionValues  `json:"common_option_values"`
	Grade              Grade         `json:"grade"`
	Part               Part          `json:"part"`
	Pattern            string        `json:"pattern"`
	BasePrice          float64       `json:"base_price,omitempty"`
	Level              int           `json:"level"`
	SampleCount        float64       `json:"sample_count"`
}

// Key returns the composite catalog key grade:part:level:pattern.
func (p AccessoryPattern) Key() string {
	return AccessoryKey(p.Grade, p.Part, p.Level, p.Pattern)
}

// AccessoryKey builds the composite key for an accessory pattern.
func AccessoryKey(grade Grade, part Part, level int, pattern string) string {
	return fmt.Sprintf("%s:%s:%d:%s", grade, part, level, pattern)
}

// BraceletPattern is one bracelet option combination as returned by /bracelet-patterns.
type BraceletPattern struct {
	FixedOptionCount *int    `json:"fixed_option_count"`
	ExtraOptionCount *int    `json:"extra_option_count"`
	Grade            Grade   `json:"grade"`
	Type             string  `json:"type"`
	CombatStats      string  `json:"combat_stats"`
	BaseStats        string  `json:"base_stats"`
	SpecialEffects   string  `json:"special_effects"`
	CurrentPrice     float64 `json:"current_price"`
	SampleCount      float64 `json:"sample_count"`
}

// PatternRecord is a tagged view over either catalog record kind. Exactly one of
// Accessory or Bracelet is set, matching Kind.
type PatternRecord struct {
	Accessory *AccessoryPattern
	Bracelet  *BraceletPattern
	Kind      Kind
}

// NewAccessoryRecord wraps an accessory pattern.
func NewAccessoryRecord(p AccessoryPattern) PatternRecord {
	return PatternRecord{Kind: KindAccessory, Accessory: &p}
}

// NewBraceletRecord wraps a bracelet pattern.
func NewBraceletRecord(p BraceletPattern) PatternRecord {
	return PatternRecord{Kind: KindBracelet, Bracelet: &p}
}

// Grade returns the record grade.
func (r PatternRecord) Grade() Grade {
	switch {
	case r.Accessory != nil:
		return r.Accessory.Grade
	case r.Bracelet != nil:
		return r.Bracelet.Grade
	}
	return ""
}

// PartOrType returns the accessory part or the bracelet type.
func (r PatternRecord) PartOrType() string {
	switch {
	case r.Accessory != nil:
		return string(r.Accessory.Part)
	case r.Bracelet != nil:
		return r.Bracelet.Type
	}
	return ""
}

// Level returns the enhancement level, or -1 for bracelets.
func (r PatternRecord) Level() int {
	if r.Accessory != nil {
		return r.Accessory.Level
	}
	return -1
}

// CombatStats returns the combat-stat tags (bracelets only).
func (r PatternRecord) CombatStats() string {
	if r.Bracelet != nil {
		return r.Bracelet.CombatStats
	}
	return ""
}

// FixedOptionCount returns the fixed option count and whether it is known.
func (r PatternRecord) FixedOptionCount() (int, bool) {
	if r.Bracelet != nil && r.Bracelet.FixedOptionCount != nil {
		return *r.Bracelet.FixedOptionCount, true
	}
	return 0, false
}

// ExtraOptionCount returns the extra option count and whether it is known.
func (r PatternRecord) ExtraOptionCount() (int, bool) {
	if r.Bracelet != nil && r.Bracelet.ExtraOptionCount != nil {
		return *r.Bracelet.ExtraOptionCount, true
	}
	return 0, false
}

// Price is the sort price: current price for bracelets, base price for accessories
// falling back to the best tier price when the backend omits base_price.
func (r PatternRecord) Price() float64 {
	switch {
	case r.Bracelet != nil:
		return r.Bracelet.CurrentPrice
	case r.Accessory != nil:
		if r.Accessory.BasePrice > 0 {
			return r.Accessory.BasePrice
		}
		return r.Accessory.QualityPrices.Best()
	}
	return 0
}

// SampleCount returns the number of trades backing the record.
func (r PatternRecord) SampleCount() float64 {
	switch {
	case r.Accessory != nil:
		return r.Accessory.SampleCount
	case r.Bracelet != nil:
		return r.Bracelet.SampleCount
	}
	return 0
}

// Description returns the human-readable option text.
func (r PatternRecord) Description() string {
	switch {
	case r.Accessory != nil:
		return r.Accessory.Pattern
	case r.Bracelet != nil:
		var parts []string
		for _, s := range []string{r.Bracelet.CombatStats, r.Bracelet.BaseStats, r.Bracelet.SpecialEffects} {
			if s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " + ")
	}
	return ""
}

// Label returns the legend label: "고대 목걸이 2연마 (pattern)" for accessories and
// "고대 팔찌 (치명) + 힘 + 부여 2" for bracelets.
func (r PatternRecord) Label() string {
	switch {
	case r.Accessory != nil:
		a := r.Accessory
		return fmt.Sprintf("%s %s %d연마 (%s)", a.Grade, a.Part, a.Level, a.Pattern)
	case r.Bracelet != nil:
		b := r.Bracelet
		label := fmt.Sprintf("%s %s (%s)", b.Grade, b.Type, b.CombatStats)
		if b.BaseStats != "" {
			label += " + " + b.BaseStats
		}
		if b.SpecialEffects != "" {
			label += " + " + b.SpecialEffects
		}
		return label
	}
	return ""
}

// Catalog maps a pattern key to its record. Catalogs are snapshots and are never
// mutated after a fetch.
type Catalog map[string]PatternRecord

// RoleCatalog is the accessory catalog partitioned by role.
type RoleCatalog struct {
	Dealer  Catalog
	Support Catalog
}

// ForRole returns the catalog of one role; nil for unknown roles.
func (rc RoleCatalog) ForRole(role Role) Catalog {
	switch role {
	case RoleDealer:
		return rc.Dealer
	case RoleSupport:
		return rc.Support
	default:
		return nil
	}
}
