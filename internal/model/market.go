// Package model defines the trading-post domain types shared across the application.
package model

import (
	"fmt"
	"strconv"
)

// Grade is an equipment grade as the backend spells it.
type Grade string

// Supported grades.
const (
	GradeAncient Grade = "고대"
	GradeRelic   Grade = "유물"
)

// Grades lists every grade in display order.
var Grades = []Grade{GradeAncient, GradeRelic}

// Part is an accessory slot.
type Part string

// Accessory parts.
const (
	PartNecklace Part = "목걸이"
	PartEarring  Part = "귀걸이"
	PartRing     Part = "반지"
)

// Parts lists every accessory part in display order.
var Parts = []Part{PartNecklace, PartEarring, PartRing}

// Role partitions the accessory catalog.
type Role string

// Accessory roles.
const (
	RoleDealer  Role = "dealer"
	RoleSupport Role = "support"
)

// Label returns the Korean label shown in the dashboard.
func (r Role) Label() string {
	switch r {
	case RoleDealer:
		return "딜러"
	case RoleSupport:
		return "서포터"
	default:
		return string(r)
	}
}

// TimeRange selects how much history the backend returns.
type TimeRange string

// Time ranges accepted by the backend.
const (
	Range1Day    TimeRange = "1d"
	Range1Week   TimeRange = "1w"
	Range1Month  TimeRange = "1m"
	Range3Months TimeRange = "3m"

	DefaultTimeRange = Range1Day
)

// TimeRanges lists every time range in display order.
var TimeRanges = []TimeRange{Range1Day, Range1Week, Range1Month, Range3Months}

// ParseTimeRange validates a time range string. An empty string yields the default.
func ParseTimeRange(s string) (TimeRange, error) {
	if s == "" {
		return DefaultTimeRange, nil
	}
	for _, r := range TimeRanges {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid time range %q (want 1d, 1w, 1m or 3m)", s)
}

// Label returns the Korean label shown in the dashboard.
func (r TimeRange) Label() string {
	switch r {
	case Range1Day:
		return "1일"
	case Range1Week:
		return "1주일"
	case Range1Month:
		return "1개월"
	case Range3Months:
		return "3개월"
	default:
		return string(r)
	}
}

// QualityTier is a minimum item-quality threshold used to bucket accessory prices.
type QualityTier int

// Quality tiers.
const (
	Quality60 QualityTier = 60
	Quality70 QualityTier = 70
	Quality80 QualityTier = 80
	Quality90 QualityTier = 90

	DefaultQualityTier = Quality90
)

// QualityTiers lists every tier in ascending order.
var QualityTiers = []QualityTier{Quality60, Quality70, Quality80, Quality90}

// ParseQualityTier validates a tier given as "60".."90".
func ParseQualityTier(s string) (QualityTier, error) {
	if s == "" {
		return DefaultQualityTier, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid quality tier %q: %w", s, err)
	}
	for _, q := range QualityTiers {
		if int(q) == n {
			return q, nil
		}
	}
	return 0, fmt.Errorf("invalid quality tier %d (want 60, 70, 80 or 90)", n)
}

// Key returns the wire key used in quality_prices maps.
func (q QualityTier) Key() string {
	return strconv.Itoa(int(q))
}

// Label returns the selector label, e.g. "품질: 90+".
func (q QualityTier) Label() string {
	return fmt.Sprintf("품질: %d+", int(q))
}
