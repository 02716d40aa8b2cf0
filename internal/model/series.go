package model

// PricePoint is one observation in a price series. Exactly one of Accessory or
// Bracelet is set, matching Kind.
type PricePoint struct {
	Accessory *AccessoryPoint
	Bracelet  *BraceletPoint
	Kind      Kind
}

// AccessoryPoint carries quality-tiered prices for one accessory pattern.
type AccessoryPoint struct {
	QualityPrices      QualityPrices `json:"quality_prices"`
	CommonOptionValues OptionValues  `json:"common_option_values,omitempty"`
	Timestamp          int64         `json:"timestamp"`
	SampleCount        float64       `json:"sample_count"`
}

// BraceletPoint carries a single price for one bracelet pattern.
type BraceletPoint struct {
	Timestamp   int64   `json:"timestamp"`
	Price       float64 `json:"price"`
	SampleCount float64 `json:"sample_count"`
}

// NewAccessoryPoint wraps an accessory observation.
func NewAccessoryPoint(p AccessoryPoint) PricePoint {
	return PricePoint{Kind: KindAccessory, Accessory: &p}
}

// NewBraceletPoint wraps a bracelet observation.
func NewBraceletPoint(p BraceletPoint) PricePoint {
	return PricePoint{Kind: KindBracelet, Bracelet: &p}
}

// Timestamp returns the observation time in epoch milliseconds.
func (p PricePoint) Timestamp() int64 {
	switch {
	case p.Accessory != nil:
		return p.Accessory.Timestamp
	case p.Bracelet != nil:
		return p.Bracelet.Timestamp
	}
	return 0
}

// SampleCount returns the number of trades backing the observation.
func (p PricePoint) SampleCount() float64 {
	switch {
	case p.Accessory != nil:
		return p.Accessory.SampleCount
	case p.Bracelet != nil:
		return p.Bracelet.SampleCount
	}
	return 0
}

// PriceSeries is a timestamp-ordered sequence of observations for one pattern.
type PriceSeries []PricePoint

// SeriesSet maps a pattern key to its series.
type SeriesSet map[string]PriceSeries

// PointCount returns the total number of points across every series.
func (s SeriesSet) PointCount() int {
	n := 0
	for _, series := range s {
		n += len(series)
	}
	return n
}
