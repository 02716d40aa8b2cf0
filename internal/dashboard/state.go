package dashboard

import (
	"errors"

	"github.com/Veraticus/tradepost/internal/catalog"
	"github.com/Veraticus/tradepost/internal/model"
)

// State is one dashboard's filters, selection and most recent snapshots.
type State struct {
	CatalogErr error
	SeriesErr  error
	Roles      model.RoleCatalog
	Bracelets  model.Catalog
	Series     model.SeriesSet
	Filter     catalog.Filter
	Role       model.Role
	Grade      model.Grade
	TimeRange  model.TimeRange
	Sort       catalog.SortKey
	// Selection is kept in toggle order.
	Selection      []string
	Quality        model.QualityTier
	Kind           model.Kind
	LoadingCatalog bool
	LoadingSeries  bool
}

// Err joins the last failure of each slot; nil once both have loaded since.
func (s State) Err() error {
	return errors.Join(s.CatalogErr, s.SeriesErr)
}

// Loading reports whether any fetch is outstanding.
func (s State) Loading() bool {
	return s.LoadingCatalog || s.LoadingSeries
}
