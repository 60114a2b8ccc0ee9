package turnrate

import "profitlogic/internal/model"

// Resolve expected turn days for a make/model.
// Dealer history fully overrides industry defaults for the same key.
func Resolve(makeName, modelName string, dealer map[model.ModelKey]float64, defaults Table) (float64, model.TurnSource) {
	key := model.NewModelKey(makeName, modelName)
	if v, ok := dealer[key]; ok {
		return v, model.SourceDealerHistorical
	}
	if v, ok := defaults.Lookup(key); ok {
		return v, model.SourceIndustryDefault
	}
	return FallbackTurnDays, model.SourceIndustryDefault
}

// DealerTableSource read access to the dealer-historical tier
type DealerTableSource interface {
	DealerTurnTable() map[model.ModelKey]float64
}

// Resolver resolves turn days against a live dealer table
type Resolver struct {
	dealer   DealerTableSource
	defaults Table
}

// NewResolver creates a resolver over the given dealer source and defaults
func NewResolver(dealer DealerTableSource, defaults Table) *Resolver {
	return &Resolver{dealer: dealer, defaults: defaults}
}

// Resolve see package-level Resolve
func (r *Resolver) Resolve(makeName, modelName string) (float64, model.TurnSource) {
	var dealer map[model.ModelKey]float64
	if r.dealer != nil {
		dealer = r.dealer.DealerTurnTable()
	}
	return Resolve(makeName, modelName, dealer, r.defaults)
}
