package turnrate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"profitlogic/internal/model"
)

type staticDealer map[model.ModelKey]float64

func (s staticDealer) DealerTurnTable() map[model.ModelKey]float64 { return s }

func TestResolve_IndustryDefault(t *testing.T) {
	days, src := Resolve("Kia", "Sportage", nil, IndustryDefaults())
	assert.Equal(t, 56.0, days)
	assert.Equal(t, model.SourceIndustryDefault, src)
}

func TestResolve_DealerOverridesDefault(t *testing.T) {
	dealer := map[model.ModelKey]float64{
		model.NewModelKey("kia", "sportage"): 22,
	}
	days, src := Resolve("Kia", "Sportage", dealer, IndustryDefaults())
	assert.Equal(t, 22.0, days)
	assert.Equal(t, model.SourceDealerHistorical, src)
}

func TestResolve_GlobalFallback(t *testing.T) {
	days, src := Resolve("Unknown", "Model", nil, NewTable(nil))
	assert.Equal(t, float64(FallbackTurnDays), days)
	assert.Equal(t, model.SourceIndustryDefault, src)
}

func TestResolve_KeyNormalization(t *testing.T) {
	days, src := Resolve("  HYUNDAI ", "santa   fe", nil, IndustryDefaults())
	assert.Equal(t, 42.0, days)
	assert.Equal(t, model.SourceIndustryDefault, src)
	assert.Equal(t, "hyundai_santa_fe", model.NewModelKey("  HYUNDAI ", "santa   fe").String())
}

func TestResolver_ReadsLiveDealerTable(t *testing.T) {
	dealer := staticDealer{}
	r := NewResolver(dealer, IndustryDefaults())

	days, src := r.Resolve("Toyota", "Camry")
	assert.Equal(t, 26.0, days)
	assert.Equal(t, model.SourceIndustryDefault, src)

	dealer[model.NewModelKey("Toyota", "Camry")] = 61.5
	days, src = r.Resolve("toyota", "CAMRY")
	assert.Equal(t, 61.5, days)
	assert.Equal(t, model.SourceDealerHistorical, src)
}

func TestBaseMSRP(t *testing.T) {
	assert.Equal(t, 45000.0, BaseMSRP(model.NewModelKey("Genesis", "GV70")))
	assert.Equal(t, float64(FallbackMSRP), BaseMSRP(model.NewModelKey("Saab", "9-3")))
}
