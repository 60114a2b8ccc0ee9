package turnrate

import "profitlogic/internal/model"

// FallbackTurnDays used when neither dealer nor industry data knows the model
const FallbackTurnDays = 38

// FallbackMSRP base price for models missing from the MSRP table
const FallbackMSRP = 25000

// Table immutable make/model lookup table
type Table struct {
	values map[model.ModelKey]float64
}

// NewTable copies entries into a new table
func NewTable(entries map[model.ModelKey]float64) Table {
	values := make(map[model.ModelKey]float64, len(entries))
	for k, v := range entries {
		values[k] = v
	}
	return Table{values: values}
}

// Lookup value for a key
func (t Table) Lookup(key model.ModelKey) (float64, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Len number of entries
func (t Table) Len() int {
	return len(t.values)
}

func entry(makeName, modelName string) model.ModelKey {
	return model.NewModelKey(makeName, modelName)
}

var industryTurnDays = NewTable(map[model.ModelKey]float64{
	entry("Hyundai", "Tucson"):   30,
	entry("Hyundai", "Elantra"):  32,
	entry("Hyundai", "Sonata"):   32,
	entry("Hyundai", "Kona"):     25,
	entry("Hyundai", "Palisade"): 28,
	entry("Hyundai", "Santa Fe"): 42,
	entry("Nissan", "Rogue"):     36,
	entry("Nissan", "Altima"):    40,
	entry("Nissan", "Kicks"):     33,
	entry("Toyota", "Camry"):     26,
	entry("Toyota", "RAV4"):      35,
	entry("Honda", "Accord"):     32,
	entry("Kia", "Sportage"):     56,
	entry("Genesis", "GV70"):     36,
	entry("Genesis", "G70"):      42,
})

var baseMSRP = NewTable(map[model.ModelKey]float64{
	entry("Hyundai", "Tucson"):    26000,
	entry("Hyundai", "Elantra"):   21000,
	entry("Hyundai", "Sonata"):    25000,
	entry("Nissan", "Rogue"):      28000,
	entry("Nissan", "Altima"):     25000,
	entry("Toyota", "Camry"):      27000,
	entry("Toyota", "RAV4"):       29000,
	entry("Honda", "Accord"):      28000,
	entry("Kia", "Sportage"):      27000,
	entry("Genesis", "GV70"):      45000,
	entry("Chevrolet", "Equinox"): 26000,
	entry("Ford", "Escape"):       27000,
})

// IndustryDefaults built-in industry turn-days table
func IndustryDefaults() Table {
	return industryTurnDays
}

// BaseMSRP new-vehicle base price used to seed synthetic market prices
func BaseMSRP(key model.ModelKey) float64 {
	if v, ok := baseMSRP.Lookup(key); ok {
		return v
	}
	return FallbackMSRP
}
