// Package inventory defines the process-inventory record consumed by the LCA
// engine and validates it at the construction boundary.
//
// A Record describes one functional unit of production (for example "1 t
// product"). Quantities are per functional unit; percentages are 0-100.
package inventory

// Record is a flat process inventory for one functional unit.
// The engine receives it by value and never modifies it.
type Record struct {
	// Name is a free-form label for the process (e.g. "smelter line 2").
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	// FunctionalUnit names the comparison basis, e.g. "1 t copper cathode".
	FunctionalUnit string `yaml:"functional_unit,omitempty" json:"functional_unit,omitempty"`

	// Production / operational
	ProductionVolume    float64 `yaml:"production_volume"     json:"production_volume"`
	OperatingHours      float64 `yaml:"operating_hours"       json:"operating_hours"`
	YieldEfficiency     float64 `yaml:"yield_efficiency"      json:"yield_efficiency"` // %
	Technology          string  `yaml:"technology,omitempty"  json:"technology,omitempty"`
	OreGrade            float64 `yaml:"ore_grade"             json:"ore_grade"` // %
	FunctionalUnitScale float64 `yaml:"functional_unit_scale" json:"functional_unit_scale"`

	// Energy
	ElectricityConsumption float64 `yaml:"electricity_consumption" json:"electricity_consumption"` // kWh
	FuelConsumption        float64 `yaml:"fuel_consumption"        json:"fuel_consumption"`        // L, liquid fuels
	NaturalGasInput        float64 `yaml:"natural_gas_input"       json:"natural_gas_input"`       // m3
	CoalInput              float64 `yaml:"coal_input"              json:"coal_input"`              // kg
	RenewableShare         float64 `yaml:"renewable_share"         json:"renewable_share"`         // %
	OnSiteGeneration       float64 `yaml:"on_site_generation"      json:"on_site_generation"`      // kWh
	EnergyRecovery         float64 `yaml:"energy_recovery"         json:"energy_recovery"`         // kWh

	// Material
	OreMined           float64 `yaml:"ore_mined"           json:"ore_mined"`
	Concentrates       float64 `yaml:"concentrates"        json:"concentrates"`
	Fluxes             float64 `yaml:"fluxes"              json:"fluxes"`
	ScrapInputShare    float64 `yaml:"scrap_input_share"   json:"scrap_input_share"` // %
	AlloyingElements   float64 `yaml:"alloying_elements"   json:"alloying_elements"`
	ChemicalReductants float64 `yaml:"chemical_reductants" json:"chemical_reductants"`
	Additives          float64 `yaml:"additives"           json:"additives"`

	// Water
	WaterWithdrawn        float64 `yaml:"water_withdrawn"         json:"water_withdrawn"`
	WaterConsumed         float64 `yaml:"water_consumed"          json:"water_consumed"`
	CoolingWater          float64 `yaml:"cooling_water"           json:"cooling_water"`
	ProcessWastewater     float64 `yaml:"process_wastewater"      json:"process_wastewater"`
	WastewaterCOD         float64 `yaml:"wastewater_cod"          json:"wastewater_cod"`
	HeavyMetalsWastewater float64 `yaml:"heavy_metals_wastewater" json:"heavy_metals_wastewater"`
	Nutrients             float64 `yaml:"nutrients"               json:"nutrients"`
	EffluentPH            float64 `yaml:"effluent_ph"             json:"effluent_ph"`

	// Solid waste
	Overburden           float64 `yaml:"overburden"            json:"overburden"`
	Tailings             float64 `yaml:"tailings"              json:"tailings"`
	Slag                 float64 `yaml:"slag"                  json:"slag"`
	RedMud               float64 `yaml:"red_mud"               json:"red_mud"`
	DustCollected        float64 `yaml:"dust_collected"        json:"dust_collected"`
	HazardousWaste       float64 `yaml:"hazardous_waste"       json:"hazardous_waste"`
	RecyclableByproducts float64 `yaml:"recyclable_byproducts" json:"recyclable_byproducts"`

	// Land and resources
	LandOccupied         float64 `yaml:"land_occupied"              json:"land_occupied"`
	LandDisturbed        float64 `yaml:"land_disturbed"             json:"land_disturbed"`
	BiodiversityZone     float64 `yaml:"biodiversity_zone"          json:"biodiversity_zone"`
	WaterSourceType      string  `yaml:"water_source_type,omitempty" json:"water_source_type,omitempty"`
	LandUseType          string  `yaml:"land_use_type,omitempty"    json:"land_use_type,omitempty"`
	MineralDepletionBase float64 `yaml:"mineral_depletion_base"     json:"mineral_depletion_base"`
	FossilDepletionBase  float64 `yaml:"fossil_depletion_base"      json:"fossil_depletion_base"`

	// Toxicity
	WorkplaceDust          float64 `yaml:"workplace_dust"           json:"workplace_dust"`
	WorkplaceMetalExposure float64 `yaml:"workplace_metal_exposure" json:"workplace_metal_exposure"`
	ToxicAirPollutants     float64 `yaml:"toxic_air_pollutants"     json:"toxic_air_pollutants"`
	ToxicEffluents         float64 `yaml:"toxic_effluents"          json:"toxic_effluents"`

	// Circularity
	RecycledInputShare float64 `yaml:"recycled_input_share" json:"recycled_input_share"` // %
	ByproductReuse     float64 `yaml:"byproduct_reuse"      json:"byproduct_reuse"`
	WasteDiverted      float64 `yaml:"waste_diverted"       json:"waste_diverted"` // %
	RecyclingCredit    float64 `yaml:"recycling_credit"     json:"recycling_credit"`
	ProductLifetime    float64 `yaml:"product_lifetime"     json:"product_lifetime"`
	Recyclability      float64 `yaml:"recyclability"        json:"recyclability"` // %
	SymbiosisExchanges int     `yaml:"symbiosis_exchanges"  json:"symbiosis_exchanges"`
}

// namedValue pairs a field's serialized name with its value.
type namedValue struct {
	name  string
	value float64
}

// quantities lists every non-percentage numeric field.
func (r *Record) quantities() []namedValue {
	return []namedValue{
		{"production_volume", r.ProductionVolume},
		{"operating_hours", r.OperatingHours},
		{"functional_unit_scale", r.FunctionalUnitScale},
		{"electricity_consumption", r.ElectricityConsumption},
		{"fuel_consumption", r.FuelConsumption},
		{"natural_gas_input", r.NaturalGasInput},
		{"coal_input", r.CoalInput},
		{"on_site_generation", r.OnSiteGeneration},
		{"energy_recovery", r.EnergyRecovery},
		{"ore_mined", r.OreMined},
		{"concentrates", r.Concentrates},
		{"fluxes", r.Fluxes},
		{"alloying_elements", r.AlloyingElements},
		{"chemical_reductants", r.ChemicalReductants},
		{"additives", r.Additives},
		{"water_withdrawn", r.WaterWithdrawn},
		{"water_consumed", r.WaterConsumed},
		{"cooling_water", r.CoolingWater},
		{"process_wastewater", r.ProcessWastewater},
		{"wastewater_cod", r.WastewaterCOD},
		{"heavy_metals_wastewater", r.HeavyMetalsWastewater},
		{"nutrients", r.Nutrients},
		{"overburden", r.Overburden},
		{"tailings", r.Tailings},
		{"slag", r.Slag},
		{"red_mud", r.RedMud},
		{"dust_collected", r.DustCollected},
		{"hazardous_waste", r.HazardousWaste},
		{"recyclable_byproducts", r.RecyclableByproducts},
		{"land_occupied", r.LandOccupied},
		{"land_disturbed", r.LandDisturbed},
		{"biodiversity_zone", r.BiodiversityZone},
		{"mineral_depletion_base", r.MineralDepletionBase},
		{"fossil_depletion_base", r.FossilDepletionBase},
		{"workplace_dust", r.WorkplaceDust},
		{"workplace_metal_exposure", r.WorkplaceMetalExposure},
		{"toxic_air_pollutants", r.ToxicAirPollutants},
		{"toxic_effluents", r.ToxicEffluents},
		{"byproduct_reuse", r.ByproductReuse},
		{"recycling_credit", r.RecyclingCredit},
		{"product_lifetime", r.ProductLifetime},
		{"symbiosis_exchanges", float64(r.SymbiosisExchanges)},
	}
}

// percentages lists every field expressed on a 0-100 scale.
func (r *Record) percentages() []namedValue {
	return []namedValue{
		{"yield_efficiency", r.YieldEfficiency},
		{"ore_grade", r.OreGrade},
		{"renewable_share", r.RenewableShare},
		{"scrap_input_share", r.ScrapInputShare},
		{"recycled_input_share", r.RecycledInputShare},
		{"waste_diverted", r.WasteDiverted},
		{"recyclability", r.Recyclability},
	}
}

// TotalSolidWaste is the waste mass used as the waste-to-resource denominator.
func (r Record) TotalSolidWaste() float64 {
	return r.Tailings + r.Slag + r.HazardousWaste
}

// DisplayName returns Name, or FunctionalUnit when Name is empty.
func (r Record) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	if r.FunctionalUnit != "" {
		return r.FunctionalUnit
	}
	return "unnamed inventory"
}
