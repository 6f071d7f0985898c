package crops

// Suggestion is one advisory entry produced from an NDVI scalar
type Suggestion struct {
	Crop string `json:"crop"`
	Note string `json:"note"`
}

// Advisory is the full crop advice for a vegetation level
type Advisory struct {
	VegetationClass string       `json:"vegetationClass"`
	Advice          string       `json:"advice"`
	Suggestions     []Suggestion `json:"suggestions"`
}

// band is one row of the NDVI threshold table; a value belongs to the
// first band whose upper bound is not exceeded
type band struct {
	upper    float64
	advisory Advisory
}

var thresholdTable = []band{
	{
		upper: 0.1,
		advisory: Advisory{
			VegetationClass: "barren",
			Advice:          "Very low vegetation signal. Soil remediation or irrigation is needed before planting.",
			Suggestions: []Suggestion{
				{Crop: "millet", Note: "Drought-hardy and tolerant of poor soil."},
				{Crop: "sorghum", Note: "Performs on marginal land with little water."},
			},
		},
	},
	{
		upper: 0.25,
		advisory: Advisory{
			VegetationClass: "sparse",
			Advice:          "Sparse cover. Favor hardy crops and consider soil enrichment.",
			Suggestions: []Suggestion{
				{Crop: "chickpea", Note: "Fixes nitrogen and improves soil."},
				{Crop: "barley", Note: "Short season and modest water demand."},
				{Crop: "mustard", Note: "Establishes quickly on thin cover."},
			},
		},
	},
	{
		upper: 0.45,
		advisory: Advisory{
			VegetationClass: "moderate",
			Advice:          "Moderate vegetation. Standard field crops should establish well.",
			Suggestions: []Suggestion{
				{Crop: "wheat", Note: "Reliable yield at moderate vigor."},
				{Crop: "maize", Note: "Responds well to balanced fertilization."},
				{Crop: "soybean", Note: "Good rotation partner at this level."},
			},
		},
	},
	{
		upper: 0.65,
		advisory: Advisory{
			VegetationClass: "dense",
			Advice:          "Healthy dense canopy. High-value crops are viable.",
			Suggestions: []Suggestion{
				{Crop: "rice", Note: "Thrives where vigor and moisture are high."},
				{Crop: "cotton", Note: "Dense canopy indicates sufficient fertility."},
				{Crop: "sugarcane", Note: "Sustained growth supports long-season cane."},
			},
		},
	},
	{
		upper: 1.0,
		advisory: Advisory{
			VegetationClass: "very dense",
			Advice:          "Very dense vegetation. Suited to plantation or horticultural use; watch for overgrowth.",
			Suggestions: []Suggestion{
				{Crop: "banana", Note: "High biomass sites suit plantation bananas."},
				{Crop: "tea", Note: "Vigorous canopy zones match tea cultivation."},
			},
		},
	},
}

// SuggestForNDVI maps an NDVI scalar to its advisory. Values at or below
// 0 (water, rock, snow) get the barren advisory; values above 1 clamp to
// the densest class.
func SuggestForNDVI(meanNDVI float64) Advisory {
	for _, b := range thresholdTable {
		if meanNDVI <= b.upper {
			return b.advisory
		}
	}
	return thresholdTable[len(thresholdTable)-1].advisory
}
