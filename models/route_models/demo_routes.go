package route_models

import "sync"

var (
	defaultTable     *RouteTable
	defaultTableOnce sync.Once
)

// DefaultTable is the demo route table used by the quote engine.
func DefaultTable() *RouteTable {
	defaultTableOnce.Do(func() {
		defaultTable = NewRouteTable(demoRoutes, demoAliases)
	})
	return defaultTable
}

var demoAliases = map[string]string{
	"aeroport":                   "AIBD",
	"aéroport":                   "AIBD",
	"aéroport aibd":              "AIBD",
	"aeroport blaise diagne":     "AIBD",
	"aéroport blaise diagne":     "AIBD",
	"airport":                    "AIBD",
	"dakar airport":              "AIBD",
	"diass":                      "AIBD",
	"st louis":                   "Saint-Louis",
	"st-louis":                   "Saint-Louis",
	"ndar":                       "Saint-Louis",
	"lac retba":                  "Lac Rose",
	"retba":                      "Lac Rose",
	"sine saloum":                "Toubakouta",
	"delta du saloum":            "Toubakouta",
	"saloum":                     "Toubakouta",
	"joal":                       "Joal-Fadiouth",
	"fadiouth":                   "Joal-Fadiouth",
	"cap":                        "Cap Skirring",
	"casamance":                  "Ziguinchor",
	"niokolo koba":               "Tambacounda",
	"parc du niokolo koba":       "Tambacounda",
	"dakar plateau":              "Dakar",
	"dakar centre":               "Dakar",
	"almadies":                   "Dakar",
	"ngor":                       "Dakar",
	"saly portudal":              "Saly",
	"somone":                     "Saly",
	"touba mosquee":              "Touba",
	"grande mosquee de touba":    "Touba",
	"kedougou ville":             "Kédougou",
	"saint louis du senegal":     "Saint-Louis",
	"aibd blaise diagne airport": "AIBD",
}

var demoRoutes = []Route{
	{From: "Dakar", To: "AIBD", DistanceKm: 47, DurationMinutes: 45,
		Steps: []string{"Dakar", "Autoroute à péage", "Diamniadio", "AIBD"}},
	{From: "Dakar", To: "Lac Rose", DistanceKm: 35, DurationMinutes: 60,
		Steps: []string{"Dakar", "Rufisque", "Sangalkam", "Lac Rose"}},
	{From: "Dakar", To: "Thiès", DistanceKm: 70, DurationMinutes: 75,
		Steps: []string{"Dakar", "Autoroute à péage", "Diamniadio", "Thiès"}},
	{From: "Dakar", To: "Saly", DistanceKm: 80, DurationMinutes: 80,
		Steps: []string{"Dakar", "Autoroute à péage", "Diamniadio", "AIBD", "Saly"}},
	{From: "Dakar", To: "Mbour", DistanceKm: 83, DurationMinutes: 90,
		Steps: []string{"Dakar", "Autoroute à péage", "Diamniadio", "Saly", "Mbour"}},
	{From: "Dakar", To: "Joal-Fadiouth", DistanceKm: 114, DurationMinutes: 120,
		Steps: []string{"Dakar", "Diamniadio", "Mbour", "Nianing", "Joal-Fadiouth"}},
	{From: "Dakar", To: "Touba", DistanceKm: 190, DurationMinutes: 150,
		Steps: []string{"Dakar", "Diamniadio", "Autoroute Ila Touba", "Touba"}},
	{From: "Dakar", To: "Kaolack", DistanceKm: 192, DurationMinutes: 210,
		Steps: []string{"Dakar", "Diamniadio", "Mbour", "Fatick", "Kaolack"}},
	{From: "Dakar", To: "Saint-Louis", DistanceKm: 264, DurationMinutes: 270,
		Steps: []string{"Dakar", "Thiès", "Tivaouane", "Kébémer", "Louga", "Saint-Louis"}},
	{From: "Dakar", To: "Toubakouta", DistanceKm: 265, DurationMinutes: 300,
		Steps: []string{"Dakar", "Mbour", "Fatick", "Kaolack", "Sokone", "Toubakouta"}},
	{From: "Dakar", To: "Tambacounda", DistanceKm: 460, DurationMinutes: 480,
		Steps: []string{"Dakar", "Kaolack", "Kaffrine", "Koungheul", "Tambacounda"}},
	{From: "Dakar", To: "Ziguinchor", DistanceKm: 455, DurationMinutes: 480,
		Steps: []string{"Dakar", "Kaolack", "Nioro du Rip", "Pont de Farafenni (Gambie)", "Bignona", "Ziguinchor"}},
	{From: "Dakar", To: "Cap Skirring", DistanceKm: 525, DurationMinutes: 570,
		Steps: []string{"Dakar", "Kaolack", "Pont de Farafenni (Gambie)", "Ziguinchor", "Oussouye", "Cap Skirring"}},
	{From: "Dakar", To: "Kédougou", DistanceKm: 700, DurationMinutes: 720,
		Steps: []string{"Dakar", "Kaolack", "Tambacounda", "Parc du Niokolo-Koba", "Kédougou"}},
	{From: "AIBD", To: "Saly", DistanceKm: 33, DurationMinutes: 30,
		Steps: []string{"AIBD", "Route de Mbour", "Saly"}},
	{From: "AIBD", To: "Mbour", DistanceKm: 40, DurationMinutes: 40,
		Steps: []string{"AIBD", "Route de Mbour", "Saly", "Mbour"}},
	{From: "AIBD", To: "Saint-Louis", DistanceKm: 245, DurationMinutes: 240,
		Steps: []string{"AIBD", "Thiès", "Tivaouane", "Louga", "Saint-Louis"}},
	{From: "AIBD", To: "Lac Rose", DistanceKm: 45, DurationMinutes: 55,
		Steps: []string{"AIBD", "Diamniadio", "Sangalkam", "Lac Rose"}},
	{From: "Saly", To: "Toubakouta", DistanceKm: 185, DurationMinutes: 210,
		Steps: []string{"Saly", "Mbour", "Fatick", "Kaolack", "Sokone", "Toubakouta"}},
	{From: "Ziguinchor", To: "Cap Skirring", DistanceKm: 70, DurationMinutes: 75,
		Steps: []string{"Ziguinchor", "Oussouye", "Cap Skirring"}},
}
