package geo

// Coords is a lon/lat pair for the route map.
type Coords struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// cityCoords covers the sky ids the route map can draw. This is a fixed
// table, not a geocoder; unknown ids simply have no position.
var cityCoords = map[string]Coords{
	"NYCA": {-74.006, 40.7128},   // New York
	"LOND": {-0.1276, 51.5074},   // London
	"PARI": {2.3522, 48.8566},    // Paris
	"TOKY": {139.6917, 35.6895},  // Tokyo
	"SYDN": {151.2093, -33.8688}, // Sydney
	"LOSA": {-118.2437, 34.0522}, // Los Angeles
	"MIAM": {-80.1918, 25.7617},  // Miami
	"DUBL": {-6.2603, 53.3498},   // Dublin
	"AMST": {4.9041, 52.3676},    // Amsterdam
	"BERL": {13.405, 52.52},      // Berlin
	"ROME": {12.4964, 41.9028},   // Rome
	"BARC": {2.1734, 41.3851},    // Barcelona
	"MADR": {-3.7038, 40.4168},   // Madrid
	"LISS": {-9.1393, 38.7223},   // Lisbon
	"MUNI": {11.582, 48.1351},    // Munich
	"VIEN": {16.3738, 48.2082},   // Vienna
	"PRAG": {14.4378, 50.0755},   // Prague
	"BUDA": {19.0402, 47.4979},   // Budapest
	"WARS": {21.0122, 52.2297},   // Warsaw
	"STOC": {18.0686, 59.3293},   // Stockholm
	"COPE": {12.5683, 55.6761},   // Copenhagen
	"OSLO": {10.7522, 59.9139},   // Oslo
	"HELS": {24.9384, 60.1699},   // Helsinki
	"RIGA": {24.1052, 56.9496},   // Riga
	"TALL": {24.7536, 59.437},    // Tallinn
	"VILN": {25.2797, 54.6872},   // Vilnius
	"MOSC": {37.6173, 55.7558},   // Moscow
	"PETE": {30.3351, 59.9311},   // St. Petersburg
	"KIEV": {30.5234, 50.4501},   // Kiev
	"ISTA": {28.9784, 41.0082},   // Istanbul
	"ANKA": {32.8597, 39.9334},   // Ankara
	"ATHE": {23.7275, 37.9838},   // Athens
	"SOFI": {23.3219, 42.6977},   // Sofia
	"BUCH": {26.1025, 44.4268},   // Bucharest
	"BELG": {4.3517, 50.8503},    // Belgrade
	"ZAGR": {15.9819, 45.815},    // Zagreb
	"LJUB": {14.5058, 46.0569},   // Ljubljana
	"SARA": {18.4131, 43.8563},   // Sarajevo
	"SKOP": {21.4314, 41.9973},   // Skopje
	"TIRA": {19.8187, 41.3275},   // Tirana
	"PODG": {19.2636, 42.4304},   // Podgorica
}

// Lookup returns the coordinates for a sky id, if the table knows it.
func Lookup(skyID string) (Coords, bool) {
	c, ok := cityCoords[skyID]
	return c, ok
}
