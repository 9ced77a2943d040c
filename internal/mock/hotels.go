package mock

import (
	"fmt"
	"net/url"

	"travel_search/internal/domain"
)

type Hotel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Rating      int      `json:"rating"`
	ReviewScore string   `json:"reviewScore"`
	ReviewCount int      `json:"reviewCount"`
	Price       int      `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Amenities   []string `json:"amenities"`
}

var hotelNames = []string{
	"Grand Plaza Hotel",
	"Luxury Suites Downtown",
	"Business Center Inn",
	"Boutique Garden Hotel",
	"Executive Tower",
	"Comfort Inn & Suites",
	"Royal Palace Hotel",
	"Modern City Hotel",
	"Seaside Resort",
	"Mountain View Lodge",
}

var hotelLocations = []string{
	"City Center",
	"Downtown District",
	"Business Quarter",
	"Historic District",
	"Waterfront Area",
	"Shopping District",
	"Financial District",
	"Entertainment Zone",
}

var hotelAmenities = []string{"Free WiFi", "Parking", "Breakfast", "Gym", "Pool", "Restaurant"}

// Hotels builds 8 synthetic listings. Names and locations cycle through fixed
// tables on independent indexes; stars land in {3,4,5}, review scores in
// [7.0,9.5], nightly prices in [80,380).
func (g *Generator) Hotels(req domain.HotelSearchRequest) []Hotel {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Hotel, 0, listingCount)
	for i := 0; i < listingCount; i++ {
		name := hotelNames[i%len(hotelNames)]
		loc := hotelLocations[i%len(hotelLocations)]
		out = append(out, Hotel{
			ID:          fmt.Sprintf("hotel-%d", i),
			Name:        name,
			Location:    loc,
			Rating:      3 + g.rnd.Intn(3),
			ReviewScore: fmt.Sprintf("%.1f", 7.0+g.rnd.Float64()*2.5),
			ReviewCount: 200 + g.rnd.Intn(800),
			Price:       80 + g.rnd.Intn(300),
			Image:       fmt.Sprintf("/placeholder.svg?height=192&width=256&text=%s", url.QueryEscape(name)),
			Description: fmt.Sprintf("Experience comfort and luxury at %s. This well-appointed hotel features modern amenities, excellent service, and a prime location in %s.", name, loc),
			Amenities:   hotelAmenities,
		})
	}
	return out
}
