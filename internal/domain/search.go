package domain

// PlaceRef is the display info the UI attaches to a selected airport.
// Only the title is used (mock itineraries name their endpoints with it).
type PlaceRef struct {
	SkyID string `json:"skyId,omitempty"`
	Title string `json:"title,omitempty"`
}

type FlightSearchRequest struct {
	OriginSkyID         string `json:"originSkyId" validate:"required"`
	DestinationSkyID    string `json:"destinationSkyId" validate:"required"`
	OriginEntityID      string `json:"originEntityId" validate:"required"`
	DestinationEntityID string `json:"destinationEntityId" validate:"required"`
	Date                string `json:"date" validate:"required,datetime=2006-01-02"`
	ReturnDate          string `json:"returnDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CabinClass          string `json:"cabinClass,omitempty"`
	Adults              int    `json:"adults" validate:"required,min=1"`
	Children            int    `json:"children,omitempty" validate:"min=0"`
	Infants             int    `json:"infants,omitempty" validate:"min=0"`
	TripType            string `json:"tripType" validate:"required,oneof=roundtrip oneway"`

	// Optional, sent by the search form alongside the ids.
	Origin      *PlaceRef `json:"origin,omitempty"`
	Destination *PlaceRef `json:"destination,omitempty"`
}

type HotelSearchRequest struct {
	EntityID string `json:"entityId" validate:"required"`
	CheckIn  string `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"checkOut" validate:"required,datetime=2006-01-02"`
	Adults   int    `json:"adults" validate:"required,min=1"`
	Children int    `json:"children,omitempty" validate:"min=0"`
	Rooms    int    `json:"rooms" validate:"required,min=1"`
}

// Airport is the normalized projection served by airport search. The rest of
// the upstream payload is passed through untouched next to the data list.
type Airport struct {
	SkyID           string `json:"skyId"`
	EntityID        string `json:"entityId"`
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	SuggestionTitle string `json:"suggestionTitle"`
}
