package mock

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"travel_search/internal/domain"
)

// Generator produces shape-compatible synthetic listings when the upstream is
// down. The random source and clock are injected so tests can pin both.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func New(src rand.Source, now func() time.Time) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rnd: rand.New(src), now: now}
}

type Price struct {
	Formatted string `json:"formatted"`
	Amount    int    `json:"amount"`
}

type Endpoint struct {
	DisplayCode string `json:"displayCode"`
	Name        string `json:"name,omitempty"`
}

type Carrier struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type Carriers struct {
	Marketing []Carrier `json:"marketing"`
}

type Segment struct {
	Origin            Endpoint `json:"origin"`
	Destination       Endpoint `json:"destination"`
	Departure         string   `json:"departure"`
	Arrival           string   `json:"arrival"`
	DurationInMinutes int      `json:"durationInMinutes"`
	FlightNumber      string   `json:"flightNumber"`
}

type Leg struct {
	ID                string    `json:"id"`
	Origin            Endpoint  `json:"origin"`
	Destination       Endpoint  `json:"destination"`
	Departure         string    `json:"departure"`
	Arrival           string    `json:"arrival"`
	DurationInMinutes int       `json:"durationInMinutes"`
	Carriers          Carriers  `json:"carriers"`
	Segments          []Segment `json:"segments"`
}

type Itinerary struct {
	ID    string `json:"id"`
	Price Price  `json:"price"`
	Legs  []Leg  `json:"legs"`
}

var airlines = []Carrier{
	{Name: "American Airlines", Code: "AA"},
	{Name: "Delta Air Lines", Code: "DL"},
	{Name: "United Airlines", Code: "UA"},
	{Name: "British Airways", Code: "BA"},
	{Name: "Lufthansa", Code: "LH"},
	{Name: "Air France", Code: "AF"},
	{Name: "KLM", Code: "KL"},
	{Name: "Emirates", Code: "EK"},
}

const listingCount = 8

// Flights builds 8 one-leg itineraries for the requested route. Prices land
// in [300,1100), durations in [120,720) minutes, departures between 06:00 and
// 23:59 on the requested date.
func (g *Generator) Flights(req domain.FlightSearchRequest) []Itinerary {
	g.mu.Lock()
	defer g.mu.Unlock()

	originCode, destCode := req.OriginSkyID, req.DestinationSkyID
	if originCode == "" {
		originCode = "NYC"
	}
	if destCode == "" {
		destCode = "LON"
	}
	originName, destName := "New York", "London"
	if req.Origin != nil && req.Origin.Title != "" {
		originName = req.Origin.Title
	}
	if req.Destination != nil && req.Destination.Title != "" {
		destName = req.Destination.Title
	}

	base := g.now()
	if t, err := time.Parse("2006-01-02", req.Date); err == nil {
		base = t
	}

	out := make([]Itinerary, 0, listingCount)
	for i := 0; i < listingCount; i++ {
		airline := airlines[i%len(airlines)]
		amount := 300 + g.rnd.Intn(800)
		duration := 120 + g.rnd.Intn(600)

		dep := time.Date(base.Year(), base.Month(), base.Day(),
			6+g.rnd.Intn(18), g.rnd.Intn(60), 0, 0, time.UTC)
		arr := dep.Add(time.Duration(duration) * time.Minute)

		seg := Segment{
			Origin:            Endpoint{DisplayCode: originCode},
			Destination:       Endpoint{DisplayCode: destCode},
			Departure:         dep.Format(time.RFC3339),
			Arrival:           arr.Format(time.RFC3339),
			DurationInMinutes: duration,
			FlightNumber:      fmt.Sprintf("%s%d", airline.Code, 1000+g.rnd.Intn(9000)),
		}
		out = append(out, Itinerary{
			ID:    fmt.Sprintf("flight-%d", i),
			Price: Price{Formatted: fmt.Sprintf("%d", amount), Amount: amount},
			Legs: []Leg{{
				ID:                fmt.Sprintf("leg-%d", i),
				Origin:            Endpoint{DisplayCode: originCode, Name: originName},
				Destination:       Endpoint{DisplayCode: destCode, Name: destName},
				Departure:         seg.Departure,
				Arrival:           seg.Arrival,
				DurationInMinutes: duration,
				Carriers:          Carriers{Marketing: []Carrier{airline}},
				Segments:          []Segment{seg},
			}},
		})
	}
	return out
}
