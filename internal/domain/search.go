package domain

import "time"

// SearchEvent is published whenever a visitor submits the search box.
type SearchEvent struct {
	ID         string    `json:"id"`
	From       int64     `json:"from"`
	To         int64     `json:"to"`
	DepartDate string    `json:"depart_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// RoutePopularity is the number of searches recorded for a route.
type RoutePopularity struct {
	DepartAirportID int64 `json:"depart_airport_id"`
	ArriveAirportID int64 `json:"arrive_airport_id"`
	Searches        int64 `json:"searches"`
}
