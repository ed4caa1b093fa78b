package domain

import "fmt"

type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type Airport struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	CountryID int64  `json:"country_id"`
}

// Route is a directed, feasible airport pair.
type Route struct {
	ID              int64 `json:"id"`
	DepartAirportID int64 `json:"depart_airport_id"`
	ArriveAirportID int64 `json:"arrive_airport_id"`
}

type Airline struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SeatClass struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Label renders the airport the way the search box lists it.
func (a Airport) Label(country *Country) string {
	if country == nil {
		return fmt.Sprintf("%s (%s)", a.Name, a.Code)
	}
	return fmt.Sprintf("%s (%s) - %s", a.Name, a.Code, country.Name)
}
