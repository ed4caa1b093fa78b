package routecache

import "github.com/Domenick1991/searchbox/internal/domain"

// GetCountryByID returns the first country with the given id.
func GetCountryByID[T domain.IDValue](countries []domain.Country, id T) (domain.Country, bool) {
	for _, c := range countries {
		if domain.MatchID(c.ID, id) {
			return c, true
		}
	}
	return domain.Country{}, false
}

// GetAirportByID returns the first airport with the given id.
func GetAirportByID[T domain.IDValue](airports []domain.Airport, id T) (domain.Airport, bool) {
	for _, a := range airports {
		if domain.MatchID(a.ID, id) {
			return a, true
		}
	}
	return domain.Airport{}, false
}

// GetRoutesByDepartAirport keeps route order.
func GetRoutesByDepartAirport[T domain.IDValue](routes []domain.Route, departID T) []domain.Route {
	out := make([]domain.Route, 0)
	for _, r := range routes {
		if domain.MatchID(r.DepartAirportID, departID) {
			out = append(out, r)
		}
	}
	return out
}

// GetArrivalAirportsByDeparture returns the arrival airport ids reachable from
// departID, in route order, duplicates included.
func GetArrivalAirportsByDeparture[T domain.IDValue](routes []domain.Route, departID T) []int64 {
	filtered := GetRoutesByDepartAirport(routes, departID)
	ids := make([]int64, 0, len(filtered))
	for _, r := range filtered {
		ids = append(ids, r.ArriveAirportID)
	}
	return ids
}
