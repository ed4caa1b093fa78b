package selector

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Domenick1991/searchbox/internal/domain"
)

// Query is the search form state carried in a URL. Ids are normalized;
// a malformed id is dropped.
type Query struct {
	From       string
	To         string
	DepartDate string
}

func ParseQuery(values url.Values) Query {
	return Query{
		From:       idParam(values, "from", "departure_airport"),
		To:         idParam(values, "to", "arrival_airport"),
		DepartDate: firstParam(values, "departDate", "departure_date", "depart"),
	}
}

// Complete reports whether the query is enough to run a search.
func (q Query) Complete() bool {
	return q.From != "" && q.To != "" && q.DepartDate != ""
}

// Encode renders the query the way the search box links to /booking.
func (q Query) Encode() string {
	v := url.Values{}
	v.Set("from", q.From)
	v.Set("to", q.To)
	v.Set("departDate", q.DepartDate)
	return v.Encode()
}

func firstParam(values url.Values, keys ...string) string {
	for _, k := range keys {
		if v := values.Get(k); strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func idParam(values url.Values, keys ...string) string {
	raw := firstParam(values, keys...)
	id, ok := domain.ParseID(raw)
	if !ok {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
