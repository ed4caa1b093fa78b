package selector

// Option is one <option> of a select control.
type Option struct {
	Value    string
	Label    string
	Disabled bool
	Hidden   bool
}

// Select models a <select> element: its options and the current value.
type Select struct {
	ID      string
	Value   string
	Options []Option
}

// SetValue assigns like a browser does: a value without a matching option
// clears the selection.
func (s *Select) SetValue(v string) {
	if _, ok := s.Option(v); ok {
		s.Value = v
		return
	}
	s.Value = ""
}

func (s *Select) Option(value string) (Option, bool) {
	for _, o := range s.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// setAvailable is the only place that touches Disabled/Hidden so the two
// never diverge.
func (o *Option) setAvailable(available bool) {
	o.Disabled = !available
	o.Hidden = !available
}

// Form is the pair of dependent selectors plus the departure date field.
type Form struct {
	Departure  *Select
	Arrival    *Select
	DepartDate string
}

// FieldIDs names the elements of a search form.
type FieldIDs struct {
	Departure  string
	Arrival    string
	DepartDate string
}

var (
	ShortFieldIDs = FieldIDs{Departure: "from", Arrival: "to", DepartDate: "depart"}
	LongFieldIDs  = FieldIDs{Departure: "departure_airport", Arrival: "arrival_airport", DepartDate: "departure_date"}
)

// FieldIDsFor maps the configured naming scheme to element ids.
func FieldIDsFor(scheme string) FieldIDs {
	if scheme == "long" {
		return LongFieldIDs
	}
	return ShortFieldIDs
}

func NewForm(ids FieldIDs) *Form {
	return &Form{
		Departure: &Select{ID: ids.Departure},
		Arrival:   &Select{ID: ids.Arrival},
	}
}
