package selector

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var ErrElementNotFound = errors.New("element not found")

func findSelect(doc *goquery.Document, id string) (*goquery.Selection, error) {
	sel := doc.Find("select").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	}).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("select #%s: %w", id, ErrElementNotFound)
	}
	return sel, nil
}

// ReadSelect reads a <select> and its options out of doc.
func ReadSelect(doc *goquery.Document, id string) (*Select, error) {
	sel, err := findSelect(doc, id)
	if err != nil {
		return nil, err
	}

	s := &Select{ID: id}
	sel.Find("option").Each(func(_ int, o *goquery.Selection) {
		label := strings.TrimSpace(o.Text())
		value, ok := o.Attr("value")
		if !ok {
			value = label
		}
		_, disabled := o.Attr("disabled")
		_, hidden := o.Attr("hidden")
		s.Options = append(s.Options, Option{Value: value, Label: label, Disabled: disabled, Hidden: hidden})
		if _, selected := o.Attr("selected"); selected {
			s.Value = value
		}
	})
	return s, nil
}

// WriteSelect replaces the options of the matching <select> in doc.
func WriteSelect(doc *goquery.Document, s *Select) error {
	sel, err := findSelect(doc, s.ID)
	if err != nil {
		return err
	}
	sel.Empty()
	sel.AppendHtml(optionsHTML(s))
	return nil
}

// optionsHTML marks the first option matching s.Value as selected, the empty
// placeholder included.
func optionsHTML(s *Select) string {
	var b strings.Builder
	selected := false
	for _, o := range s.Options {
		b.WriteString(`<option value="`)
		b.WriteString(html.EscapeString(o.Value))
		b.WriteString(`"`)
		if o.Disabled {
			b.WriteString(" disabled")
		}
		if o.Hidden {
			b.WriteString(" hidden")
		}
		if !selected && o.Value == s.Value {
			b.WriteString(" selected")
			selected = true
		}
		b.WriteString(">")
		b.WriteString(html.EscapeString(o.Label))
		b.WriteString("</option>")
	}
	return b.String()
}

// ReadForm binds the search form in doc.
func ReadForm(doc *goquery.Document, ids FieldIDs) (*Form, error) {
	dep, err := ReadSelect(doc, ids.Departure)
	if err != nil {
		return nil, err
	}
	arr, err := ReadSelect(doc, ids.Arrival)
	if err != nil {
		return nil, err
	}
	date, _ := dateInput(doc, ids.DepartDate).Attr("value")
	return &Form{Departure: dep, Arrival: arr, DepartDate: date}, nil
}

// WriteForm renders form back into doc. A missing date input is ignored.
func WriteForm(doc *goquery.Document, ids FieldIDs, form *Form) error {
	if err := WriteSelect(doc, form.Departure); err != nil {
		return err
	}
	if err := WriteSelect(doc, form.Arrival); err != nil {
		return err
	}
	if input := dateInput(doc, ids.DepartDate); input.Length() > 0 && form.DepartDate != "" {
		input.SetAttr("value", form.DepartDate)
	}
	return nil
}

func dateInput(doc *goquery.Document, id string) *goquery.Selection {
	return doc.Find("input").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	}).First()
}

// SelectHTML renders the matching <select> element on its own.
func SelectHTML(doc *goquery.Document, id string) (string, error) {
	sel, err := findSelect(doc, id)
	if err != nil {
		return "", err
	}
	return goquery.OuterHtml(sel)
}
