package api

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/Domenick1991/searchbox/internal/domain"
	"github.com/Domenick1991/searchbox/internal/logger"
	"github.com/Domenick1991/searchbox/internal/selector"
	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//go:embed templates/booking.html
var bookingPage string

var bookingTemplate = template.Must(template.New("booking").Parse(bookingPage))

type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

type SearchBoxHandler struct {
	loader    selector.Loader
	publisher EventPublisher
	topic     string
	ids       selector.FieldIDs
	log       *logger.Logger
}

// NewSearchBoxHandler serves the search box. publisher may be nil, in which
// case searches are redirected without being recorded.
func NewSearchBoxHandler(loader selector.Loader, publisher EventPublisher, topic string, ids selector.FieldIDs, log *logger.Logger) *SearchBoxHandler {
	return &SearchBoxHandler{loader: loader, publisher: publisher, topic: topic, ids: ids, log: log}
}

func (h *SearchBoxHandler) Register(router gin.IRouter) {
	router.GET("/booking", h.booking)
	router.GET("/booking/arrivals", h.arrivals)
	router.GET("/search", h.search)
}

// booking renders the whole page. A catalog failure is not fatal: the page
// is still served with unpopulated selectors.
func (h *SearchBoxHandler) booking(c *gin.Context) {
	p, err := h.mount(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := selector.WriteForm(p.doc, h.ids, p.form); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	html, err := p.doc.Html()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// arrivals re-renders the arrival selector after a departure change.
func (h *SearchBoxHandler) arrivals(c *gin.Context) {
	p, err := h.mount(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if p.loadErr != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "airport catalog unavailable"})
		return
	}
	if err := selector.WriteSelect(p.doc, p.form.Arrival); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	fragment, err := selector.SelectHTML(p.doc, h.ids.Arrival)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fragment))
}

// search validates the submitted form, records it and redirects to /booking.
func (h *SearchBoxHandler) search(c *gin.Context) {
	q := selector.ParseQuery(c.Request.URL.Query())
	if !q.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please choose both From and To and a departure date"})
		return
	}

	h.record(c.Request.Context(), q)
	c.Redirect(http.StatusSeeOther, "/booking?"+q.Encode())
}

func (h *SearchBoxHandler) record(ctx context.Context, q selector.Query) {
	if h.publisher == nil {
		return
	}
	from, _ := domain.ParseID(q.From)
	to, _ := domain.ParseID(q.To)
	event := domain.SearchEvent{
		ID:         uuid.NewString(),
		From:       from,
		To:         to,
		DepartDate: q.DepartDate,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.publisher.Publish(ctx, h.topic, fmt.Sprintf("%d:%d", from, to), event); err != nil {
		h.log.Error(err, "publish search event", "from", from, "to", to)
	}
}

type page struct {
	doc  *goquery.Document
	form *selector.Form
	// loadErr is the catalog failure, already logged by selector.Mount.
	loadErr error
}

// mount builds a fresh page document and mounts the selector controller on it.
func (h *SearchBoxHandler) mount(c *gin.Context) (*page, error) {
	var buf bytes.Buffer
	if err := bookingTemplate.Execute(&buf, h.ids); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	form, err := selector.ReadForm(doc, h.ids)
	if err != nil {
		return nil, err
	}

	_, loadErr := selector.Mount(c.Request.Context(), h.loader, form, c.Request.URL.Query(), h.log)
	return &page{doc: doc, form: form, loadErr: loadErr}, nil
}
