package httpapi

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/covid-dashboard/internal/common"
	"github.com/i474232898/covid-dashboard/internal/covid"
	"github.com/i474232898/covid-dashboard/internal/render"
)

var validate = validator.New()

// RenderObserver counts rendered views. Implemented by *metrics.Metrics.
type RenderObserver interface {
	ObserveRender(view covid.ViewID, format string)
}

type handlers struct {
	service  *covid.Service
	observer RenderObserver
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. observer may be nil.
func RegisterRoutes(app *fiber.App, service *covid.Service, observer RenderObserver) {
	h := &handlers{service: service, observer: observer}

	app.Get("/", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(render.DashboardHTML)
	})

	v1 := app.Group("/api/v1")
	v1.Get("/options", h.options)
	v1.Get("/views/:view", h.view)
	v1.Get("/views/:view/export", h.export)
	v1.Get("/dataset", h.dataset)
	v1.Post("/dataset/refresh", h.refresh)
}

func (h *handlers) currentDataset(c *fiber.Ctx) (*covid.Dataset, error) {
	ds, err := h.service.Dataset(c.UserContext())
	if err != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "dataset unavailable: "+err.Error())
	}
	return ds, nil
}

func (h *handlers) options(c *fiber.Ctx) error {
	ds, err := h.currentDataset(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"countries":  ds.Options.Countries,
		"continents": ds.Options.Continents,
		"defaults":   h.service.Defaults(ds.Options),
		"views":      covid.Views(),
	})
}

func (h *handlers) view(c *fiber.Ctx) error {
	res, err := h.renderView(c)
	if err != nil {
		return err
	}
	h.observe(res.View.ID, "json")
	return c.JSON(res)
}

func (h *handlers) export(c *fiber.Ctx) error {
	var q exportQuery
	q.Format = c.Query("format", render.FormatCSV)
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := h.renderView(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch q.Format {
	case render.FormatXLSX:
		err = render.WriteXLSX(&buf, res)
	default:
		err = render.WriteCSV(&buf, res)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to export view")
	}

	h.observe(res.View.ID, q.Format)
	c.Attachment(string(res.View.ID) + "." + q.Format)
	c.Set(fiber.HeaderContentType, render.ContentType(q.Format))
	return c.Send(buf.Bytes())
}

func (h *handlers) dataset(c *fiber.Ctx) error {
	ds, err := h.currentDataset(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"current": ds.Info,
		"history": h.service.History(),
	})
}

func (h *handlers) refresh(c *fiber.Ctx) error {
	ds, err := h.service.Refresh(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "dataset refresh failed: "+err.Error())
	}
	return c.JSON(fiber.Map{
		"current": ds.Info,
	})
}

func (h *handlers) observe(view covid.ViewID, format string) {
	if h.observer != nil {
		h.observer.ObserveRender(view, format)
	}
}

// renderView parses the selection, validates it against the dataset and renders.
func (h *handlers) renderView(c *fiber.Ctx) (render.Result, error) {
	var q viewQuery
	if err := q.bind(c); err != nil {
		return render.Result{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(q); err != nil {
		return render.Result{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	view, err := covid.LookupView(q.View)
	if err != nil {
		return render.Result{}, fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	ds, err := h.currentDataset(c)
	if err != nil {
		return render.Result{}, err
	}

	req := render.Request{View: view, TopN: h.service.TopN()}
	if q.Limit > 0 {
		req.TopN = q.Limit
	}

	if view.Kind == covid.KindTimeSeries {
		labels := q.labels(view, h.service.Defaults(ds.Options))
		if err := covid.ValidateSelection(labels, view.Available(ds.Options)); err != nil {
			return render.Result{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		req.Labels = labels
	}

	return render.Render(ds, req), nil
}

// viewQuery holds the path and query parameters of the view endpoints.
// A nil selection means the parameter was absent and defaults apply.
type viewQuery struct {
	View       string   `validate:"required"`
	Countries  []string `validate:"max=100"`
	Continents []string `validate:"max=20"`
	Limit      int      `validate:"gte=0,lte=500"`
}

func (q *viewQuery) bind(c *fiber.Ctx) error {
	q.View = c.Params("view")
	q.Countries = multiQuery(c, "country")
	q.Continents = multiQuery(c, "continent")

	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return errors.New("limit must be an integer")
		}
		q.Limit = n
	}
	return nil
}

func (q viewQuery) labels(view covid.View, defaults covid.Defaults) []string {
	if view.GroupBy == covid.ByContinent {
		if q.Continents == nil {
			return defaults.Continents
		}
		return q.Continents
	}
	if q.Countries == nil {
		return defaults.Countries
	}
	return q.Countries
}

// multiQuery returns every value of a repeated query parameter, cleaned.
// It returns nil when the parameter is absent and an empty slice when it is
// present with only blank values.
func multiQuery(c *fiber.Ctx, key string) []string {
	raw := c.Context().QueryArgs().PeekMulti(key)
	if len(raw) == 0 {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		values = append(values, string(v))
	}
	return common.CleanList(values)
}

// exportQuery holds the export endpoint's format parameter.
type exportQuery struct {
	Format string `validate:"required,oneof=csv xlsx"`
}
