package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"pricepulse/internal/dataprocessing"
	apierrors "pricepulse/internal/errors"
	"pricepulse/internal/exporter"
	"pricepulse/internal/indicator"
	"pricepulse/internal/services"
)

// DataHandler handles the table, segment, indicator and chart endpoints.
type DataHandler struct {
	service      DataServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDataHandler creates a new data handler.
func NewDataHandler(service DataServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the data routes.
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/tables", h.GetTablesHTML)
	r.Get("/tables/json", h.GetTablesJSON)
	r.Get("/tables/csv", h.GetTableCSV)
	r.Get("/segments", h.GetSegments)

	r.Route("/indicators", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/bollinger", h.GetBollinger)
		r.Get("/macd", h.GetMACD)
	})

	r.Get("/charts/bollinger", h.GetBollingerChart)
	r.Get("/charts/macd", h.GetMACDChart)

	return r
}

// tableSelection is the optional table index shared by every endpoint.
type tableSelection struct {
	Table int `validate:"min=0"`
	// All is set when no table parameter was supplied and the endpoint
	// should cover every parsed table.
	All bool
}

// bollingerParams carries the Bollinger endpoint query parameters.
type bollingerParams struct {
	Part   string  `validate:"oneof=all early mid recent"`
	Window int     `validate:"min=1"`
	K      float64 `validate:"gt=0"`
}

// macdParams carries the MACD endpoint query parameters.
type macdParams struct {
	Part   string `validate:"oneof=all early mid recent"`
	Fast   int    `validate:"min=1"`
	Slow   int    `validate:"min=1"`
	Signal int    `validate:"min=1"`
}

// GetTablesHTML handles GET /api/tables, returning the parsed tables
// rendered back as HTML. An optional table parameter selects one table.
func (h *DataHandler) GetTablesHTML(w http.ResponseWriter, r *http.Request) {
	sel, err := h.tableSelection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	tables, err := h.selectTables(r, sel)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	// A selected table renders bare; headings only disambiguate the
	// multi-table listing.
	var sb strings.Builder
	if sel.All {
		for i, ds := range tables {
			fmt.Fprintf(&sb, "<h4>Table %d</h4>\n", i)
			writeTableHTML(&sb, ds)
		}
	} else {
		writeTableHTML(&sb, tables[0])
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(sb.String()))
}

// GetTablesJSON handles GET /api/tables/json, returning record-oriented
// JSON for all tables or a selected one.
func (h *DataHandler) GetTablesJSON(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	sel, err := h.tableSelection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "fetching tables",
		slog.String("request_id", reqID),
		slog.Bool("all", sel.All),
		slog.Int("table", sel.Table),
	)

	tables, err := h.selectTables(r, sel)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if !sel.All {
		render.JSON(w, r, map[string]interface{}{
			"status": "success",
			"data":   tables[0],
			"count":  tables[0].Len(),
		})
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   tables,
		"count":  len(tables),
	})
}

// GetTableCSV handles GET /api/tables/csv, returning one table as a CSV
// download. The table parameter defaults to 0.
func (h *DataHandler) GetTableCSV(w http.ResponseWriter, r *http.Request) {
	table, err := queryInt(r, "table", 0)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	ds, err := h.service.Table(r.Context(), table)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=table-%d.csv", table))
	if err := exporter.WriteCSV(w, ds, exporter.WriteOptions{BOMPrefix: true}); err != nil {
		h.logger.ErrorContext(r.Context(), "csv export failed",
			slog.String("error", err.Error()))
	}
}

// GetSegments handles GET /api/segments.
func (h *DataHandler) GetSegments(w http.ResponseWriter, r *http.Request) {
	sel, err := h.tableSelection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	part := queryString(r, "part", dataprocessing.PartAll)
	if problem := h.validatePart(r, part, false); problem != nil {
		h.errorHandler.HandleError(w, r, problem)
		return
	}

	segments, err := h.service.Segments(r.Context(), sel.Table, part)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   segments,
	})
}

// GetBollinger handles GET /api/indicators/bollinger.
func (h *DataHandler) GetBollinger(w http.ResponseWriter, r *http.Request) {
	req, problem := h.bollingerRequest(r, false)
	if problem != nil {
		h.errorHandler.HandleError(w, r, problem)
		return
	}

	frames, err := h.service.Bollinger(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   frames,
		"params": map[string]interface{}{
			"window": req.Window,
			"k":      req.K,
			"part":   req.Part,
			"table":  req.Table,
		},
	})
}

// GetMACD handles GET /api/indicators/macd.
func (h *DataHandler) GetMACD(w http.ResponseWriter, r *http.Request) {
	req, problem := h.macdRequest(r, false)
	if problem != nil {
		h.errorHandler.HandleError(w, r, problem)
		return
	}

	frames, err := h.service.MACD(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   frames,
		"params": map[string]interface{}{
			"fast":   req.Fast,
			"slow":   req.Slow,
			"signal": req.Signal,
			"part":   req.Part,
			"table":  req.Table,
		},
	})
}

// GetBollingerChart handles GET /api/charts/bollinger, rendering one
// segment as a PNG. The part parameter must name a single segment and
// defaults to recent.
func (h *DataHandler) GetBollingerChart(w http.ResponseWriter, r *http.Request) {
	req, problem := h.bollingerRequest(r, true)
	if problem != nil {
		h.errorHandler.HandleError(w, r, problem)
		return
	}

	png, err := h.service.BollingerChart(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// GetMACDChart handles GET /api/charts/macd.
func (h *DataHandler) GetMACDChart(w http.ResponseWriter, r *http.Request) {
	req, problem := h.macdRequest(r, true)
	if problem != nil {
		h.errorHandler.HandleError(w, r, problem)
		return
	}

	png, err := h.service.MACDChart(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// bollingerRequest parses and validates the Bollinger query parameters.
// window accepts n as an alias.
func (h *DataHandler) bollingerRequest(r *http.Request, chart bool) (services.BollingerRequest, error) {
	table, err := queryInt(r, "table", 0)
	if err != nil {
		return services.BollingerRequest{}, err
	}
	window, err := queryIntAlias(r, "window", "n", indicator.DefaultWindow)
	if err != nil {
		return services.BollingerRequest{}, err
	}
	k, err := queryFloat(r, "k", indicator.DefaultK)
	if err != nil {
		return services.BollingerRequest{}, err
	}
	part := queryString(r, "part", defaultPart(chart))

	params := bollingerParams{Part: part, Window: window, K: k}
	if problem := h.validateStruct(r, params); problem != nil {
		return services.BollingerRequest{}, problem
	}
	if problem := h.validatePart(r, part, chart); problem != nil {
		return services.BollingerRequest{}, problem
	}

	return services.BollingerRequest{Table: table, Part: part, Window: window, K: k}, nil
}

// macdRequest parses and validates the MACD query parameters.
func (h *DataHandler) macdRequest(r *http.Request, chart bool) (services.MACDRequest, error) {
	table, err := queryInt(r, "table", 0)
	if err != nil {
		return services.MACDRequest{}, err
	}
	fast, err := queryInt(r, "fast", indicator.DefaultFast)
	if err != nil {
		return services.MACDRequest{}, err
	}
	slow, err := queryInt(r, "slow", indicator.DefaultSlow)
	if err != nil {
		return services.MACDRequest{}, err
	}
	signal, err := queryInt(r, "signal", indicator.DefaultSignal)
	if err != nil {
		return services.MACDRequest{}, err
	}
	part := queryString(r, "part", defaultPart(chart))

	params := macdParams{Part: part, Fast: fast, Slow: slow, Signal: signal}
	if problem := h.validateStruct(r, params); problem != nil {
		return services.MACDRequest{}, problem
	}
	if problem := h.validatePart(r, part, chart); problem != nil {
		return services.MACDRequest{}, problem
	}

	return services.MACDRequest{Table: table, Part: part, Fast: fast, Slow: slow, Signal: signal}, nil
}

// tableSelection parses the optional table parameter.
func (h *DataHandler) tableSelection(r *http.Request) (tableSelection, error) {
	raw := r.URL.Query().Get("table")
	if raw == "" {
		return tableSelection{All: true}, nil
	}
	idx, err := strconv.Atoi(raw)
	if err != nil {
		return tableSelection{}, apierrors.NewValidationProblem(r.URL.Path, []apierrors.ValidationError{
			{Field: "table", Message: "must be an integer"},
		})
	}
	sel := tableSelection{Table: idx}
	if problem := h.validateStruct(r, sel); problem != nil {
		return tableSelection{}, problem
	}
	return sel, nil
}

// selectTables resolves a selection to concrete tables, honouring the
// single-table error contract of the service layer.
func (h *DataHandler) selectTables(r *http.Request, sel tableSelection) ([]*dataprocessing.Dataset, error) {
	if sel.All {
		return h.service.Tables(r.Context())
	}
	ds, err := h.service.Table(r.Context(), sel.Table)
	if err != nil {
		return nil, err
	}
	return []*dataprocessing.Dataset{ds}, nil
}

// validateStruct runs the validator and converts failures to an RFC 7807
// validation problem.
func (h *DataHandler) validateStruct(r *http.Request, v interface{}) error {
	err := h.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fields []apierrors.ValidationError
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields = append(fields, apierrors.ValidationError{
				Field:   strings.ToLower(fe.Field()),
				Message: fmt.Sprintf("failed %s constraint", fe.Tag()),
			})
		}
	}
	return apierrors.NewValidationProblem(r.URL.Path, fields)
}

// validatePart rejects part=all on chart endpoints, which render exactly
// one segment.
func (h *DataHandler) validatePart(r *http.Request, part string, chart bool) error {
	valid := map[string]bool{
		dataprocessing.PartAll:    !chart,
		dataprocessing.PartEarly:  true,
		dataprocessing.PartMid:    true,
		dataprocessing.PartRecent: true,
	}
	if !valid[part] {
		return apierrors.NewValidationProblem(r.URL.Path, []apierrors.ValidationError{
			{Field: "part", Message: fmt.Sprintf("%q is not a valid segment here", part)},
		})
	}
	return nil
}

func defaultPart(chart bool) string {
	if chart {
		return dataprocessing.PartRecent
	}
	return dataprocessing.PartAll
}

func queryString(r *http.Request, name, def string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return def
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierrors.NewValidationProblem(r.URL.Path, []apierrors.ValidationError{
			{Field: name, Message: "must be an integer"},
		})
	}
	return v, nil
}

// queryIntAlias reads name, falling back to a legacy alias parameter.
func queryIntAlias(r *http.Request, name, alias string, def int) (int, error) {
	if r.URL.Query().Get(name) == "" && r.URL.Query().Get(alias) != "" {
		return queryInt(r, alias, def)
	}
	return queryInt(r, name, def)
}

func queryFloat(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apierrors.NewValidationProblem(r.URL.Path, []apierrors.ValidationError{
			{Field: name, Message: "must be a number"},
		})
	}
	return v, nil
}
