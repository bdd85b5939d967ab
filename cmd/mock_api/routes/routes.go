package routes

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	slogecho "github.com/samber/slog-echo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/goliatone/go-tourneyform/internal/validator"
	"github.com/goliatone/go-tourneyform/pkg/model"
)

// ErrorResponse is the rejection body the form client reads.
type ErrorResponse struct {
	Error  string             `json:"error"`
	Fields *map[string]string `json:"fields,omitempty"`
}

type InsertResponse struct {
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
	ID       string `json:"id"`
}

type submission struct {
	Collection string         `json:"collection" validate:"required"`
	Data       []model.Record `json:"data"       validate:"len=1"`
}

// BuildEcho returns an echo instance with the validator and the request
// logging and tracing middleware installed.
func BuildEcho(logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	validate := validator.Create()
	e.Validator = &validate

	e.Use(
		middleware.Recover(),
		otelecho.Middleware("mock-api"),
		slogecho.NewWithConfig(logger, slogecho.Config{}),
	)

	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	return e
}

// Server handles envelope uploads.
type Server struct {
	store    *Store
	metrics  *metrics
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// NewServer builds a server that registers its metrics on registry.
func NewServer(store *Store, registry *prometheus.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:    store,
		metrics:  newMetrics(registry),
		logger:   logger,
		gatherer: registry,
	}
}

// Register mounts the upload route at path and the metrics endpoint.
func (s *Server) Register(e *echo.Echo, path string) {
	e.POST(path, s.SubmitEnvelope)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
}

// SubmitEnvelope accepts {"collection": id, "data": [record]}.
func (s *Server) SubmitEnvelope(c echo.Context) error {
	var body submission

	if err := c.Bind(&body); err != nil {
		s.metrics.submissionsTotal.WithLabelValues("", outcomeInvalid).Inc()
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed parsing request data"})
	}

	if err := c.Validate(body); err != nil {
		s.metrics.submissionsTotal.WithLabelValues(body.Collection, outcomeInvalid).Inc()
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	id, ok := s.store.Insert(body.Collection, body.Data[0])
	if !ok {
		s.metrics.submissionsTotal.WithLabelValues(body.Collection, outcomeDuplicate).Inc()
		s.logger.InfoContext(c.Request().Context(), "duplicate record", "collection", body.Collection)
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "duplicate id"})
	}

	s.metrics.submissionsTotal.WithLabelValues(body.Collection, outcomeAccepted).Inc()
	s.metrics.recordsStored.WithLabelValues(body.Collection).Set(float64(s.store.Len(body.Collection)))
	s.logger.InfoContext(c.Request().Context(), "record stored",
		"collection", body.Collection,
		"id", id,
		"request_id", c.Request().Header.Get("X-Request-ID"),
	)

	return c.JSON(http.StatusOK, InsertResponse{Message: "ok", Inserted: 1, ID: id})
}

func validationError(err error) ErrorResponse {
	fields := validator.Fields(err)
	if len(fields) == 0 {
		return ErrorResponse{Error: "validation error"}
	}
	out := make(map[string]string, len(fields))
	for _, field := range fields {
		out[field] = "invalid"
	}
	return ErrorResponse{Error: "validation error", Fields: &out}
}
