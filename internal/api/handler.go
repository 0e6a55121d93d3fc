package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/mpesa-statement-analyzer/internal/analysis"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/extractor"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/logger"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/parser"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/pipeline"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/store"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/writer"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// AnalyzeResponse is the JSON response from the /api/analyze endpoint.
type AnalyzeResponse struct {
	Success    bool                `json:"success"`
	Error      string              `json:"error,omitempty"`
	RunID      string              `json:"runId,omitempty"`
	Statement  *StatementMeta      `json:"statement,omitempty"`
	Count      int                 `json:"count"`
	Summary    []models.SummaryRow `json:"summary,omitempty"`
	Reports    []analysis.Report   `json:"reports,omitempty"`
	Categories store.Buckets       `json:"categories,omitempty"`
	Months     []string            `json:"months,omitempty"`
	CSV        string              `json:"csv,omitempty"`
	Version    string              `json:"version,omitempty"`
}

// StatementMeta holds statement header fields for the JSON response.
type StatementMeta struct {
	CustomerName    string `json:"customerName,omitempty"`
	MobileNumber    string `json:"mobileNumber,omitempty"`
	EmailAddress    string `json:"emailAddress,omitempty"`
	StatementPeriod string `json:"statementPeriod,omitempty"`
	RequestDate     string `json:"requestDate,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	StaticDir     string
	TopN          int
	IncludeHeader bool
	Log           zerolog.Logger
}

// NewApp builds the fiber app with middleware and routes.
func NewApp(h *Handler, bodyLimitMB int) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             bodyLimitMB << 20,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(h.requestLogger)
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", HandleHealth)
	app.Get("/api/categories", HandleCategories)
	app.Post("/api/analyze", h.HandleAnalyze)

	// Serve the dashboard; unknown paths fall back to index.html
	if h.StaticDir != "" {
		app.Static("/", h.StaticDir)
		app.Get("/*", func(c *fiber.Ctx) error {
			if strings.HasPrefix(c.Path(), "/api/") {
				return fiber.ErrNotFound
			}
			index := filepath.Join(h.StaticDir, "index.html")
			if _, err := os.Stat(index); err != nil {
				return fiber.ErrNotFound
			}
			return c.SendFile(index)
		})
	}
}

// HandleHealth reports liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

// HandleCategories lists the category names in precedence order.
func HandleCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": models.Categories(),
	})
}

// HandleAnalyze classifies an uploaded statement. Form fields: file (PDF or
// CSV), password, from and to (YYYY-MM-DD), months (comma-separated
// labels like January_2024) and csv=true to include the CSV export.
func (h *Handler) HandleAnalyze(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" && ext != ".csv" {
		return writeError(c, fiber.StatusBadRequest, "Only PDF and CSV statements are supported.")
	}

	from, err := pipeline.ParseDate(c.FormValue("from"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	to, err := pipeline.ParseDate(c.FormValue("to"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	months, err := pipeline.ParseMonths(c.FormValue("months"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	f, err := fh.Open()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}

	res, err := pipeline.Run(c.UserContext(), pipeline.Input{
		Name:     fh.Filename,
		Data:     data,
		Password: c.FormValue("password"),
	}, pipeline.Options{
		From:   from,
		To:     to,
		Months: months,
		TopN:   h.TopN,
	})
	if err != nil {
		l := logger.FromContext(c.UserContext())
		l.Warn().Err(err).Str("file", fh.Filename).Msg("analysis failed")
		return writeError(c, statusFor(err), err.Error())
	}

	resp := AnalyzeResponse{
		Success:    true,
		RunID:      res.RunID,
		Count:      res.Buckets.Len(),
		Summary:    res.Summary,
		Reports:    res.Reports,
		Categories: res.Buckets,
		Months:     store.Months(res.All),
		Version:    Version,
	}
	if info := res.Info; info.CustomerName != "" || info.MobileNumber != "" || info.StatementPeriod != "" {
		resp.Statement = &StatementMeta{
			CustomerName:    info.CustomerName,
			MobileNumber:    info.MobileNumber,
			EmailAddress:    info.EmailAddress,
			StatementPeriod: info.StatementPeriod,
			RequestDate:     info.RequestDate,
		}
	}

	if c.FormValue("csv") == "true" {
		var buf bytes.Buffer
		w := &writer.CSVWriter{IncludeHeader: h.IncludeHeader}
		if err := w.Write(&buf, res.Info, res.Buckets); err != nil {
			return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
		}
		resp.CSV = buf.String()
	}

	return c.JSON(resp)
}

// requestLogger attaches a request-scoped logger to the user context and
// logs each request once it completes.
func (h *Handler) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	log := h.Log.With().Str("request_id", uuid.NewString()).Logger()
	c.SetUserContext(logger.WithContext(c.UserContext(), log))

	err := c.Next()

	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	log.Info().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("duration", time.Since(start)).
		Msg("request")
	return err
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, extractor.ErrInvalidPassword):
		return fiber.StatusUnauthorized
	case errors.Is(err, pipeline.ErrUnsupportedFile), errors.Is(err, pipeline.ErrBadFilter):
		return fiber.StatusBadRequest
	case errors.Is(err, extractor.ErrNoReadableText),
		errors.Is(err, parser.ErrNotMpesaStatement),
		errors.Is(err, parser.ErrMissingColumns):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

// errorHandler renders errors returned by handlers and middleware, including
// recovered panics, as the JSON error body.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return writeError(c, code, err.Error())
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(AnalyzeResponse{
		Success: false,
		Error:   msg,
	})
}
