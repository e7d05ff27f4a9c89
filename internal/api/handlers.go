package api

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bilgisen/tldr-relay/internal/logger"
	"github.com/bilgisen/tldr-relay/internal/middleware"
	"github.com/bilgisen/tldr-relay/internal/models"
	"github.com/bilgisen/tldr-relay/internal/utils"
)

// Runner performs one publishing pass.
type Runner interface {
	Run(ctx context.Context) models.RunResult
}

// Ledger exposes the publication markers to admin routes.
type Ledger interface {
	ListPostedCategories(ctx context.Context, date string) map[models.Category]struct{}
	Reset(ctx context.Context, date string) (int, error)
}

// ReportArchive keeps the history of runs.
type ReportArchive interface {
	SaveReport(ctx context.Context, report models.RunResult) (string, error)
	ListReports(ctx context.Context, limit int) ([]models.RunResult, error)
}

type Handlers struct {
	runner  Runner
	ledger  Ledger
	archive ReportArchive
	// running serializes runs so two triggers cannot post the same edition.
	running sync.Mutex
	timeout time.Duration
}

// NewHandlers wires the route handlers. archive may be nil.
func NewHandlers(runner Runner, ledger Ledger, archive ReportArchive, runTimeout time.Duration) *Handlers {
	if runTimeout <= 0 {
		runTimeout = 30 * time.Minute
	}
	return &Handlers{
		runner:  runner,
		ledger:  ledger,
		archive: archive,
		timeout: runTimeout,
	}
}

// StatusQuery is the query of GET /api/v1/admin/status
type StatusQuery struct {
	Date string `query:"date" validate:"required,datetime=2006-01-02"`
}

// RunsQuery is the query of GET /api/v1/admin/runs
type RunsQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Run handles GET|POST /api/v1/run. It runs the pipeline to completion and
// answers with the plain-text summary.
func (h *Handlers) Run(c *fiber.Ctx) error {
	if !h.running.TryLock() {
		return fiber.NewError(fiber.StatusConflict, "A run is already in progress")
	}
	defer h.running.Unlock()

	// The run must not be cut short by the client going away.
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	result := h.runner.Run(ctx)
	h.archiveReport(ctx, result)

	return c.Status(fiber.StatusOK).SendString(result.Summary())
}

func (h *Handlers) archiveReport(ctx context.Context, result models.RunResult) {
	if h.archive == nil {
		return
	}
	if _, err := h.archive.SaveReport(ctx, result); err != nil {
		logger.Get().Error().
			Err(err).
			Str("run_id", result.ID).
			Msg("Error archiving run report")
	}
}

// Status handles GET /api/v1/admin/status
func (h *Handlers) Status(c *fiber.Ctx) error {
	q := middleware.Query[StatusQuery](c)
	posted := h.ledger.ListPostedCategories(c.Context(), q.Date)

	postedList := make([]models.Category, 0, len(posted))
	pendingList := make([]models.Category, 0)
	for _, category := range models.AllCategories() {
		if _, ok := posted[category]; ok {
			postedList = append(postedList, category)
		} else {
			pendingList = append(pendingList, category)
		}
	}

	return c.JSON(fiber.Map{
		"date":    q.Date,
		"posted":  postedList,
		"pending": pendingList,
	})
}

// ResetMarkers handles DELETE /api/v1/admin/markers/:date
func (h *Handlers) ResetMarkers(c *fiber.Ctx) error {
	date := c.Params("date")
	if !utils.ValidDate(date) {
		return fiber.NewError(fiber.StatusBadRequest, "Date must be formatted as YYYY-MM-DD")
	}

	removed, err := h.ledger.Reset(c.Context(), date)
	if err != nil {
		logger.Get().Error().Err(err).Str("date", date).Msg("Error clearing markers")
		return fiber.NewError(fiber.StatusBadGateway, "Failed to clear markers")
	}

	logger.Get().Info().Str("date", date).Int("removed", removed).Msg("Cleared markers")
	return c.JSON(fiber.Map{
		"date":    date,
		"removed": removed,
	})
}

// ListRuns handles GET /api/v1/admin/runs
func (h *Handlers) ListRuns(c *fiber.Ctx) error {
	if h.archive == nil {
		return fiber.NewError(fiber.StatusNotFound, "Run history is disabled")
	}

	limit := middleware.Query[RunsQuery](c).Limit
	if limit == 0 {
		limit = 20
	}

	reports, err := h.archive.ListReports(c.Context(), limit)
	if err != nil {
		logger.Get().Error().Err(err).Msg("Error listing run reports")
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list runs")
	}

	return c.JSON(fiber.Map{
		"total": len(reports),
		"items": reports,
	})
}
