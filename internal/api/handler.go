package api

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/skyline/internal/app"
	"github.com/bobby-s-dev/skyline/internal/models"
	"github.com/bobby-s-dev/skyline/internal/services"
	"github.com/bobby-s-dev/skyline/internal/view"
)

// HeaderPrefersColorScheme is the client hint carrying the platform theme.
const (
	HeaderPrefersColorScheme = "Sec-CH-Prefers-Color-Scheme"
	headerAcceptCH           = "Accept-CH"
)

type Handler struct {
	app       *app.App
	logger    *zap.Logger
	startTime time.Time
}

func NewHandler(application *app.App, logger *zap.Logger) *Handler {
	return &Handler{
		app:       application,
		logger:    logger,
		startTime: time.Now(),
	}
}

// searchResponse is returned by the JSON search endpoint.
type searchResponse struct {
	services.Outcome
	Panel view.PanelView `json:"panel"`
}

func prefersLight(c *fiber.Ctx) bool {
	return strings.EqualFold(strings.Trim(c.Get(HeaderPrefersColorScheme), `" `), "light")
}

// GetPage handles GET /
func (h *Handler) GetPage(c *fiber.Ctx) error {
	c.Set(headerAcceptCH, HeaderPrefersColorScheme)
	c.Set(fiber.HeaderVary, HeaderPrefersColorScheme)

	var buf bytes.Buffer
	if err := view.RenderPage(&buf, h.app.Panel.Snapshot()); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// SubmitSearch handles GET /search, the form submission of the page.
func (h *Handler) SubmitSearch(c *fiber.Ctx) error {
	h.app.Controller.Search(c.UserContext(), c.Query("city"))
	return c.Redirect("/", fiber.StatusSeeOther)
}

// SubmitThemeToggle handles POST /theme/toggle
func (h *Handler) SubmitThemeToggle(c *fiber.Ctx) error {
	if _, err := h.app.Theme.Toggle(c.UserContext()); err != nil {
		h.logger.Warn("Failed to persist theme", zap.Error(err))
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// GetPanel handles GET /api/v1/panel
func (h *Handler) GetPanel(c *fiber.Ctx) error {
	return c.JSON(h.app.Panel.Snapshot())
}

// Search handles GET /api/v1/search
func (h *Handler) Search(c *fiber.Ctx) error {
	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "City parameter is required",
		})
	}

	out := h.app.Controller.Search(c.UserContext(), city)
	return c.Status(searchStatus(out)).JSON(searchResponse{
		Outcome: out,
		Panel:   h.app.Panel.Snapshot(),
	})
}

// Refresh handles POST /api/v1/refresh
func (h *Handler) Refresh(c *fiber.Ctx) error {
	out := h.app.Scheduler.RunNow()
	return c.Status(searchStatus(out)).JSON(searchResponse{
		Outcome: out,
		Panel:   h.app.Panel.Snapshot(),
	})
}

func searchStatus(out services.Outcome) int {
	switch {
	case !out.Applied:
		return fiber.StatusConflict
	case out.State == models.StateReady:
		return fiber.StatusOK
	case errors.Is(out.Err, models.ErrLocationNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadGateway
	}
}

// GetTheme handles GET /api/v1/theme
func (h *Handler) GetTheme(c *fiber.Ctx) error {
	c.Set(headerAcceptCH, HeaderPrefersColorScheme)

	return c.JSON(fiber.Map{
		"theme":    h.app.Panel.Snapshot().Theme,
		"resolved": h.app.Theme.Current(c.UserContext(), prefersLight(c)),
	})
}

// ToggleTheme handles POST /api/v1/theme/toggle
func (h *Handler) ToggleTheme(c *fiber.Ctx) error {
	theme, err := h.app.Theme.Toggle(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to persist theme")
	}
	return c.JSON(fiber.Map{"theme": theme})
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":       "healthy",
		"timestamp":    time.Now(),
		"uptime":       time.Since(h.startTime).String(),
		"state":        h.app.Panel.State().String(),
		"last_query":   h.app.Controller.LastQuery(),
		"last_refresh": h.app.Scheduler.LastRun(),
		"refresh":      h.app.Scheduler.Enabled(),
	})
}

// ErrorHandler renders errors returned by handlers as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	zap.L().Error("HTTP error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))

	// Default to 500 status code
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   err.Error(),
		"success": false,
	})
}
