package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/seatforge/seatmap-service/internal/hold"
	"github.com/seatforge/seatmap-service/internal/queue"
	"github.com/seatforge/seatmap-service/internal/repository"
	"github.com/seatforge/seatmap-service/internal/service"
)

// EventLayoutHandler exposes the per-event seat ledger (submit/fetch)
// and the public rendered layout view.
type EventLayoutHandler struct {
	Ledger     *service.EventLayoutService
	Compositor *service.Compositor
	Redis      *redis.Client // nil disables the live hold overlay
}

func NewEventLayoutHandler(ledger *service.EventLayoutService, comp *service.Compositor, rdb *redis.Client) *EventLayoutHandler {
	if ledger == nil || comp == nil {
		panic("nil dependency passed to NewEventLayoutHandler")
	}
	return &EventLayoutHandler{Ledger: ledger, Compositor: comp, Redis: rdb}
}

// Submit handles POST /v1/events/layout. Assignments are applied
// best-effort in input order; the response reports how many were
// applied and how many were skipped for unusable seat ids. A broker
// publish failure is logged inside the publisher and deliberately not
// surfaced: the ledger write already committed.
func (h *EventLayoutHandler) Submit(c echo.Context) error {
	var req service.SubmitEventLayoutInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.EventID == 0 || req.LayoutID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id and layout_id are required"})
	}
	applied, skipped, err := h.Ledger.Submit(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not submit event layout"})
	}
	_ = queue.PublishSeatMapSubmitted(c.Request().Context(), queue.SeatMapSubmittedEvent{
		EventID:     req.EventID,
		EventKey:    req.EventKey,
		LayoutID:    req.LayoutID,
		Applied:     applied,
		Skipped:     skipped,
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, echo.Map{"applied": applied, "skipped": skipped})
}

// Get handles GET /v1/events/:id/layout: every ledger row for the
// event with string status labels, for booking surfaces.
func (h *EventLayoutHandler) Get(c echo.Context) error {
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rows, err := h.Ledger.Get(c.Request().Context(), eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// View handles GET /v1/layouts/:id/view?event_id=N: the public
// render-ready tree with template, ledger and live holds merged.
// Without an explicit event_id the layout's most recent event binding
// is used.
func (h *EventLayoutHandler) View(c echo.Context) error {
	layoutID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var eventID uint64
	if raw := c.QueryParam("event_id"); raw != "" {
		if eventID, _ = service.ExtractNumericID(raw); eventID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event_id"})
		}
	}

	ctx := c.Request().Context()
	resolved, err := h.Compositor.ResolveEvent(ctx, layoutID, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var overlay hold.Overlay
	if h.Redis != nil && resolved != 0 {
		overlay = hold.NewRedisOverlay(ctx, h.Redis, resolved)
	}
	view, err := h.Compositor.Compose(ctx, layoutID, resolved, overlay)
	if err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "layout not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not render layout"})
	}
	return c.JSON(http.StatusOK, view)
}
