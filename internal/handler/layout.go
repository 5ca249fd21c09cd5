package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seatforge/seatmap-service/internal/repository"
	"github.com/seatforge/seatmap-service/internal/service"
)

// LayoutHandler exposes the seat-map authoring API: template CRUD and
// duplication. All routes here sit behind the ADMIN role.
type LayoutHandler struct {
	Layouts *repository.LayoutRepo
}

func NewLayoutHandler(layouts *repository.LayoutRepo) *LayoutHandler {
	if layouts == nil {
		panic("nil repository passed to NewLayoutHandler")
	}
	return &LayoutHandler{Layouts: layouts}
}

// Wire DTOs. Geometry fields mirror the repository spec's pointer
// shape so a missing field survives binding as nil and fails
// validation instead of silently becoming zero.

type stageReq struct {
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Shape    string  `json:"shape"`
	Height   float64 `json:"height"`
	Width    float64 `json:"width"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type seatReq struct {
	Number   uint32   `json:"number"`
	Label    string   `json:"label"`
	Status   string   `json:"status"`
	Type     string   `json:"type"`
	TicketID *uint64  `json:"ticketCategory"`
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Price    *float64 `json:"price"`
	Icon     *string  `json:"icon"`
	Radius   *float64 `json:"radius"`
}

type rowReq struct {
	Title         string    `json:"title"`
	NumberOfSeats uint32    `json:"numberOfSeats"`
	Shape         string    `json:"shape"`
	Curve         float64   `json:"curve"`
	Spacing       float64   `json:"spacing"`
	TicketID      *uint64   `json:"ticketCategory"`
	Seats         []seatReq `json:"seats"`
}

type sectionReq struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	TierID *uint64  `json:"tier_id"`
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
	Rows   []rowReq `json:"rows"`
}

type layoutReq struct {
	Name     string       `json:"name"`
	VenueID  *uint64      `json:"venue_id"`
	EventID  *uint64      `json:"event_id"`
	Stage    *stageReq    `json:"stage"`
	Sections []sectionReq `json:"sections"`
}

// Admin responses follow the same wire conventions as the public view:
// prefixed string ids, camelCase field names and status labels.

type stageResp struct {
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Shape    string  `json:"shape"`
	Height   float64 `json:"height"`
	Width    float64 `json:"width"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type seatResp struct {
	ID       string   `json:"id"`
	Number   uint32   `json:"number"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Status   string   `json:"status"`
	TicketID *uint64  `json:"ticketCategory"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Price    *float64 `json:"price"`
	Icon     *string  `json:"icon"`
	Radius   *float64 `json:"radius"`
}

type rowResp struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	NumberOfSeats uint32     `json:"numberOfSeats"`
	Shape         string     `json:"shape"`
	Curve         float64    `json:"curve"`
	Spacing       float64    `json:"spacing"`
	TicketID      *uint64    `json:"ticketCategory"`
	Position      uint32     `json:"position"`
	Seats         []seatResp `json:"seats"`
}

type sectionResp struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	TierID *uint64   `json:"tier_id"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Rows   []rowResp `json:"rows"`
}

type layoutMetaResp struct {
	TotalSections uint32 `json:"totalSections"`
	TotalRows     uint32 `json:"totalRows"`
	TotalSeats    uint32 `json:"totalSeats"`
}

type layoutResp struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	VenueID   *uint64        `json:"venue_id"`
	EventID   *uint64        `json:"event_id"`
	Stage     *stageResp     `json:"stage"`
	Sections  []sectionResp  `json:"sections"`
	Metadata  layoutMetaResp `json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// toLayoutResp projects the repository tree into the admin wire shape.
func toLayoutResp(d *repository.LayoutDetails) layoutResp {
	resp := layoutResp{
		ID:      service.LayoutKey(d.Layout.ID),
		Name:    d.Layout.Name,
		VenueID: d.Layout.VenueID,
		EventID: d.Layout.EventID,
		Metadata: layoutMetaResp{
			TotalSections: d.Layout.TotalSections,
			TotalRows:     d.Layout.TotalRows,
			TotalSeats:    d.Layout.TotalSeats,
		},
		CreatedAt: d.Layout.CreatedAt,
		UpdatedAt: d.Layout.UpdatedAt,
		Sections:  make([]sectionResp, 0, len(d.Sections)),
	}
	if d.Stage != nil {
		resp.Stage = &stageResp{
			Name:     d.Stage.Name,
			Position: d.Stage.Position,
			Shape:    d.Stage.Shape,
			Height:   d.Stage.Height,
			Width:    d.Stage.Width,
			X:        d.Stage.X,
			Y:        d.Stage.Y,
		}
	}
	for _, sec := range d.Sections {
		sr := sectionResp{
			ID:     service.SectionKey(sec.Section.ID),
			Name:   sec.Section.Name,
			Type:   sec.Section.Type,
			TierID: sec.Section.TierID,
			X:      sec.Section.X,
			Y:      sec.Section.Y,
			Width:  sec.Section.Width,
			Height: sec.Section.Height,
			Rows:   make([]rowResp, 0, len(sec.Rows)),
		}
		for _, row := range sec.Rows {
			rr := rowResp{
				ID:            service.RowKey(row.Row.ID),
				Title:         row.Row.Title,
				NumberOfSeats: row.Row.NumberOfSeats,
				Shape:         row.Row.Shape,
				Curve:         row.Row.Curve,
				Spacing:       row.Row.Spacing,
				TicketID:      row.Row.TicketID,
				Position:      row.Row.Position,
				Seats:         make([]seatResp, 0, len(row.Seats)),
			}
			for _, seat := range row.Seats {
				rr.Seats = append(rr.Seats, seatResp{
					ID:       service.SeatKey(seat.ID),
					Number:   seat.Number,
					Label:    seat.Label,
					Type:     seat.Type,
					Status:   seat.Status.String(),
					TicketID: seat.TicketID,
					X:        seat.X,
					Y:        seat.Y,
					Price:    seat.Price,
					Icon:     seat.Icon,
					Radius:   seat.Radius,
				})
			}
			sr.Rows = append(sr.Rows, rr)
		}
		resp.Sections = append(resp.Sections, sr)
	}
	return resp
}

// toSpec converts the wire shape into the repository spec.
func (r *layoutReq) toSpec() *repository.LayoutSpec {
	spec := &repository.LayoutSpec{
		Name:    r.Name,
		VenueID: r.VenueID,
		EventID: r.EventID,
	}
	if r.Stage != nil {
		spec.Stage = &repository.StageSpec{
			Name:     r.Stage.Name,
			Position: r.Stage.Position,
			Shape:    r.Stage.Shape,
			Height:   r.Stage.Height,
			Width:    r.Stage.Width,
			X:        r.Stage.X,
			Y:        r.Stage.Y,
		}
	}
	for _, sec := range r.Sections {
		secSpec := repository.SectionSpec{
			Name:   sec.Name,
			Type:   sec.Type,
			TierID: sec.TierID,
			X:      sec.X,
			Y:      sec.Y,
			Width:  sec.Width,
			Height: sec.Height,
		}
		for _, row := range sec.Rows {
			rowSpec := repository.RowSpec{
				Title:         row.Title,
				NumberOfSeats: row.NumberOfSeats,
				Shape:         row.Shape,
				Curve:         row.Curve,
				Spacing:       row.Spacing,
				TicketID:      row.TicketID,
			}
			for _, seat := range row.Seats {
				rowSpec.Seats = append(rowSpec.Seats, repository.SeatSpec{
					Number:   seat.Number,
					Label:    seat.Label,
					Type:     seat.Type,
					Status:   seat.Status,
					TicketID: seat.TicketID,
					X:        seat.X,
					Y:        seat.Y,
					Price:    seat.Price,
					Icon:     seat.Icon,
					Radius:   seat.Radius,
				})
			}
			secSpec.Rows = append(secSpec.Rows, rowSpec)
		}
		spec.Sections = append(spec.Sections, secSpec)
	}
	return spec
}

// Create handles POST /v1/layouts.
func (h *LayoutHandler) Create(c echo.Context) error {
	var req layoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	id, err := h.Layouts.Create(c.Request().Context(), req.toSpec())
	if err != nil {
		if repository.IsValidation(err) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create layout"})
	}
	details, err := h.Layouts.GetWithDetails(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load created layout"})
	}
	return c.JSON(http.StatusCreated, toLayoutResp(details))
}

// Get handles GET /v1/layouts/:id and returns the raw template tree.
func (h *LayoutHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	details, err := h.Layouts.GetWithDetails(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "layout not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toLayoutResp(details))
}

// Update handles PUT /v1/layouts/:id with full replace semantics.
func (h *LayoutHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req layoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Layouts.Update(c.Request().Context(), id, req.toSpec()); err != nil {
		switch {
		case repository.IsValidation(err):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrLayoutNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "layout not found"})
		case errors.Is(err, repository.ErrLayoutInUse):
			return c.JSON(http.StatusConflict, echo.Map{"error": "layout is in use by event seat statuses"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	details, err := h.Layouts.GetWithDetails(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load updated layout"})
	}
	return c.JSON(http.StatusOK, toLayoutResp(details))
}

// Delete handles DELETE /v1/layouts/:id.
func (h *LayoutHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Layouts.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrLayoutNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "layout not found"})
		case errors.Is(err, repository.ErrLayoutInUse):
			return c.JSON(http.StatusConflict, echo.Map{"error": "layout is in use by event seat statuses"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Duplicate handles POST /v1/layouts/:id/duplicate.
func (h *LayoutHandler) Duplicate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	newID, err := h.Layouts.Duplicate(c.Request().Context(), id, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "layout not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "duplicate failed"})
	}
	details, err := h.Layouts.GetWithDetails(c.Request().Context(), newID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load cloned layout"})
	}
	return c.JSON(http.StatusCreated, toLayoutResp(details))
}
