package handler

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/ridecircle/ridecircle_client/internal/api/middleware"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/pkg/response"
	"github.com/ridecircle/ridecircle_client/internal/pkg/ws"
	"github.com/ridecircle/ridecircle_client/internal/service"
)

type TripHandler struct {
	notifier
	tripService *service.TripService
	clubService *service.ClubService
}

func NewTripHandler(tripService *service.TripService, clubService *service.ClubService, hub *ws.Hub) *TripHandler {
	return &TripHandler{
		notifier:    notifier{hub: hub},
		tripService: tripService,
		clubService: clubService,
	}
}

type createTripRequest struct {
	ClubID int64 `json:"clubId" binding:"required"`
	dto.TripRequest
}

// List 行程列表
// GET /trips
func (h *TripHandler) List(c *gin.Context) {
	trips, err := h.tripService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, dto.TripsView{Viewer: middleware.GetViewer(c), Trips: trips})
}

// Detail 行程详情、报名状态和人数
// GET /trips/:id
func (h *TripHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	view := dto.TripDetailView{Viewer: middleware.GetViewer(c)}

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		view.Trip, err = h.tripService.Get(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		view.IsRegistered, err = h.tripService.IsRegistered(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		view.RegistrationCount, err = h.tripService.RegistrationCount(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, view)
}

// AddForm 新建行程表单。从俱乐部页进入时锁定该俱乐部，否则默认第一个
// GET /trips/add, GET /clubs/:id/trips/add
func (h *TripHandler) AddForm(c *gin.Context) {
	var clubID int64
	if c.Param("id") != "" {
		id, ok := parseID(c)
		if !ok {
			return
		}
		clubID = id
	}

	clubs, err := h.clubService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if clubID == 0 && len(clubs) > 0 {
		clubID = clubs[0].ID
	}

	response.Success(c, dto.TripFormView{
		Viewer:    middleware.GetViewer(c),
		ClubID:    clubID,
		Clubs:     clubs,
		TripTypes: service.TripTypes,
	})
}

// EditForm GET /trips/:id/edit
func (h *TripHandler) EditForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	trip, err := h.tripService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	view := dto.TripFormView{
		Viewer:    middleware.GetViewer(c),
		TripID:    id,
		TripTypes: service.TripTypes,
		Form:      dto.TripRequestFrom(trip),
	}
	if trip.OrganizingClub != nil {
		view.ClubID = trip.OrganizingClub.ID
	}
	response.Success(c, view)
}

// Create 在指定俱乐部下创建行程
// POST /actions/trips
func (h *TripHandler) Create(c *gin.Context) {
	var req createTripRequest
	if !bindJSON(c, &req) {
		return
	}

	trip, err := h.tripService.CreateForClub(c.Request.Context(), req.ClubID, req.TripRequest)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, "Trip created successfully!", trip)
}

// Update PUT /actions/trips/:id
func (h *TripHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.TripRequest
	if !bindJSON(c, &req) {
		return
	}

	trip, err := h.tripService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, "Trip updated successfully!", trip)
}

// Delete DELETE /actions/trips/:id
func (h *TripHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.tripService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, "Trip deleted successfully!", nil)
}

// Register 报名，plan 取 NORMAL 或 PREMIUM，缺省 NORMAL
// POST /actions/trips/:id/register?plan=
func (h *TripHandler) Register(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	msg, err := h.tripService.Register(c.Request.Context(), id, c.Query("plan"))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, msg, nil)
}

// Unregister POST /actions/trips/:id/unregister
func (h *TripHandler) Unregister(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	msg, err := h.tripService.Unregister(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, msg, nil)
}
