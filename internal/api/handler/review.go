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

type ReviewHandler struct {
	notifier
	reviewService *service.ReviewService
	tripService   *service.TripService
}

func NewReviewHandler(reviewService *service.ReviewService, tripService *service.TripService, hub *ws.Hub) *ReviewHandler {
	return &ReviewHandler{
		notifier:      notifier{hub: hub},
		reviewService: reviewService,
		tripService:   tripService,
	}
}

// List 评价列表，附带行程供发表评价时选择
// GET /reviews
func (h *ReviewHandler) List(c *gin.Context) {
	view := dto.ReviewsView{Viewer: middleware.GetViewer(c)}

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		view.Reviews, err = h.reviewService.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		view.Trips, err = h.tripService.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, view)
}

// Detail GET /reviews/:id
func (h *ReviewHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, review)
}

// Create POST /actions/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, "Review posted successfully!", review)
}

// Delete DELETE /actions/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, "Review deleted", nil)
}
