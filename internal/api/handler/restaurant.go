package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ridecircle/ridecircle_client/internal/api/middleware"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/pkg/response"
	"github.com/ridecircle/ridecircle_client/internal/pkg/ws"
	"github.com/ridecircle/ridecircle_client/internal/service"
)

type RestaurantHandler struct {
	notifier
	restaurantService *service.RestaurantService
	bookingService    *service.BookingService
}

func NewRestaurantHandler(restaurantService *service.RestaurantService, bookingService *service.BookingService, hub *ws.Hub) *RestaurantHandler {
	return &RestaurantHandler{
		notifier:          notifier{hub: hub},
		restaurantService: restaurantService,
		bookingService:    bookingService,
	}
}

// List 餐厅列表
// GET /restaurants?city=&cuisine=&q=&vegetarian=&delivery=
func (h *RestaurantHandler) List(c *gin.Context) {
	var filter dto.RestaurantFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	restaurants, err := h.restaurantService.Filter(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, dto.RestaurantsView{Viewer: middleware.GetViewer(c), Restaurants: restaurants})
}

// Detail GET /restaurants/:id
func (h *RestaurantHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	restaurant, err := h.restaurantService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, restaurant)
}

// Book 订座
// POST /actions/bookings
func (h *RestaurantHandler) Book(c *gin.Context) {
	var req dto.BookingRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, "Booking confirmed! Check your profile.", booking)
}

// Booking GET /bookings/:id
func (h *RestaurantHandler) Booking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, booking)
}

// CancelBooking POST /actions/bookings/:id/cancel
func (h *RestaurantHandler) CancelBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, "Booking cancelled", booking)
}

// DeleteBooking DELETE /actions/bookings/:id
func (h *RestaurantHandler) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.bookingService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, "Booking deleted", nil)
}
