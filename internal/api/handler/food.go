package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/ridecircle/ridecircle_client/internal/api/middleware"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/pkg/response"
	"github.com/ridecircle/ridecircle_client/internal/pkg/ws"
	"github.com/ridecircle/ridecircle_client/internal/service"
)

type FoodHandler struct {
	notifier
	foodService *service.FoodService
}

func NewFoodHandler(foodService *service.FoodService, hub *ws.Hub) *FoodHandler {
	return &FoodHandler{
		notifier:    notifier{hub: hub},
		foodService: foodService,
	}
}

// Preferences 口味偏好页：菜品（登录时带 isSelected）和筛选项
// GET /food-preferences?category=&cuisine=&q=&vegetarian=&vegan=
func (h *FoodHandler) Preferences(c *gin.Context) {
	var filter dto.FoodFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	view := dto.FoodPreferencesView{Viewer: middleware.GetViewer(c)}

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		view.Foods, err = h.foodService.Filter(ctx, filter)
		return err
	})
	g.Go(func() (err error) {
		view.Categories, err = h.foodService.Categories(ctx)
		return err
	})
	g.Go(func() (err error) {
		view.Cuisines, err = h.foodService.Cuisines(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, view)
}

// Prefer POST /actions/foods/:id/prefer
func (h *FoodHandler) Prefer(c *gin.Context) {
	h.setPreferred(c, true)
}

// Unprefer DELETE /actions/foods/:id/prefer
func (h *FoodHandler) Unprefer(c *gin.Context) {
	h.setPreferred(c, false)
}

func (h *FoodHandler) setPreferred(c *gin.Context, preferred bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	msg, err := h.foodService.SetPreferred(c.Request.Context(), id, preferred)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, msg, gin.H{"foodId": id, "isSelected": preferred})
}

// AdminList 菜品管理页，?edit=<id> 时附带待编辑的菜品
// GET /admin/foods
func (h *FoodHandler) AdminList(c *gin.Context) {
	ctx := c.Request.Context()

	foods, err := h.foodService.AdminList(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	view := dto.AdminFoodsView{Viewer: middleware.GetViewer(c), Foods: foods}
	if raw := c.Query("edit"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.ParamError(c, "invalid edit id")
			return
		}
		view.Editing, err = h.foodService.AdminGet(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	response.Success(c, view)
}

// AdminCreate POST /actions/admin/foods
func (h *FoodHandler) AdminCreate(c *gin.Context) {
	var req dto.FoodRequest
	if !bindJSON(c, &req) {
		return
	}

	food, err := h.foodService.AdminCreate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, "Food added successfully!", food)
}

// AdminUpdate PUT /actions/admin/foods/:id
func (h *FoodHandler) AdminUpdate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.FoodRequest
	if !bindJSON(c, &req) {
		return
	}

	food, err := h.foodService.AdminUpdate(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, "Food updated successfully!", food)
}

// AdminDelete DELETE /actions/admin/foods/:id
func (h *FoodHandler) AdminDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.foodService.AdminDelete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, "Food deleted successfully!", nil)
}
