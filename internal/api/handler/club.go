package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ridecircle/ridecircle_client/internal/api/middleware"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/pkg/response"
	"github.com/ridecircle/ridecircle_client/internal/pkg/ws"
	"github.com/ridecircle/ridecircle_client/internal/service"
)

type ClubHandler struct {
	notifier
	clubService *service.ClubService
}

func NewClubHandler(clubService *service.ClubService, hub *ws.Hub) *ClubHandler {
	return &ClubHandler{
		notifier:    notifier{hub: hub},
		clubService: clubService,
	}
}

// List 俱乐部列表
// GET /clubs
func (h *ClubHandler) List(c *gin.Context) {
	clubs, err := h.clubService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, dto.ClubsView{Viewer: middleware.GetViewer(c), Clubs: clubs})
}

// Detail 俱乐部详情
// GET /clubs/:id
func (h *ClubHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	club, err := h.clubService.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	member, err := h.clubService.IsMember(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, dto.ClubDetailView{
		Viewer:   middleware.GetViewer(c),
		Club:     club,
		IsMember: member,
	})
}

// AddForm 新建俱乐部表单
// GET /clubs/add
func (h *ClubHandler) AddForm(c *gin.Context) {
	response.Success(c, dto.ClubFormView{Viewer: middleware.GetViewer(c)})
}

// EditForm 编辑表单，预填当前数据
// GET /clubs/:id/edit
func (h *ClubHandler) EditForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	club, err := h.clubService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, dto.ClubFormView{
		Viewer: middleware.GetViewer(c),
		ClubID: id,
		Form:   dto.ClubRequestFrom(club),
	})
}

// Create POST /actions/clubs
func (h *ClubHandler) Create(c *gin.Context) {
	var req dto.ClubRequest
	if !bindJSON(c, &req) {
		return
	}

	club, err := h.clubService.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, "Club created successfully!", club)
}

// Update PUT /actions/clubs/:id
func (h *ClubHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ClubRequest
	if !bindJSON(c, &req) {
		return
	}

	club, err := h.clubService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, "Club updated successfully!", club)
}

// Delete DELETE /actions/clubs/:id
func (h *ClubHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.clubService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, "Club deleted successfully!", nil)
}

// Join POST /actions/clubs/:id/join
func (h *ClubHandler) Join(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	msg, err := h.clubService.Join(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, msg, nil)
}

// Leave POST /actions/clubs/:id/leave
func (h *ClubHandler) Leave(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	msg, err := h.clubService.Leave(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, msg, nil)
}
