package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/ridecircle/ridecircle_client/internal/api/middleware"
	"github.com/ridecircle/ridecircle_client/internal/client"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/pkg/response"
	"github.com/ridecircle/ridecircle_client/internal/service"
)

// probeEndpoints 接口调试页依次探测的公开接口
var probeEndpoints = []string{
	"/subscriptions/plans",
	"/clubs",
	"/trips",
	"/restaurants",
}

type PageHandler struct {
	api           *client.Client
	clubService   *service.ClubService
	tripService   *service.TripService
	reviewService *service.ReviewService
}

func NewPageHandler(api *client.Client, clubService *service.ClubService, tripService *service.TripService, reviewService *service.ReviewService) *PageHandler {
	return &PageHandler{
		api:           api,
		clubService:   clubService,
		tripService:   tripService,
		reviewService: reviewService,
	}
}

// Home 首页：俱乐部、行程、评价
// GET /
func (h *PageHandler) Home(c *gin.Context) {
	view := dto.HomeView{Viewer: middleware.GetViewer(c)}

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		view.Clubs, err = h.clubService.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		view.Trips, err = h.tripService.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		view.Reviews, err = h.reviewService.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, view)
}

// TestAPI 探测上游接口，单个失败不影响其他结果
// GET /test-api
func (h *PageHandler) TestAPI(c *gin.Context) {
	probes := make([]dto.APIProbe, len(probeEndpoints))

	var g errgroup.Group
	for i, endpoint := range probeEndpoints {
		i, endpoint := i, endpoint
		g.Go(func() error {
			var data interface{}
			err := h.api.Get(c.Request.Context(), endpoint, &data)
			probes[i] = dto.APIProbe{Endpoint: endpoint, OK: err == nil, Data: data}
			if err != nil {
				probes[i].Error = service.ErrorMessage(err)
			}
			return nil
		})
	}
	_ = g.Wait()

	response.Success(c, probes)
}

// NotFound 未知页面回到首页
func (h *PageHandler) NotFound(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}
