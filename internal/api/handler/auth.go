package handler

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ridecircle/ridecircle_client/internal/api/middleware"
	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/pkg/response"
	"github.com/ridecircle/ridecircle_client/internal/pkg/ws"
	"github.com/ridecircle/ridecircle_client/internal/service"
)

type AuthHandler struct {
	notifier
	authService         *service.AuthService
	subscriptionService *service.SubscriptionService
}

func NewAuthHandler(authService *service.AuthService, subscriptionService *service.SubscriptionService, hub *ws.Hub) *AuthHandler {
	return &AuthHandler{
		notifier:            notifier{hub: hub},
		authService:         authService,
		subscriptionService: subscriptionService,
	}
}

// LoginPage 登录页
// GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	response.Success(c, dto.LoginView{Viewer: middleware.GetViewer(c)})
}

// RegisterPage 注册页
// GET /register
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	response.Success(c, dto.RegisterView{
		Viewer: middleware.GetViewer(c),
		Roles:  []string{"USER", "ADMIN"},
	})
}

// SignIn 登录并保存令牌，随后刷新订阅
// POST /actions/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.subscriptionService.Refresh(c.Request.Context()); err != nil {
		log.Printf("Refresh subscription after sign-in failed: %v", err)
	}

	h.done(c, "Login successful!", dto.Viewer{
		LoggedIn: true,
		IsAdmin:  hasRole(resp.Roles, model.RoleAdmin),
		Username: resp.Username,
	})
}

// SignUp 注册
// POST /actions/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=3,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6,max=40"`
		Admin    bool   `json:"admin"`
	}
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.authService.SignUp(c.Request.Context(), dto.NewSignUpRequest(req.Username, req.Email, req.Password, req.Admin)); err != nil {
		h.fail(c, err)
		return
	}

	account := "User account"
	if req.Admin {
		account = "Admin account"
	}
	h.done(c, "Registration successful! "+account+" created.", nil)
}

// Logout 清除会话
// POST /actions/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	h.subscriptionService.ClearUserSubscription()

	h.done(c, "Logged out", dto.Viewer{})
}

// ResetPassword 修改密码
// POST /actions/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.authService.ResetPassword(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.done(c, msg, nil)
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
