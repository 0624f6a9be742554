package dto

// SignInRequest 登录请求
type SignInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUpRequest 注册请求
type SignUpRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=50"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6,max=40"`
	Roles    []string `json:"roles"`
}

// NewSignUpRequest 按注册页的约定填充角色：管理员为 ADMIN，否则为 USER
func NewSignUpRequest(username, email, password string, admin bool) SignUpRequest {
	role := "USER"
	if admin {
		role = "ADMIN"
	}
	return SignUpRequest{
		Username: username,
		Email:    email,
		Password: password,
		Roles:    []string{role},
	}
}

// ResetPasswordRequest 修改密码请求
type ResetPasswordRequest struct {
	Username    string `json:"username" binding:"required"`
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=40"`
}

// AuthResponse 登录响应。历史版本的服务端分别使用过 token、accessToken、jwtToken 字段
type AuthResponse struct {
	Token       string   `json:"token,omitempty"`
	AccessToken string   `json:"accessToken,omitempty"`
	JwtToken    string   `json:"jwtToken,omitempty"`
	Type        string   `json:"type,omitempty"`
	ID          int64    `json:"id,omitempty"`
	Username    string   `json:"username,omitempty"`
	Email       string   `json:"email,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

// BearerToken 按 token > accessToken > jwtToken 的优先级取令牌
func (r *AuthResponse) BearerToken() string {
	if r == nil {
		return ""
	}
	for _, candidate := range []string{r.Token, r.AccessToken, r.JwtToken} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// MessageResponse 服务端的通用消息响应
type MessageResponse struct {
	Message string `json:"message"`
}
