package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-hotel-reservation/internal/api"
	"github.com/sanosuguru/go-hotel-reservation/internal/application"
	"github.com/sanosuguru/go-hotel-reservation/internal/domain/user"
)

type AuthHandler struct {
	service AuthServiceInterface
}

func NewAuthHandler(s AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: s}
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required" example:"山田太郎"`
	Email    string `json:"email" validate:"required,email" example:"taro@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"secret123"`
	Phone    string `json:"phone" example:"090-1234-5678"`
	Role     string `json:"role" validate:"omitempty,oneof=customer owner" example:"customer"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"taro@example.com"`
	Password string `json:"password" validate:"required" example:"secret123"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: string(u.Role)}
}

// Signup godoc
// @Summary ユーザー登録
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "登録情報"
// @Success 201 {object} api.Response
// @Failure 400 {object} api.Response "INVALID_REQUEST / EMAIL_ALREADY_EXISTS"
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return api.ErrInvalidRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	u, err := h.service.Signup(c.Request().Context(), application.SignupInput{
		Name: req.Name, Email: req.Email, Password: req.Password, Phone: req.Phone, Role: user.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusCreated, toUserResponse(u))
}

// Login godoc
// @Summary ログイン
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "認証情報"
// @Success 200 {object} api.Response
// @Failure 401 {object} api.Response "INVALID_CREDENTIALS"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return api.ErrInvalidRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	res, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	u := toUserResponse(res.User)
	u.Phone = ""
	return api.Success(c, http.StatusOK, LoginResponse{Token: res.Token, User: u})
}
