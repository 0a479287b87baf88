// File: internal/user/handler.go
package user

import (
	"errors"

	"notes_app_backend/internal/common"
	"notes_app_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	userService  shared.Service
	tokenService shared.TokenService
	logger       *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(
	userService shared.Service,
	tokenService shared.TokenService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		userService:  userService,
		tokenService: tokenService,
		logger:       logger.Named("UserHandler"),
	}
}

// RegisterRoutes sets up the routes for registration and OTP login.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	userGroup := router.Group("/users")
	{
		userGroup.POST("/register", h.register)
		userGroup.POST("/login", h.login)
		userGroup.POST("/verify-otp", h.verifyOTP)
	}
}

func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Register: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	usr, err := h.userService.Register(c.Request.Context(), shared.CreateUserRequest{
		Name:  req.Name,
		Email: req.Email,
		DOB:   req.DOB,
	})
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondCreated(c, "Registration successful. Please check your email for the OTP.", gin.H{
		"userId": usr.ID,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Login: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	if err := h.userService.RequestLoginOTP(c.Request.Context(), req.Email); err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "OTP sent. Please check your email.", nil)
}

func (h *Handler) verifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("VerifyOTP: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	usr, err := h.userService.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	token, _, err := h.tokenService.GenerateToken(usr)
	if err != nil {
		h.logger.Error("Failed to generate token after OTP verification", zap.Error(err), zap.String("userID", usr.ID.String()))
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("Could not generate access token."))
		return
	}

	common.RespondOK(c, "Verification successful.", VerifiedUserResponse{
		ID:    usr.ID,
		Name:  usr.Name,
		Email: usr.Email,
		Token: token,
	})
}
