package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	registrationUC "github.com/khoahotran/namelookup/internal/application/usecase/registration"
	"github.com/khoahotran/namelookup/pkg/apperror"
	"github.com/khoahotran/namelookup/pkg/logger"
)

type UserHandler struct {
	registerUseCase *registrationUC.RegisterUserUseCase
	logger          logger.Logger
}

func NewUserHandler(uc *registrationUC.RegisterUserUseCase, log logger.Logger) *UserHandler {
	return &UserHandler{
		registerUseCase: uc,
		logger:          log,
	}
}

func (h *UserHandler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("missing user display name or email", err))
		return
	}

	output, err := h.registerUseCase.Execute(c.Request.Context(), registrationUC.RegisterInput{
		ID:          req.ID,
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "User registration accepted",
		"user":    ToUserDTO(output.User),
	})
}
