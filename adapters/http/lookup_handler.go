package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	lookupUC "github.com/khoahotran/namelookup/internal/application/usecase/lookup"
	"github.com/khoahotran/namelookup/pkg/apperror"
	"github.com/khoahotran/namelookup/pkg/logger"
)

type LookupHandler struct {
	lookupUseCase *lookupUC.LookupUseCase
	logger        logger.Logger
}

func NewLookupHandler(uc *lookupUC.LookupUseCase, log logger.Logger) *LookupHandler {
	return &LookupHandler{
		lookupUseCase: uc,
		logger:        log,
	}
}

// GetUserByDisplayName serves the callable lookup. Every failure is rendered
// in the callable error envelope by writeCallableError.
func (h *LookupHandler) GetUserByDisplayName(c *gin.Context) {
	var req CallableLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeCallableError(c, apperror.NewInvalidInput("request body must be JSON", err))
		return
	}

	res := h.lookupUseCase.Execute(c.Request.Context(), lookupUC.LookupInput{
		DisplayName: req.GetDisplayName(),
	})
	if !res.Found() {
		writeCallableError(c, res.Err)
		return
	}

	c.JSON(http.StatusOK, CallableLookupResponse{Result: LookupResultDTO{Email: res.Email}})
}

func writeCallableError(c *gin.Context, appErr *apperror.AppError) {
	c.AbortWithStatusJSON(apperror.ToHTTPStatus(appErr), appErr.ToCallableJSON())
}
