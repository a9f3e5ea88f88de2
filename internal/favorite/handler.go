// File: internal/favorite/handler.go
package favorite

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"dreamhome_backend/internal/common"
	"dreamhome_backend/internal/middleware"
)

// Handler holds dependencies for favorite handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new favorite handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("favorite-handler")}
}

// RegisterRoutes sets up the routes for favorite operations. All of them
// require authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	favoriteGroup := router.Group("/favorites")
	favoriteGroup.Use(authMW)
	{
		favoriteGroup.GET("", h.listFavorites)
		favoriteGroup.POST("", h.addFavorite)
		favoriteGroup.DELETE("/:listingId", h.removeFavorite)
	}
}

func (h *Handler) listFavorites(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	favorites, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]Response, 0, len(favorites))
	for i := range favorites {
		responses = append(responses, ToResponse(&favorites[i]))
	}
	common.RespondOK(c, "Favorites retrieved successfully.", responses)
}

func (h *Handler) addFavorite(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("A valid listingId is required."))
		return
	}

	if err := h.service.Add(c.Request.Context(), userID, req.ListingID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing added to favorites.", nil)
}

func (h *Handler) removeFavorite(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	listingID, err := uuid.Parse(c.Param("listingId"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, listingID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
