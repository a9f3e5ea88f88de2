// File: internal/location/handler.go
package location

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"dreamhome_backend/internal/common"
)

// Handler holds dependencies for location handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new location handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("location-handler")}
}

// RegisterRoutes sets up the routes for location operations. Reading is
// public; mutations require an admin.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, adminRoleMW gin.HandlerFunc) {
	locationGroup := router.Group("/locations")
	{
		locationGroup.GET("", h.listLocations)
		locationGroup.GET("/:id", h.getLocation)

		adminGroup := locationGroup.Group("")
		adminGroup.Use(authMW, adminRoleMW)
		{
			adminGroup.POST("", h.createLocation)
			adminGroup.PUT("/:id", h.updateLocation)
			adminGroup.DELETE("/:id", h.deleteLocation)
		}
	}
}

func (h *Handler) listLocations(c *gin.Context) {
	var (
		locations []Location
		err       error
	)
	if city := c.Query("city"); city != "" {
		locations, err = h.service.ListByCity(c.Request.Context(), city)
	} else {
		locations, err = h.service.ListAll(c.Request.Context())
	}
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]Response, 0, len(locations))
	for i := range locations {
		responses = append(responses, ToResponse(&locations[i]))
	}
	common.RespondOK(c, "Locations retrieved successfully.", responses)
}

func (h *Handler) getLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid location ID format."))
		return
	}

	loc, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Location retrieved successfully.", ToResponse(loc))
}

func (h *Handler) createLocation(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	loc, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Location created successfully.", ToResponse(loc))
}

func (h *Handler) updateLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid location ID format."))
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	loc, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Location updated successfully.", ToResponse(loc))
}

func (h *Handler) deleteLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid location ID format."))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
