package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/stwalsh4118/apartments/internal/errors"
	"github.com/stwalsh4118/apartments/internal/middleware"
	"github.com/stwalsh4118/apartments/internal/models"
	"github.com/stwalsh4118/apartments/internal/services"
)

// ApartmentHandler handles apartment listing HTTP requests.
type ApartmentHandler struct {
	service services.ApartmentService
}

// NewApartmentHandler creates a new ApartmentHandler instance.
func NewApartmentHandler(service services.ApartmentService) *ApartmentHandler {
	return &ApartmentHandler{
		service: service,
	}
}

// CreateApartmentRequest is the body of POST /.
// Pointer fields distinguish a missing key from a zero value.
type CreateApartmentRequest struct {
	AppartmentType *string  `json:"appartment_type" binding:"required,oneof=apartment house"`
	NumRooms       *int     `json:"num_rooms" binding:"required"`
	FloorArea      *float64 `json:"floor_area" binding:"required"`
	Floor          *int     `json:"floor" binding:"required"`
	Improvement    *string  `json:"improvement" binding:"required"`
	Address        *string  `json:"address" binding:"required"`
}

// ListApartmentsQuery holds the optional filters of GET /.
type ListApartmentsQuery struct {
	NumRooms       *int     `form:"num_rooms"`
	FloorArea      *float64 `form:"floor_area"`
	Floor          *int     `form:"floor"`
	AppartmentType *string  `form:"appartment_type"`
}

// DeleteApartmentURI holds the path parameter of DELETE /:id.
type DeleteApartmentURI struct {
	ID uint `uri:"id" binding:"required,gt=0"`
}

// ApartmentResponse is the JSON representation of a listing.
type ApartmentResponse struct {
	ID             uint    `json:"id"`
	AppartmentType string  `json:"appartment_type"`
	NumRooms       int     `json:"num_rooms"`
	FloorArea      float64 `json:"floor_area"`
	Floor          int     `json:"floor"`
	Improvement    string  `json:"improvement"`
	Address        string  `json:"address"`
}

// Create handles POST /.
// It stores a new listing and returns it with its assigned id.
func (h *ApartmentHandler) Create(c *gin.Context) {
	var req CreateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, "Invalid request body", err)
		return
	}

	apartment, err := h.service.CreateApartment(c.Request.Context(), req.toModel())
	if err != nil {
		if errors.Is(err, services.ErrInvalidApartmentType) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to create apartment", err)
		return
	}

	c.JSON(http.StatusOK, mapApartmentToDTO(apartment))
}

// List handles GET /.
// Every supplied query parameter narrows the result by exact match.
func (h *ApartmentHandler) List(c *gin.Context) {
	var query ListApartmentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierrors.BindingError(c, "Invalid query parameters", err)
		return
	}

	filter := query.toFilter(c)

	if log := middleware.GetLogger(c); log != nil {
		log.Debug("Processing list request", filter.Fields())
	}

	apartments, err := h.service.ListApartments(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, services.ErrInvalidApartmentType) {
			apierrors.BadRequest(c, "appartment_type must be one of: apartment house", map[string]interface{}{
				"appartment_type": *filter.AppartmentType,
			})
			return
		}
		apierrors.InternalServerError(c, "Failed to query apartments", err)
		return
	}

	response := make([]ApartmentResponse, 0, len(apartments))
	for i := range apartments {
		response = append(response, mapApartmentToDTO(&apartments[i]))
	}

	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /:id.
// Responds 204 with no body on success and 404 if the id does not exist.
func (h *ApartmentHandler) Delete(c *gin.Context) {
	var uri DeleteApartmentURI
	if err := c.ShouldBindUri(&uri); err != nil {
		apierrors.BadRequest(c, "Apartment id must be a positive integer", map[string]interface{}{
			"id": c.Param("id"),
		})
		return
	}

	if err := h.service.DeleteApartment(c.Request.Context(), uri.ID); err != nil {
		if errors.Is(err, services.ErrApartmentNotFound) {
			apierrors.NotFound(c, "Apartment not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to delete apartment", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (r CreateApartmentRequest) toModel() *models.Apartment {
	return &models.Apartment{
		AppartmentType: models.ApartmentType(*r.AppartmentType),
		NumRooms:       *r.NumRooms,
		FloorArea:      *r.FloorArea,
		Floor:          *r.Floor,
		Improvement:    *r.Improvement,
		Address:        *r.Address,
	}
}

// toFilter converts the bound query into a filter. Gin binds "?floor=" as
// floor 0, so parameters present with an empty value are dropped here.
func (q ListApartmentsQuery) toFilter(c *gin.Context) models.ApartmentFilter {
	var filter models.ApartmentFilter
	if !blankQuery(c, "num_rooms") {
		filter.NumRooms = q.NumRooms
	}
	if !blankQuery(c, "floor_area") {
		filter.FloorArea = q.FloorArea
	}
	if !blankQuery(c, "floor") {
		filter.Floor = q.Floor
	}
	if !blankQuery(c, "appartment_type") && q.AppartmentType != nil {
		t := models.ApartmentType(*q.AppartmentType)
		filter.AppartmentType = &t
	}
	return filter
}

func blankQuery(c *gin.Context, key string) bool {
	value, ok := c.GetQuery(key)
	return ok && value == ""
}

// mapApartmentToDTO converts a listing model into its response DTO.
func mapApartmentToDTO(apartment *models.Apartment) ApartmentResponse {
	return ApartmentResponse{
		ID:             apartment.ID,
		AppartmentType: string(apartment.AppartmentType),
		NumRooms:       apartment.NumRooms,
		FloorArea:      apartment.FloorArea,
		Floor:          apartment.Floor,
		Improvement:    apartment.Improvement,
		Address:        apartment.Address,
	}
}
