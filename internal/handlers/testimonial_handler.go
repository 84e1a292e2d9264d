package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventrentals/internal/models"
	"github.com/joshua-takyi/eventrentals/internal/services"
)

func ListTestimonials(t *services.TestimonialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		testimonials, err := t.ListTestimonials(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, testimonials)
	}
}

func CreateTestimonial(t *services.TestimonialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var testimonial models.Testimonial
		if err := c.ShouldBindJSON(&testimonial); err != nil {
			badRequest(c, msgInvalidBody)
			return
		}

		created, err := t.CreateTestimonial(c.Request.Context(), &testimonial)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func DeleteTestimonial(t *services.TestimonialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := t.DeleteTestimonial(c.Request.Context(), pathID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Testimonial deleted successfully"))
	}
}
