package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventrentals/internal/models"
	"github.com/joshua-takyi/eventrentals/internal/services"
)

// ListItems supports ?featured=true and ?category=<name>.
func ListItems(i *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := services.ItemFilter{
			FeaturedOnly: queryFlag(c, "featured"),
			Category:     c.Query("category"),
		}
		items, err := i.ListItems(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func GetItem(i *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := i.GetItem(c.Request.Context(), pathID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func CreateItem(i *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.Item
		if err := c.ShouldBindJSON(&item); err != nil {
			badRequest(c, msgInvalidBody)
			return
		}

		created, err := i.CreateItem(c.Request.Context(), &item)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func UpdateItem(i *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var update models.ItemUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			badRequest(c, msgInvalidBody)
			return
		}

		item, err := i.UpdateItem(c.Request.Context(), pathID(c), update)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func DeleteItem(i *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := i.DeleteItem(c.Request.Context(), pathID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Item deleted successfully"))
	}
}
