package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventrentals/internal/models"
	"github.com/joshua-takyi/eventrentals/internal/services"
)

func ListPackages(p *services.PackageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		packages, err := p.ListPackages(c.Request.Context(), queryFlag(c, "featured"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, packages)
	}
}

func GetPackage(p *services.PackageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		pkg, err := p.GetPackage(c.Request.Context(), pathID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, pkg)
	}
}

func CreatePackage(p *services.PackageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pkg models.Package
		if err := c.ShouldBindJSON(&pkg); err != nil {
			badRequest(c, msgInvalidBody)
			return
		}

		created, err := p.CreatePackage(c.Request.Context(), &pkg)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func UpdatePackage(p *services.PackageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var update models.PackageUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			badRequest(c, msgInvalidBody)
			return
		}

		pkg, err := p.UpdatePackage(c.Request.Context(), pathID(c), update)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, pkg)
	}
}

func DeletePackage(p *services.PackageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := p.DeletePackage(c.Request.Context(), pathID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Package deleted successfully"))
	}
}
