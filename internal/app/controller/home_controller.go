package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/jewel-storefront/internal/app/service"
)

type HomeController struct {
	homeService service.HomeService
}

func NewHomeController(homeService service.HomeService) *HomeController {
	return &HomeController{homeService: homeService}
}

// GetHome returns the landing page content
// GET /api/v1/home
func (ctrl *HomeController) GetHome(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.homeService.Home())
}
