package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/jewel-storefront/internal/app/service"
	apperrors "github.com/ikkim/jewel-storefront/internal/errors"
	"github.com/ikkim/jewel-storefront/internal/middleware"
	"github.com/ikkim/jewel-storefront/internal/report"
)

type AdminController struct {
	dashboardService service.DashboardService
}

func NewAdminController(dashboardService service.DashboardService) *AdminController {
	return &AdminController{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the dashboard stat cards and tables
// GET /api/v1/admin/dashboard
func (ctrl *AdminController) GetDashboard(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	stats, err := ctrl.dashboardService.Stats(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err, "report")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// DownloadOrdersReport streams the orders workbook
// GET /api/v1/admin/reports/orders
func (ctrl *AdminController) DownloadOrdersReport(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	data, err := ctrl.dashboardService.OrdersWorkbook(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err, "report")
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, report.ContentType, data)
}

// UploadOrdersReport stores the workbook in the bucket and returns a link
// POST /api/v1/admin/reports/orders
func (ctrl *AdminController) UploadOrdersReport(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	uploaded, err := ctrl.dashboardService.ExportOrders(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrReportUploadDisabled) || c.Request.Context().Err() != nil {
			respondServiceError(c, err, "report")
			return
		}
		log.Error("Failed to upload orders report", err)
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.ReportUploadFailed, "Failed to upload report")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"report": uploaded,
	})
}
