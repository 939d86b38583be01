package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-dashboard-backend/internal/middleware"
	"invoice-dashboard-backend/internal/services/dashboard"
)

type DashboardHandler struct {
	views *dashboard.Service
}

func NewDashboardHandler(views *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{views: views}
}

// Overview GET /dashboard
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.views.Overview(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Customers GET /dashboard/customers?query=
func (h *DashboardHandler) Customers(c *gin.Context) {
	rows, err := h.views.FilteredCustomers(c.Request.Context(), c.Query("query"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": rows, "query": c.Query("query")})
}
