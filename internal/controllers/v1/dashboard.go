package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolva-app/backend/internal/auth"
	"github.com/tolva-app/backend/internal/httputil"
	"github.com/tolva-app/backend/internal/models"
	"github.com/tolva-app/backend/internal/types"
)

// DashboardResponse is the API response for the monthly dashboard.
type DashboardResponse struct {
	Data models.Dashboard `json:"data"`
}

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetDashboard)
}

// GetDashboard returns the authenticated user's spend per category and
// income total for the month in the query string.
func GetDashboard(c *gin.Context) {
	month, err := types.ParseMonth(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errMonthNotSetInQuery.Error()})
		return
	}

	dashboard, err := models.DashboardFor(auth.UserID(c), month)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: dashboard})
}
