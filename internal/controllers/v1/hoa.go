package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolva-app/backend/internal/auth"
	"github.com/tolva-app/backend/internal/httputil"
	"github.com/tolva-app/backend/internal/models"
)

// HoaSummaryListResponse is the API response for a list of HOA summaries.
type HoaSummaryListResponse struct {
	Data []models.HoaSummary `json:"data"`
}

// RegisterHoaSummaryRoutes registers the routes for HOA summaries with
// the RouterGroup that is passed.
func RegisterHoaSummaryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetHoaSummaries)
}

// GetHoaSummaries returns the authenticated user's HOA summaries, newest
// period first.
func GetHoaSummaries(c *gin.Context) {
	var summaries []models.HoaSummary
	err := models.DB.
		Where(&models.HoaSummary{UserID: auth.UserID(c)}).
		Order("period_key desc").
		Find(&summaries).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, HoaSummaryListResponse{Data: summaries})
}
