package http

import (
	"net/http"

	"ludo/internal/config"
	"ludo/internal/shared"

	"github.com/gin-gonic/gin"
)

// GeometryHandler returns the fixed board layout
// @Summary Get board geometry
// @Description Base slots, start cells, turning points, home lanes and safe cells for rendering
// @Tags Config
// @Produce json
// @Success 200 {object} shared.Geometry
// @Router /geometry [get]
func GeometryHandler() gin.HandlerFunc {
	geo := shared.NewGeometry()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, geo)
	}
}

// ConfigHandler returns the rule switches clients need to know about
// @Summary Get server rule settings
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /config [get]
func ConfigHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"stepIntervalMs": cfg.StepInterval.Milliseconds(),
			"lockOnWin":      cfg.LockOnWin,
			"allowUnseated":  cfg.AllowUnseated,
		})
	}
}
