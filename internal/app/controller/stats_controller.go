package controller

import (
	"net/http"
	"strconv"

	"github.com/AvancyBrasil/API-Find/internal/app/service"
	"github.com/gin-gonic/gin"
)

type StatsController struct {
	statsService service.StatsService
}

func NewStatsController(statsService service.StatsService) *StatsController {
	return &StatsController{statsService: statsService}
}

// Total answers with the account count as plain text
// GET /usuariosTotal
func (ctrl *StatsController) Total(c *gin.Context) {
	total, err := ctrl.statsService.TotalUsuarios(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "contar usuarios")
		return
	}
	c.String(http.StatusOK, strconv.FormatInt(total, 10))
}

// Status
// GET /usuariosStatus
func (ctrl *StatsController) Status(c *gin.Context) {
	count, err := ctrl.statsService.ContagemPorStatus()
	if err != nil {
		respondServiceError(c, err, "contar usuarios por status")
		return
	}
	c.JSON(http.StatusOK, count)
}
