package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bodega-api/internal/application/orders"
)

type sweepRunner interface {
	RunOnce(ctx context.Context) (orders.SweepResult, error)
}

// SweeperHandler ejecución manual del barrido de finalización (solo admin).
type SweeperHandler struct {
	sweeper sweepRunner
	log     zerolog.Logger
}

// NewSweeperHandler construye el handler.
func NewSweeperHandler(sweeper sweepRunner, log zerolog.Logger) *SweeperHandler {
	return &SweeperHandler{sweeper: sweeper, log: log}
}

// Run godoc
// @Summary      Ejecutar barrido de finalización
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/sweeps [post]
func (h *SweeperHandler) Run(c *fiber.Ctx) error {
	res, err := h.sweeper.RunOnce(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"scanned":   res.Scanned,
		"completed": res.Completed,
		"skipped":   res.Skipped,
		"failed":    res.Failed,
	})
}
