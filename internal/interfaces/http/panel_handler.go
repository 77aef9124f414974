package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
)

// PanelHandler superficie administrativa protegida por el Guard
// (roles admin_tienda, vendedor, superadmin según la tabla de reglas).
type PanelHandler struct {
	orders *usecase.OrderUseCase
}

// NewPanelHandler construye el handler del panel.
func NewPanelHandler(orders *usecase.OrderUseCase) *PanelHandler {
	return &PanelHandler{orders: orders}
}

// Dashboard godoc
// @Summary      Resumen del panel administrativo
// @Tags         panel
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /panel/dashboard [get]
func (h *PanelHandler) Dashboard(c *fiber.Ctx) error {
	recent, err := h.orders.ListRecent(10)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"user":          GetUserName(c),
		"role":          GetRole(c),
		"recent_orders": recent,
	})
}
