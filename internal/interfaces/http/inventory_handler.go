package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcordero/bodega-api/internal/application/dto"
	"github.com/jcordero/bodega-api/internal/application/inventory"
	"github.com/jcordero/bodega-api/internal/application/usecase"
)

// InventoryHandler maneja movimientos, ajustes y la vista de stock bajo.
type InventoryHandler struct {
	register *inventory.RegisterMovementUseCase
	adjust   *inventory.AdjustStockUseCase
	products *usecase.ProductUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	register *inventory.RegisterMovementUseCase,
	adjust *inventory.AdjustStockUseCase,
	products *usecase.ProductUseCase,
) *InventoryHandler {
	return &InventoryHandler{register: register, adjust: adjust, products: products}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  type admite entrada o salida; una salida mayor al stock disponible responde 409 con las cantidades.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type, quantity, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.register.RegisterMovement(c.Context(), inventory.MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		CreatedBy: GetActor(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ID:        mov.ID,
		ProductID: mov.ProductID,
		Type:      mov.Type,
		Quantity:  mov.Quantity,
		Reason:    mov.Reason,
		Date:      mov.Date,
		CreatedBy: mov.CreatedBy,
	})
}

// AdjustStock godoc
// @Summary      Ajustar stock a un valor objetivo
// @Description  Expresa la diferencia como un movimiento entrada/salida. Si el objetivo coincide con el stock actual no se crea movimiento.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, target_quantity, reason"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.adjust.AdjustTo(c.Context(), in.ProductID, in.Target, in.Reason, GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	if mov == nil {
		// No-op definido: el stock ya estaba en el objetivo.
		return c.JSON(fiber.Map{"message": "el stock no ha cambiado"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ID:        mov.ID,
		ProductID: mov.ProductID,
		Type:      mov.Type,
		Quantity:  mov.Quantity,
		Reason:    mov.Reason,
		Date:      mov.Date,
		CreatedBy: mov.CreatedBy,
	})
}

// ListLowStock godoc
// @Summary      Productos con stock bajo
// @Description  Productos con stock < stock mínimo, los más agotados primero. Se deriva en cada llamada, sin caché.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	items, err := h.products.ListLowStock()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// LowStockReport godoc
// @Summary      Reporte PDF de stock bajo
// @Tags         inventory
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/inventory/low-stock/pdf [get]
func (h *InventoryHandler) LowStockReport(c *fiber.Ctx) error {
	data, err := h.products.LowStockReportPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="stock-bajo.pdf"`)
	return c.Send(data)
}
