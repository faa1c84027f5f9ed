package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
)

// LocationHandler ubicaciones: lectura pública, alta solo ADMIN.
type LocationHandler struct {
	uc *usecase.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// List godoc
// @Summary      Listar ubicaciones
// @Tags         locations
// @Produce      json
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear ubicación
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "Nombre"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ProductLineHandler líneas de producto.
type ProductLineHandler struct {
	uc *usecase.ProductLineUseCase
}

// NewProductLineHandler construye el handler.
func NewProductLineHandler(uc *usecase.ProductLineUseCase) *ProductLineHandler {
	return &ProductLineHandler{uc: uc}
}

// List godoc
// @Summary      Listar líneas de producto
// @Tags         product-lines
// @Produce      json
// @Success      200  {array}  dto.ProductLineResponse
// @Router       /api/product-lines [get]
func (h *ProductLineHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear línea de producto
// @Tags         product-lines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductLineRequest  true  "Nombre"
// @Success      201   {object}  dto.ProductLineResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/product-lines [post]
func (h *ProductLineHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductLineRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Renombrar línea de producto
// @Tags         product-lines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la línea"
// @Param        body  body  dto.ProductLineRequest  true  "Nombre"
// @Success      200   {object}  dto.ProductLineResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/product-lines/{id} [patch]
func (h *ProductLineHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.ProductLineRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar línea de producto
// @Description  Falla con 409 si la línea tiene productos.
// @Tags         product-lines
// @Security     Bearer
// @Param        id   path  int  true  "ID de la línea"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/product-lines/{id} [delete]
func (h *ProductLineHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
