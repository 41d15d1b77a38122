package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/adoptease-api/internal/application/dto"
	"github.com/jhoicas/adoptease-api/internal/application/usecase"
)

// DogHandler endpoints de perros para las tres vistas (admin, expert, customer).
type DogHandler struct {
	uc *usecase.DogUseCase
}

// NewDogHandler construye el handler.
func NewDogHandler(uc *usecase.DogUseCase) *DogHandler {
	return &DogHandler{uc: uc}
}

func dogID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

// ListAdmin godoc
// @Summary      Listar perros (vista admin, con timestamps)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.AdminDogListResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/admin/dogs [get]
func (h *DogHandler) ListAdmin(c *fiber.Ctx) error {
	out, err := h.uc.ListAdmin(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear perro
// @Description  name, breed, color, age, height y weight son obligatorios; los errores se devuelven por campo.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDogRequest  true  "datos del perro"
// @Success      201   {object}  dto.DogMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/dogs [post]
func (h *DogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDogRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AdminUpdate godoc
// @Summary      Actualizar perro (parcial)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID del perro"
// @Param        body  body  dto.UpdateDogRequest  true  "campos a modificar"
// @Success      200   {object}  dto.DogMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/dogs/{id} [put]
func (h *DogHandler) AdminUpdate(c *fiber.Ctx) error {
	id, ok := dogID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_ID", "id inválido")
	}
	var in dto.UpdateDogRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AdminUpdate(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar perro
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del perro"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/dogs/{id} [delete]
func (h *DogHandler) Delete(c *fiber.Ctx) error {
	id, ok := dogID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_ID", "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Perro eliminado correctamente"})
}

// ListExpert godoc
// @Summary      Listar perros (vista experto)
// @Tags         expert
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.ExpertDogListResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/expert/dogs [get]
func (h *DogHandler) ListExpert(c *fiber.Ctx) error {
	out, err := h.uc.ListExpert(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExpertUpdate godoc
// @Summary      Actualizar datos médicos y físicos
// @Description  Solo vaccines, diseases, medical_history, personality, color, height y weight.
// @Tags         expert
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "ID del perro"
// @Param        body  body  dto.ExpertUpdateDogRequest  true  "campos a modificar"
// @Success      200   {object}  dto.DogMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expert/dogs/{id} [put]
func (h *DogHandler) ExpertUpdate(c *fiber.Ctx) error {
	id, ok := dogID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_ID", "id inválido")
	}
	var in dto.ExpertUpdateDogRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ExpertUpdate(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListCustomer godoc
// @Summary      Listar perros disponibles
// @Tags         customer
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.CustomerDogListResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/customer/dogs [get]
func (h *DogHandler) ListCustomer(c *fiber.Ctx) error {
	out, err := h.uc.ListCustomer(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
