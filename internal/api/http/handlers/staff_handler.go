package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coffee-passport/internal/api/dto"
	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/service"
)

// StaffHandler exposes admin allow-list endpoints.
type StaffHandler struct {
	admin *service.AdminService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(admin *service.AdminService) *StaffHandler {
	return &StaffHandler{admin: admin}
}

// Create handles POST /admin/staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req dto.StaffCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.PhoneNumber == "" || req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "phone_number and name required")
	}

	staff, err := h.admin.AddStaff(c.UserContext(), req.PhoneNumber, req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": staffResponse(staff)})
}

// List handles GET /admin/staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	list, err := h.admin.ListStaff(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.StaffResponse, 0, len(list))
	for i := range list {
		resp = append(resp, staffResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Update handles PUT /admin/staff/:phone.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	var req dto.StaffUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	staff, err := h.admin.UpdateStaff(c.UserContext(), c.Params("phone"), req.Name, req.Authorized)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(staff)})
}

// Delete handles DELETE /admin/staff/:phone.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	if err := h.admin.RemoveStaff(c.UserContext(), c.Params("phone")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "removed"}})
}

func staffResponse(staff *domain.StaffMember) dto.StaffResponse {
	return dto.StaffResponse{
		PhoneNumber:  staff.PhoneNumber,
		Name:         staff.Name,
		Authorized:   staff.Authorized,
		AuthorizedAt: staff.AuthorizedAt,
	}
}
