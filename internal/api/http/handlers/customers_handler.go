package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coffee-passport/internal/api/dto"
	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/service"
)

// CustomersHandler exposes admin customer endpoints.
type CustomersHandler struct {
	admin *service.AdminService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(admin *service.AdminService) *CustomersHandler {
	return &CustomersHandler{admin: admin}
}

// List handles GET /admin/customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	customers, err := h.admin.ListCustomers(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		resp = append(resp, customerResponse(&customers[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /admin/customers/:code.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	customer, err := h.admin.GetCustomer(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// Update handles PUT /admin/customers/:code.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	var req dto.CustomerUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name required")
	}

	customer, err := h.admin.UpdateCustomerName(c.UserContext(), c.Params("code"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// Delete handles DELETE /admin/customers/:code.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	if err := h.admin.DeleteCustomer(c.UserContext(), c.Params("code")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

func customerResponse(customer *domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		CustomerCode:   customer.CustomerCode,
		PhoneNumber:    customer.PhoneNumber,
		Name:           customer.Name,
		Stamps:         customer.Stamps,
		Rewards:        customer.Rewards,
		LastStampAt:    customer.LastStampAt,
		ResetDate:      customer.ResetDate,
		Active:         customer.Active,
		CreatedAt:      customer.CreatedAt,
		LastActivityAt: customer.LastActivityAt,
	}
}
