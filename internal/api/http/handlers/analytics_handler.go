package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coffee-passport/internal/api/dto"
	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/repository"
	"github.com/spec-kit/coffee-passport/internal/service"
)

// AnalyticsHandler exposes dashboard aggregates and the audit log.
type AnalyticsHandler struct {
	admin *service.AdminService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(admin *service.AdminService) *AnalyticsHandler {
	return &AnalyticsHandler{admin: admin}
}

// Stats handles GET /admin/stats.
func (h *AnalyticsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.admin.GetStats(c.UserContext(), time.Now())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StatsResponse{
		TotalCustomers:  stats.TotalCustomers,
		ActiveCustomers: stats.ActiveCustomers,
		TotalStamps:     stats.TotalStamps,
	}})
}

// Audit handles GET /admin/audit.
func (h *AnalyticsHandler) Audit(c *fiber.Ctx) error {
	entries, err := h.admin.ListAudit(c.UserContext(), parseAuditFilter(c))
	if err != nil {
		return err
	}
	resp := make([]dto.AuditEntryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, auditEntryResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

func parseAuditFilter(c *fiber.Ctx) repository.AuditFilter {
	var filter repository.AuditFilter
	if actor := c.Query("actor_phone"); actor != "" {
		filter.ActorPhone = &actor
	}
	if target := c.Query("customer_id"); target != "" {
		filter.TargetCustomerID = &target
	}
	if actionStr := c.Query("action"); actionStr != "" {
		action := domain.AuditAction(actionStr)
		filter.Action = &action
	}
	if resultStr := c.Query("result"); resultStr != "" {
		result := domain.AuditResult(resultStr)
		filter.Result = &result
	}
	page := parseIntQuery(c, "page", 1)
	pageSize := parseIntQuery(c, "page_size", 100)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

func auditEntryResponse(entry *domain.AuditEntry) dto.AuditEntryResponse {
	return dto.AuditEntryResponse{
		ID:               entry.ID,
		ActorPhone:       entry.ActorPhone,
		Action:           string(entry.Action),
		TargetCustomerID: entry.TargetCustomerID,
		Result:           string(entry.Result),
		Reason:           entry.Reason,
		CreatedAt:        entry.CreatedAt,
	}
}
