package inventory

import (
	"errors"
	"net/url"

	"inventory-sync/core/logger"
	"inventory-sync/feature/inventory/projection"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for inventory reads.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	inv := app.Group("/inventory")
	inv.Get("/", h.HandleGetInventory)
	inv.Get("/groups/:name", h.HandleGetGroup)
	inv.Post("/rebuild", h.HandleRebuild)

	app.Get("/cards/:number", h.HandleGetCard)
	app.Get("/sync/status", h.HandleSyncStatus)
}

// HandleGetInventory returns the whole published projection.
// @Summary Get Inventory
// @Description Get the published projection: every non-empty group with its products and per-store counts.
// @Tags inventory
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} projection.Projection "Projection"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /inventory [get]
func (h *Handler) HandleGetInventory(c *fiber.Ctx) error {
	return c.JSON(h.service.Current())
}

// GroupResponse lists every node sharing a group name.
type GroupResponse struct {
	Name  string             `json:"name"`
	Nodes []*projection.Node `json:"nodes"`
}

// HandleGetGroup returns the subtrees of a group by name.
// @Summary Get Group
// @Description Get every subtree whose group carries the given name.
// @Tags inventory
// @Produce json
// @Security ApiKeyAuth
// @Param name path string true "Group Name (URL encoded)"
// @Success 200 {object} GroupResponse "Matching Groups"
// @Failure 400 {object} map[string]string "Malformed Name"
// @Failure 404 {object} map[string]string "Group Not Found"
// @Router /inventory/groups/{name} [get]
func (h *Handler) HandleGetGroup(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed group name"})
	}

	nodes := h.service.Group(name)
	if len(nodes) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "group not found"})
	}
	return c.JSON(GroupResponse{Name: name, Nodes: nodes})
}

// HandleRebuild rebuilds the projection immediately.
// @Summary Rebuild Projection
// @Description Rebuild the projection from the database and publish it. Concurrent requests share one build.
// @Tags inventory
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{} "Group Count and Build Time"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/rebuild [post]
func (h *Handler) HandleRebuild(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Projection rebuild requested")

	p, err := h.service.Rebuild(c.Context())
	if err != nil {
		l.Error("Projection rebuild failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"groups":   p.Size(),
		"built_at": p.BuiltAt,
	})
}

// HandleGetCard returns the balance of a loyalty card.
// @Summary Get Card
// @Description Get the synchronized balance of an existing loyalty card.
// @Tags cards
// @Produce json
// @Security ApiKeyAuth
// @Param number path string true "Card Number (11 digits)"
// @Success 200 {object} map[string]interface{} "Card Balance"
// @Failure 400 {object} map[string]string "Invalid Card Number"
// @Failure 404 {object} map[string]string "Card Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /cards/{number} [get]
func (h *Handler) HandleGetCard(c *fiber.Ctx) error {
	number := c.Params("number")
	l := logger.WithRayID(h.service.logger, c)

	card, err := h.service.Card(c.Context(), number)
	if errors.Is(err, ErrInvalidCardNumber) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Card lookup failed", zap.String("number", number), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if card == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "card not found"})
	}

	return c.JSON(fiber.Map{
		"number":     card.UID,
		"balance":    card.Balance,
		"updated_at": card.UpdatedAt,
	})
}

// HandleSyncStatus returns the report of the last sync cycle.
// @Summary Get Sync Status
// @Description Get the per-phase report of the last finished sync cycle, or pending before the first one.
// @Tags sync
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} syncer.CycleReport "Cycle Report"
// @Router /sync/status [get]
func (h *Handler) HandleSyncStatus(c *fiber.Ctx) error {
	report := h.service.SyncStatus()
	if report == nil {
		return c.JSON(fiber.Map{"status": "pending"})
	}
	return c.JSON(report)
}
