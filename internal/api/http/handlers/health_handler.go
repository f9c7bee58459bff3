package handlers

import (
	"github.com/bwmarrin/discordgo"
	"github.com/gofiber/fiber/v2"

	"github.com/rustytiger/tigerbot/internal/observability"
	"github.com/rustytiger/tigerbot/internal/transcript"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	session     *discordgo.Session
	store       *transcript.Store
	metrics     *observability.Metrics
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, session *discordgo.Session, store *transcript.Store, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		session:     session,
		store:       store,
		metrics:     metrics,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness by checking the gateway connection and the
// transcript store.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	depStatus := fiber.Map{}
	ready := true

	if h.session == nil || h.session.State == nil || h.session.State.User == nil {
		depStatus["gateway"] = "not connected"
		ready = false
	} else {
		depStatus["gateway"] = "ok"
	}

	if err := h.store.Writable(); err != nil {
		depStatus["transcript_store"] = err.Error()
		ready = false
	} else {
		depStatus["transcript_store"] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}

// Metrics dumps the in-memory interaction counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	interactions, errors := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"interactions": interactions,
		"errors":       errors,
	})
}
