package handler

import (
	"errors"
	"log"

	"elena-license-engine/internal/model"
	"elena-license-engine/internal/service"
	"elena-license-engine/internal/util"

	"github.com/gofiber/fiber/v2"
)

var engine *service.Engine

// Init wires the handler layer to the activation engine.
func Init(e *service.Engine) {
	engine = e
}

func statusPayload() fiber.Map {
	cfg := engine.Config()
	key := ""
	if cfg.LicenseKey != "" {
		key = service.FormatKeyDisplay(cfg.LicenseKey)
	}
	return fiber.Map{
		"isActive":      cfg.IsActive,
		"companyName":   cfg.CompanyName,
		"supervisor":    cfg.Supervisor,
		"ifu":           cfg.IFU,
		"machineId":     cfg.MachineID,
		"licenseKey":    key,
		"expiryDate":    cfg.ExpiryDate,
		"daysRemaining": engine.DaysRemaining(),
		"isMaster":      engine.IsMasterSession(),
	}
}

func audit(c *fiber.Ctx, key, action, result string) {
	err := service.LogActivation(service.NormalizeKey(key), action, result, engine.MachineID(), c.IP(), c.Get("User-Agent"))
	if err != nil {
		log.Printf("audit: failed to record %s: %v", action, err)
	}
}

// HandleActivate consumes a raw key and unlocks the application when
// it validates against the registry and this machine's identity.
func HandleActivate(c *fiber.Ctx) error {
	input := new(model.ActivateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	if err := engine.Activate(input.Key); err != nil {
		audit(c, input.Key, "activate", err.Error())
		status := fiber.StatusBadRequest
		switch {
		case errors.Is(err, service.ErrInvalidKey):
			status = fiber.StatusNotFound
		case errors.Is(err, service.ErrMachineMismatch):
			status = fiber.StatusForbidden
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	audit(c, input.Key, "activate", "success")

	if license := engine.FindLicense(input.Key); license != nil && sheetSync != nil {
		go sheetSync.SyncLicense(license)
	}

	token, err := util.GenerateToken(engine.MachineID(), engine.IsMasterSession())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to issue session token",
		})
	}

	payload := statusPayload()
	payload["token"] = token
	return c.JSON(payload)
}

// HandleLock returns the application to the Locked state. The key and
// the registry binding survive, only isActive flips.
func HandleLock(c *fiber.Ctx) error {
	key := engine.Config().LicenseKey
	engine.Lock()
	audit(c, key, "lock", "success")
	return c.JSON(statusPayload())
}

// HandleStatus exposes the public activation state consumed by the
// surrounding application.
func HandleStatus(c *fiber.Ctx) error {
	return c.JSON(statusPayload())
}

// HandleUpdateSettings updates the company metadata. The activation
// fields are not reachable from here.
func HandleUpdateSettings(c *fiber.Ctx) error {
	input := new(model.SettingsInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	engine.UpdateSettings(*input)
	return c.JSON(statusPayload())
}
