package handler

import (
	"strconv"

	"elena-license-engine/internal/service"

	"github.com/gofiber/fiber/v2"
)

// HandleActivationLogs lists the audit trail, newest first, optionally
// filtered to one license key.
func HandleActivationLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "10"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	key := c.Query("key")

	var err error
	var logs interface{}
	var total int64
	if key != "" {
		logs, total, err = service.GetLicenseActivationLogs(service.NormalizeKey(key), page, pageSize)
	} else {
		logs, total, err = service.GetActivationLogs(page, pageSize)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load activation logs",
		})
	}

	return c.JSON(fiber.Map{
		"logs":  logs,
		"total": total,
		"page":  page,
		"size":  pageSize,
	})
}
