package handler

import (
	"time"

	"elena-license-engine/internal/database"
	"elena-license-engine/internal/model"

	"github.com/gofiber/fiber/v2"
)

// HandleRegistryStatistics aggregates the registry and the activation
// audit trail into the admin read model.
func HandleRegistryStatistics(c *fiber.Ctx) error {
	licenses := engine.Licenses()
	now := time.Now()

	stats := model.RegistryStatistics{
		TotalLicenses:    int64(len(licenses)),
		LicensesByStatus: make(map[string]int),
	}

	for i := range licenses {
		l := &licenses[i]
		stats.LicensesByStatus[l.Status]++
		if l.MachineID != nil {
			stats.BoundLicenses++
		} else {
			stats.UnboundLicenses++
		}
		if l.ExpiryDate.Before(now) {
			stats.ExpiredLicenses++
		} else if l.ExpiryDate.Before(now.AddDate(0, 0, 30)) {
			stats.ExpiringLicenses++
		}
	}

	db := database.DB

	if err := db.Model(&model.ActivationLog{}).
		Where("action = ?", "activate").
		Count(&stats.TotalActivations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to count activations",
		})
	}

	if err := db.Model(&model.ActivationLog{}).
		Where("action = ? AND result <> ?", "activate", "success").
		Count(&stats.FailedActivations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to count failed activations",
		})
	}

	// Last 14 days of activation attempts, oldest first.
	var logs []model.ActivationLog
	since := now.AddDate(0, 0, -14)
	if err := db.Where("action = ? AND timestamp >= ?", "activate", since).
		Order("timestamp ASC").Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load activation history",
		})
	}

	byDay := make(map[string]*model.DailyActivations)
	var order []string
	for i := range logs {
		day := logs[i].Timestamp.Format("2006-01-02")
		entry, ok := byDay[day]
		if !ok {
			date, _ := time.Parse("2006-01-02", day)
			entry = &model.DailyActivations{Date: date}
			byDay[day] = entry
			order = append(order, day)
		}
		entry.Attempts++
		if logs[i].Result != "success" {
			entry.Failures++
		}
	}
	for _, day := range order {
		stats.DailyActivations = append(stats.DailyActivations, *byDay[day])
	}

	return c.JSON(stats)
}
