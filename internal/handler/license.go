package handler

import (
	"errors"

	"elena-license-engine/internal/model"
	"elena-license-engine/internal/service"

	"github.com/gofiber/fiber/v2"
)

var sheetSync *service.SheetSyncService

func InitSheetSync(enableSync bool, credentialPath, spreadsheetID, sheetName string) (*service.SheetSyncService, error) {
	var err error
	sheetSync, err = service.NewSheetSyncService(enableSync, credentialPath, spreadsheetID, sheetName)
	return sheetSync, err
}

// HandleGetAllLicenses returns the full registry for the admin
// console, keys in display form alongside the stored records.
func HandleGetAllLicenses(c *fiber.Ctx) error {
	licenses := engine.Licenses()

	out := make([]fiber.Map, 0, len(licenses))
	for i := range licenses {
		out = append(out, fiber.Map{
			"license":    licenses[i],
			"displayKey": service.FormatKeyDisplay(licenses[i].Key),
		})
	}

	return c.JSON(fiber.Map{
		"licenses": out,
	})
}

// HandleGenerateKey mints a subscription key for a client. The
// display-form key is returned exactly once; conveying it to the
// client is the caller's problem.
func HandleGenerateKey(c *fiber.Ctx) error {
	input := new(model.GenerateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	if input.DurationDays <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "duration must be at least one day",
		})
	}

	key, err := engine.GenerateKey(input.ClientID, input.DurationDays)
	if err != nil {
		audit(c, "", "generate", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	audit(c, key, "generate", "success")

	if license := engine.FindLicense(key); license != nil && sheetSync != nil {
		go sheetSync.SyncLicense(license)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"key": key,
	})
}

// HandleGetLicense returns one registry record.
func HandleGetLicense(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "license key is required",
		})
	}

	license := engine.FindLicense(key)
	if license == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "license not found",
		})
	}

	return c.JSON(fiber.Map{
		"license":    license,
		"displayKey": service.FormatKeyDisplay(license.Key),
	})
}

// HandleRevokeLicense permanently removes a license. The master key is
// protected and the attempt is rejected.
func HandleRevokeLicense(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "license key is required",
		})
	}

	if err := engine.RevokeLicense(key); err != nil {
		audit(c, key, "revoke", err.Error())
		status := fiber.StatusNotFound
		if errors.Is(err, service.ErrProtectedKey) {
			status = fiber.StatusForbidden
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	audit(c, key, "revoke", "success")

	if sheetSync != nil {
		go sheetSync.SyncRegistry(engine.Licenses())
	}

	return c.JSON(fiber.Map{
		"message": "license revoked",
	})
}
