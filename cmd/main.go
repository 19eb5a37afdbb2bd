package main

import (
	"elena-license-engine/internal/database"
	"elena-license-engine/internal/handler"
	"elena-license-engine/internal/middleware"
	"elena-license-engine/internal/service"
	"elena-license-engine/internal/store"
	"elena-license-engine/internal/util"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/kelseyhightower/envconfig"
)

type appConfig struct {
	Addr      string `envconfig:"ADDR" default:":8080"`
	DataDir   string `envconfig:"DATA_DIR" default:"data"`
	JWTSecret string `envconfig:"JWT_SECRET" default:"elena-dev-secret"`

	SheetSyncEnabled bool   `envconfig:"SHEET_SYNC_ENABLED" default:"false"`
	CredentialPath   string `envconfig:"SHEET_CREDENTIALS"`
	SpreadsheetID    string `envconfig:"SHEET_SPREADSHEET_ID"`
	SheetName        string `envconfig:"SHEET_NAME" default:"Licences"`
}

func main() {
	var cfg appConfig
	if err := envconfig.Process("elena", &cfg); err != nil {
		log.Fatal("failed to read configuration:", err)
	}

	database.InitDB(cfg.DataDir)
	util.InitJWT(cfg.JWTSecret)

	kv := store.NewSQLiteKV(database.DB)
	machineID := service.GetOrCreateMachineID(kv)
	registry := service.NewRegistry(kv)
	engine := service.NewEngine(kv, registry, machineID)
	handler.Init(engine)

	if _, err := handler.InitSheetSync(cfg.SheetSyncEnabled, cfg.CredentialPath, cfg.SpreadsheetID, cfg.SheetName); err != nil {
		log.Printf("sheet sync disabled: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	// Activation state machine, reachable while Locked
	activation := api.Group("/activation")
	activation.Post("/activate", handler.HandleActivate)
	activation.Post("/lock", handler.HandleLock)
	activation.Get("/status", handler.HandleStatus)

	api.Put("/settings", handler.HandleUpdateSettings)

	// Master console: requires a session token carrying the master
	// claim and a live master session in the engine
	licenses := api.Group("/licenses")
	licenses.Use(middleware.Auth(), middleware.MasterOnly(engine))
	licenses.Get("/", handler.HandleGetAllLicenses)
	licenses.Post("/generate", handler.HandleGenerateKey)
	licenses.Get("/statistics", handler.HandleRegistryStatistics)
	licenses.Get("/logs", handler.HandleActivationLogs)
	licenses.Get("/:key", handler.HandleGetLicense)
	licenses.Delete("/:key", handler.HandleRevokeLicense)

	log.Fatal(app.Listen(cfg.Addr))
}
