package main

import (
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"

	"github.com/ChocolateLoverRaj/libfprint-cros/config"
	"github.com/ChocolateLoverRaj/libfprint-cros/store"
)

func main() {
	configPath := flag.String("config", "", "TOML configuration file")
	flag.Parse()

	if *configPath != "" {
		if err := config.LoadFile(*configPath); err != nil {
			log.Fatalf("load config: %v", err)
		}
	} else {
		config.LoadDefaultConfig()
	}
	cfg := config.Config

	logOutput, err := openLogOutput(cfg)
	if err != nil {
		log.Fatalf("open logs: %v", err)
	}
	log.SetOutput(logOutput)

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	app := newApp(newServer(st), logOutput)

	log.Println("Server starting on", cfg.Listen)
	log.Fatal(app.Listen(cfg.Listen))
}

func newApp(srv *server, logOutput io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(ErrorResponse{
				Error: err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{Output: logOutput}))
	app.Use(cors.New())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now(),
		})
	})

	// Enrollment and matching
	app.Post("/enroll", srv.enroll)
	app.Post("/verify", srv.verify)
	app.Post("/identify", srv.identify)
	app.Post("/compare", srv.compare)

	// Print management
	app.Get("/prints", srv.listPrints)
	app.Post("/prints", srv.importPrint)
	app.Get("/prints/:id", srv.exportPrint)
	app.Delete("/prints/:id", srv.deletePrint)

	return app
}

func openLogOutput(cfg *config.Daemon) (io.Writer, error) {
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, err
	}
	rl, err := rotatelogs.New(
		filepath.Join(cfg.LogDir, "fprintd.%Y%m%d.log"),
		rotatelogs.WithLinkName(filepath.Join(cfg.LogDir, "fprintd.log")),
		rotatelogs.WithMaxAge(time.Duration(cfg.LogMaxAgeDays)*24*time.Hour),
		rotatelogs.WithRotationTime(time.Duration(cfg.LogRotateHours)*time.Hour),
	)
	if err != nil {
		return nil, err
	}
	return io.MultiWriter(os.Stdout, rl), nil
}
