package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/google/uuid"

	"matamazon/internal/archive"
	"matamazon/internal/config"
	"matamazon/internal/http/handlers"
	applog "matamazon/internal/log"
	"matamazon/internal/script"
	"matamazon/internal/snapshot"
	"matamazon/internal/store"
)

func main() {
	var (
		logPath    = flag.String("log", "", "command log to replay (required)")
		inPath     = flag.String("in", "", "snapshot to load before the replay")
		outPath    = flag.String("out", "", "write the system export here after the replay")
		exportPath = flag.String("export", "", "write the orders-by-city JSON here after the replay")
		serve      = flag.Bool("serve", false, "serve the finished store over HTTP")
	)
	flag.Parse()
	if *logPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	applog.SetRun(uuid.NewString())

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stderr, f)
			log.SetOutput(mw)
		}
	}

	sys := loadInitial(*inPath)

	src, err := os.Open(*logPath)
	if err != nil {
		applog.Error(nil, "log.open", err, map[string]any{"path": *logPath})
		log.Fatal("could not open the command log")
	}
	runner := script.New(sys, os.Stdout)
	runErr := runner.Run(src)
	_ = src.Close()
	if runErr != nil {
		// One generic failure indication; the cause stays in the log.
		applog.Error(nil, "replay.fail", runErr, map[string]any{"path": *logPath})
		log.Fatal("replay failed")
	}
	applog.Info(nil, "replay.done", map[string]any{
		"customers": len(sys.Customers()), "suppliers": len(sys.Suppliers()),
		"products": len(sys.Products()), "orders": len(sys.Orders()),
	})

	if *outPath != "" {
		writeExport(sys, *outPath)
	}
	if *exportPath != "" {
		writeOrders(sys, *exportPath)
	}
	if cfg.ArchiveDSN != "" {
		writeArchive(sys, cfg.ArchiveDSN)
	}

	if *serve {
		log.Fatal(newApp(sys).Listen(":" + cfg.Port))
	}
}

func loadInitial(path string) *store.System {
	if path == "" {
		return store.New()
	}
	f, err := os.Open(path)
	if err != nil {
		applog.Error(nil, "snapshot.open", err, map[string]any{"path": path})
		log.Fatal("could not open the input snapshot")
	}
	defer f.Close()
	sys, err := snapshot.Load(f)
	if err != nil {
		applog.Error(nil, "snapshot.load", err, map[string]any{"path": path})
		log.Fatal("could not load the input snapshot")
	}
	return sys
}

func writeExport(sys *store.System, path string) {
	f, err := os.Create(path)
	if err != nil {
		applog.Error(nil, "export.open", err, map[string]any{"path": path})
		log.Fatal("could not write the system export")
	}
	defer f.Close()
	if err := sys.ExportSnapshot(f); err != nil {
		applog.Error(nil, "export.write", err, map[string]any{"path": path})
		log.Fatal("could not write the system export")
	}
}

func writeOrders(sys *store.System, path string) {
	f, err := os.Create(path)
	if err != nil {
		applog.Error(nil, "orders.open", err, map[string]any{"path": path})
		log.Fatal("could not write the order summary")
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(sys.OrdersByCity()); err != nil {
		applog.Error(nil, "orders.write", err, map[string]any{"path": path})
		log.Fatal("could not write the order summary")
	}
}

func writeArchive(sys *store.System, dsn string) {
	db, err := archive.Open(dsn)
	if err != nil {
		applog.Error(nil, "archive.open", err, map[string]any{"dsn": dsn})
		log.Fatal("could not open the archive database")
	}
	defer db.Close()
	if err := archive.Save(db, sys); err != nil {
		applog.Error(nil, "archive.save", err, nil)
		log.Fatal("could not write the archive database")
	}
	applog.Info(nil, "archive.done", map[string]any{"dsn": dsn})
}

func newApp(sys *store.System) *fiber.App {
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(sys)

	app.Get("/", deps.SystemHandler.Status)

	api := app.Group("/api/v1")
	api.Get("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.SearchHandler.Search)
	api.Get("/snapshot", deps.SystemHandler.Snapshot)
	api.Get("/orders-by-city", deps.SystemHandler.OrdersByCity)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	return app
}
