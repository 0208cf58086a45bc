package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"codesync/core/loader"
	"codesync/core/logger"
	"codesync/core/middleware/auth"
	"codesync/core/middleware/rayid"
	"codesync/core/server"
	"codesync/feature/codes"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves export, import and name derivation over HTTP until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		zap.ReplaceGlobals(a.logger)

		app := newServer(a.cfg.Server, a.service, a.logger)
		if err := app.loadErr; err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			a.logger.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			errCh <- app.Listen(a.cfg.Server.Address())
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		select {
		case <-c:
			a.logger.Info("Shutting down server...")
			return app.Shutdown()
		case err := <-errCh:
			return err
		}
	},
}

type httpServer struct {
	*fiber.App
	loadErr error
}

// newServer builds the fiber app with middleware and features registered.
func newServer(cfg server.Config, svc *codes.Service, logg *zap.Logger) *httpServer {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every later log line carries it.
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Use(auth.New(auth.Config{ApiKey: cfg.ApiKey, PublicPaths: server.PublicPaths}))

	mgr := loader.NewManager(logg)
	mgr.Register(codes.NewFeature(svc))

	return &httpServer{App: app, loadErr: mgr.LoadAll(app)}
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
