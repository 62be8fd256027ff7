// Package main invoice dashboard API.
//
// @title           Invoice Dashboard API
// @version         1.0
// @description     Sign in, and create, edit and delete invoices behind validated forms.
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"invoicedash/app/echoServer"
	authctrl "invoicedash/app/echoServer/controller/auth"
	invoicectrl "invoicedash/app/echoServer/controller/invoice"
	"invoicedash/app/echoServer/routecache"
	"invoicedash/app/echoServer/validation"
	"invoicedash/config"
	authrepo "invoicedash/repository/auth"
	customerrepo "invoicedash/repository/customer"
	invoicerepo "invoicedash/repository/invoice"
	authsvc "invoicedash/service/auth"
	invoicesvc "invoicedash/service/invoice"
	"invoicedash/service/seed"
	"invoicedash/util/database"
	"invoicedash/util/logx"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {
	root := &cobra.Command{
		Use:           "invoicedash",
		Short:         "Invoice dashboard backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap loads config, the logger and the database shared by every command.
func bootstrap(ctx context.Context) (config.App, *slog.Logger, *database.DB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return config.App{}, nil, nil, nil, err
	}

	log, syncLog, err := logx.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return config.App{}, nil, nil, nil, err
	}

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		syncLog()
		return config.App{}, nil, nil, nil, err
	}

	cleanup := func() {
		db.Close()
		syncLog()
	}
	return cfg, log, db, cleanup, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, log, db, cleanup, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			// repos
			ar := authrepo.New(db.Pool)
			ir := invoicerepo.New(db.Pool)
			cr := customerrepo.New(db.Pool)

			// services
			v := validator.New()
			cache := routecache.New(cfg.CacheEntries)
			as := authsvc.New(authsvc.NewCredentials(ar, v, cfg.AuthSecret, time.Duration(cfg.SessionTTLHours)*time.Hour))
			is := invoicesvc.New(ir, cr, cache, log)

			// controllers
			authC := &authctrl.Controller{Svc: as, Log: log, SecureCookie: cfg.IsProd()}
			invoiceC := &invoicectrl.Controller{Svc: is, Log: log}

			// echo
			e := echo.New()
			e.HideBanner = true
			echoServer.RegisterMiddlewares(e, log)
			e.Validator = validation.New(v)

			e.GET("/health", func(c echo.Context) error {
				if err := db.Pool.Ping(c.Request().Context()); err != nil {
					return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "down"})
				}
				return c.JSON(http.StatusOK, map[string]any{
					"status":  "ok",
					"message": "Service is healthy and connected",
				})
			})

			e.GET("/swagger/*", echoSwagger.WrapHandler)

			echoServer.Register(e, echoServer.C{
				Auth:    authC,
				Invoice: invoiceC,
				Cache:   cache,

				AuthSecret: cfg.AuthSecret,
			})

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := e.Shutdown(shutdownCtx); err != nil {
					log.Error("shutdown failed", "err", err)
				}
			}()

			log.Info("starting server", "port", cfg.Port, "env", cfg.Env)
			if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create tables and load placeholder data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, log, db, cleanup, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if file == "" {
				file = cfg.SeedFile
			}
			data, err := seed.Load(file)
			if err != nil {
				return err
			}
			return seed.New(db.Pool, log).Run(ctx, data)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed YAML file (defaults to SEED_FILE, then the built-in placeholder data)")
	return cmd
}
