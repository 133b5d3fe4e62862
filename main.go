package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lifecal/src-server/backend"
	"lifecal/src-server/calendar"
	"lifecal/src-server/metric"
	"lifecal/src-server/model"
	"lifecal/src-server/route"
	"lifecal/src-server/scheduler"
	syncctrl "lifecal/src-server/sync"
	"lifecal/src-server/utils"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	as := utils.NewAppState()

	// pick the event collaborator: hosted backend over HTTP, or the embedded
	// sqlite backend when no BACKEND_URL is configured
	var eventAPI syncctrl.EventAPI
	switch backendUrl := as.Config.GetBackendUrl(); backendUrl {
	case "":
		if err := model.CreateSchema(as.BunDB); err != nil {
			slog.Error("can't create database schema", "error", err)
			os.Exit(1)
		}
		eventAPI = backend.NewLocal(as.BunDB).WithMetricChans(as.MetricChans)
		slog.Info("using embedded sqlite backend", "path", as.Config.GetDatabasePath())
	default:
		eventAPI = backend.NewHTTPClient(backendUrl)
		slog.Info("using hosted backend", "url", backendUrl)
	}

	store := calendar.NewEventStore()
	session := syncctrl.Session{Username: as.Config.GetUsername()}
	ctrl := syncctrl.NewController(session, eventAPI, store).
		WithExpandLatencyChan(as.MetricChans.ExpansionLatency)
	nav := calendar.NewNavigator(time.Now().In(as.Config.GetLocation()))

	// first fetch-and-expand before serving queries
	func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		ctrl.Refresh(ctx)
	}()

	metric.Init(as, store)
	go scheduler.Refresh(as, ctrl)

	// http server
	go func() {
		muxer := http.NewServeMux()
		muxer.Handle("GET /metrics", promhttp.Handler())
		route.Calendar(muxer, as, ctrl, nav)
		if err := http.ListenAndServe(":"+as.Config.GetPort(), muxer); err != nil {
			slog.Error("cannot start HTTP server", "error", err)
			as.AppCloseSignalChan <- syscall.SIGTERM
		}
	}()

	slog.Info("app is now running, press Ctrl+C to exit", "port", as.Config.GetPort())

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan
	as.GracefulShutdown()

	slog.Info("Gracefully shutting down...")
}
