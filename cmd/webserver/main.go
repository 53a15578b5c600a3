package main

import (
	"embed"
	"flag"
	"io/fs"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/logger"

	_ "go.uber.org/automaxprocs"
)

//go:embed static
var staticFiles embed.FS

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		logger.New(logger.Config{Level: "info"}).Fatal("load config", zap.Error(err))
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, App: "webserver", Dir: cfg.LogDir, File: cfg.LogFile})
	defer log.Sync()

	srv := NewServer(cfg, log)
	if err := http.ListenAndServe(cfg.Addr, srv.Routes()); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

// Routes returns the HTTP handler: the page, the websocket and metrics.
func (s *Server) Routes() http.Handler {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.Handle("/metrics", promhttp.Handler())

	s.log.Info("snake web server starting",
		zap.String("addr", s.cfg.Addr),
		zap.String("mode", string(s.cfg.Mode)),
	)
	return mux
}
