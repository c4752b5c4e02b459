// Command vizweb serves the search API for a browser front end.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdrpinto/dijkstra"
	"github.com/pdrpinto/dijkstra/obstacle"
	"github.com/pdrpinto/dijkstra/scenario"
	"github.com/pdrpinto/dijkstra/server"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address; falls back to a random local port if busy")
	scenarioPath := flag.String("scenario", "", "TOML scenario file (default: reference scene)")
	static := flag.String("static", "", "index.html to serve at /")
	origin := flag.String("allow-origin", "", "CORS origin for a front end served elsewhere")
	maxSessions := flag.Int("max-sessions", 64, "maximum concurrent stepper sessions")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	gin.SetMode(gin.ReleaseMode)

	grid, err := loadGrid(*scenarioPath)
	if err != nil {
		logger.Error("load grid", "err", err)
		os.Exit(1)
	}

	router := server.New(grid,
		server.WithLogger(logger),
		server.WithMaxSessions(*maxSessions),
		server.WithAllowOrigin(*origin),
	).Router()
	if index := findIndex(*static); index != "" {
		router.StaticFile("/", index)
	}

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		ln, err = net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			logger.Error("listen", "err", err)
			os.Exit(1)
		}
	}
	_, port, _ := net.SplitHostPort(ln.Addr().String())
	logger.Info("serving", "url", "http://localhost:"+port, "bounds", grid.Bounds())

	srv := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("serve", "err", err)
		os.Exit(1)
	}
}

func loadGrid(path string) (*dijkstra.Grid, error) {
	if path == "" {
		grid, _, err := obstacle.ReferenceScene().Grid()
		return grid, err
	}
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	grid, _, err := sc.Build()
	return grid, err
}

// findIndex returns the first index.html that exists, trying the flag value
// and then the usual locations relative to the repo root or this directory.
func findIndex(flagValue string) string {
	candidates := []string{"cmd/vizweb/static/index.html", "static/index.html"}
	if flagValue != "" {
		candidates = []string{flagValue}
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
