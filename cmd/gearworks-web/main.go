package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	httpadapter "svw.info/gearworks/internal/adapters/http"
	"svw.info/gearworks/internal/config"
	"svw.info/gearworks/internal/difficulty"
	"svw.info/gearworks/internal/generator"
	"svw.info/gearworks/internal/infrastructure/storage"
	"svw.info/gearworks/internal/shape"
	"svw.info/gearworks/internal/usecase"
	"svw.info/gearworks/internal/validator"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", time.Since(start).Round(time.Millisecond),
		)
	})
}

func main() {
	cfgPath := flag.String("config", "", "YAML config file (optional)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	persist := flag.String("persist-path", "", "save directory (overrides config)")
	levelStr := flag.String("log-level", "", "debug|info|warn|error (overrides config)")
	tiers := flag.String("tiers", "", "YAML tier table (overrides config)")
	watch := flag.Bool("watch", false, "reload the tier table when it changes")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			slog.Error("config", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *persist != "" {
		cfg.Storage.Dir = *persist
	}
	if *levelStr != "" {
		cfg.Log.Level = *levelStr
	}
	if *tiers != "" {
		cfg.Generation.TiersFile = *tiers
	}
	if *watch {
		cfg.Generation.WatchTiers = true
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	_ = os.MkdirAll(cfg.Storage.Dir, 0o755)

	table := difficulty.Default()
	if cfg.Generation.TiersFile != "" {
		t, err := difficulty.LoadTable(cfg.Generation.TiersFile)
		if err != nil {
			logger.Error("tier table", "path", cfg.Generation.TiersFile, "err", err)
			os.Exit(1)
		}
		table = t
	}
	store := difficulty.NewStore(table)
	if cfg.Generation.WatchTiers && cfg.Generation.TiersFile != "" {
		tw, err := config.WatchTiers(cfg.Generation.TiersFile, store, logger)
		if err != nil {
			logger.Error("watch tiers", "err", err)
			os.Exit(1)
		}
		defer tw.Close()
	}

	// Wire providers → use cases → HTTP adapter
	g := generator.NewLevelGenerator(shape.New(), store, validator.New())
	g.Spacing = cfg.Generation.GridSpacing
	g.Logger = logger
	st := storage.NewFS(cfg.Storage.Dir)
	uc := usecase.NewService(g, store, st)
	h := httpadapter.New(uc)

	mux := http.NewServeMux()
	h.Register(mux)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", cfg.Server.Addr, "persist", cfg.Storage.Dir, "tiers", len(table.Tiers))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
