package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sovietmap/tileserve.git/internal/config"
	"github.com/sovietmap/tileserve.git/internal/models"
	"github.com/sovietmap/tileserve.git/internal/repository"
	"github.com/sovietmap/tileserve.git/internal/server"
	"github.com/sovietmap/tileserve.git/internal/tui"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	port := flag.Int("port", 0, "listen port (overrides config)")
	root := flag.String("root", "", "directory to serve (overrides config)")
	logDB := flag.String("db", "", "sqlite access log path (overrides config)")
	dashboard := flag.Bool("dashboard", false, "run with the live terminal dashboard")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *root != "" {
		cfg.Root = *root
	}
	if *logDB != "" {
		cfg.LogDB = *logDB
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err != nil {
		log.Warnf("Unknown log level %q, using info", cfg.LogLevel)
	} else {
		log.SetLevel(level)
	}

	srv := server.New(cfg)

	if cfg.LogDB != "" {
		var db repository.AccessLogRepository = config.GetDB(cfg.LogDB)
		defer config.Close()
		srv.AddObserver(func(rec models.RequestRecord) {
			if err := db.SaveRecord(rec); err != nil {
				log.Warnf("Failed to persist request record: %v", err)
			}
		})
	}

	if !*dashboard {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	// The dashboard owns the terminal; log lines would tear the UI.
	log.SetOutput(io.Discard)

	var initial []models.RequestRecord
	if config.DB != nil {
		if initial, err = config.DB.RecentRecords(100); err != nil {
			initial = nil
		}
	}

	p := tui.GetTui(cfg, initial)
	srv.AddObserver(func(rec models.RequestRecord) {
		p.Send(models.RecordMsg{Record: rec})
	})

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			p.Quit()
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
	log.SetOutput(os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Shutdown failed: %v", err)
		os.Exit(1)
	}
}
