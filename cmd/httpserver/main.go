package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/nhdewitt/www-from-tcp/internal/config"
	"github.com/nhdewitt/www-from-tcp/internal/fileserver"
	"github.com/nhdewitt/www-from-tcp/internal/logging"
	"github.com/nhdewitt/www-from-tcp/internal/resolver"
	"github.com/nhdewitt/www-from-tcp/internal/server"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		host       = flag.String("host", "", "host to listen on (default localhost)")
		port       = flag.Int("port", -1, "port to listen on (default 8080)")
		root       = flag.String("root", "", "document root (default www)")
	)
	flag.Parse()

	cfg, err := config.Read(*configPath)
	if err != nil {
		boot := logging.New(os.Stderr, "info", true)
		boot.Fatal().Err(err).Msg("error loading config")
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port >= 0 {
		cfg.Server.Port = *port
	}
	if *root != "" {
		cfg.Server.DocRoot = *root
	}

	log := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Console)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	docRoot, err := resolver.Dir(cfg.Server.DocRoot)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening document root")
	}
	files := fileserver.New(docRoot)

	srv, err := server.Serve(cfg.Server, files.Generate, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error starting server")
	}
	defer srv.Close()
	log.Info().
		Str("addr", srv.Addr().String()).
		Str("root", cfg.Server.DocRoot).
		Msg("server started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("server gracefully stopped")
}
