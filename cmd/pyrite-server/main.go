// Package main provides the entry point for the pyrite check service,
// serving diagnostics over HTTP/3.
package main

import (
	"crypto/tls"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pyrite-dev/pyrite/internal/cli"
	"github.com/pyrite-dev/pyrite/internal/server"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		jsonOutput  = flag.Bool("json", false, "output version in JSON format")
		verbose     = flag.Bool("verbose", false, "enable verbose output")
		addr        = flag.String("addr", "127.0.0.1:4433", "UDP address to serve HTTP/3 on")
		certFile    = flag.String("cert", "", "TLS certificate file (empty: self-signed dev cert)")
		keyFile     = flag.String("key", "", "TLS key file")
	)

	flag.Parse()

	if *showVersion {
		cli.PrintVersion(os.Stdout, "pyrite-server", *jsonOutput)
		return
	}

	logger := cli.NewLogger(*verbose, false)

	tlsCfg, err := loadTLS(*certFile, *keyFile, logger)
	if err != nil {
		cli.ExitWithError("%v", err)
	}

	srv := server.NewHTTP3Server(*addr, tlsCfg, server.NewHandler(logger))
	bound, err := srv.Start()
	if err != nil {
		cli.ExitWithError("failed to start server: %v", err)
	}
	fmt.Printf("pyrite-server listening on https://%s (HTTP/3)\n", bound)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Infof("shutting down")
	if err := srv.Stop(); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}

func loadTLS(certFile, keyFile string, logger *cli.Logger) (*tls.Config, error) {
	if certFile == "" {
		logger.Warnf("no certificate given, using a self-signed dev certificate")
		return server.SelfSignedTLSConfig()
	}
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS key pair: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
