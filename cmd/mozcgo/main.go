/*
Package main implements the mozcgo conversion server and CLI test harness.

mozcgo provides the lattice-based A* N-best conversion core of a Japanese
input method: given a Viterbi-scored lattice, it enumerates ranked,
filtered candidate segments. It can operate as a msgpack IPC server for
integration with an input-method frontend, or as a CLI application for
testing and debugging.

Lattice construction, dictionary content, and the IME key-event layer are
out of scope here — this binary exercises the conversion core against
whatever ConverterInterface implementation it is wired to, which in the
absence of a full engine is engine.MinimalEngine, the degenerate
pass-through reference.

# Usage

Start the server with default settings:

	mozcgo

Use a custom dictionary data directory and enable debug mode:

	mozcgo -data /path/to/chunks -d

Run in CLI mode for interactive testing:

	mozcgo -c

# Configuration

Runtime configuration is managed through a TOML file covering server,
dictionary, N-best, and AES-history settings:

	[server]
	max_candidates = 10
	enable_filter = true

	[nbest]
	expand_size = 10
	weak_connection_penalty = 3000
	cost_gap_bound = 8000

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via msgpack over stdin/stdout. See pkg/server for
the full message catalogue.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/sorairo/mozcgo/internal/cli"
	"github.com/sorairo/mozcgo/internal/utils"
	"github.com/sorairo/mozcgo/pkg/config"
	"github.com/sorairo/mozcgo/pkg/converter"
	"github.com/sorairo/mozcgo/pkg/dictionary"
	"github.com/sorairo/mozcgo/pkg/engine"
	"github.com/sorairo/mozcgo/pkg/server"
)

const (
	Version = "0.1.0-beta"
	AppName = "mozcgo"
	gh      = "https://github.com/sorairo/mozcgo"
)

// sigHandler exits cleanly on SIGINT/SIGTERM.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires flags, config, and the dictionary loader, then hands off to
// either the CLI harness or the msgpack server loop. main does not
// implement conversion logic itself — it only manages startup.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", "data/", "Directory containing chunked dictionary binary files")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "", "Path to config.toml (defaults to the platform config dir)")
	requestType := flag.String("type", "conversion", "Request type for CLI mode: conversion, prediction, suggestion, reverse")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.Debugf("using config file: %s", activePath)

	var loader *dictionary.ChunkLoader
	if *dataDir != "" {
		resolved := *dataDir
		if resolver, err := utils.NewDataDirResolver(); err != nil {
			log.Debugf("data dir resolver unavailable, using %q as-is: %v", *dataDir, err)
		} else {
			resolved = resolver.GetDataDir(*dataDir)
			if *debugMode {
				log.Debugf("data dir diagnostics: %+v", resolver.DiagnoseDataDir(*dataDir))
			}
		}
		*dataDir = resolved
		loader = dictionary.NewChunkLoader(*dataDir)
		if err := loader.StartLazyLoading(); err != nil {
			log.Warnf("failed to start dictionary loader: %v", err)
		} else {
			log.Debugf("dictionary loader started at %s", *dataDir)
		}
	} else {
		log.Warn("no data dir specified, running with an empty dictionary")
	}

	conv := engine.NewMinimalEngine()

	if *cliMode {
		log.SetReportTimestamp(false)
		rt := parseRequestType(*requestType)
		inputHandler := cli.NewInputHandler(conv, rt)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	srv := server.NewServer(conv, loader, os.Stdin, os.Stdout)
	if cfg.AES.KeyFile != "" && cfg.AES.IVFile != "" {
		key, iv, err := loadHistoryKey(cfg.AES.KeyFile, cfg.AES.IVFile)
		if err != nil {
			log.Warnf("failed to load AES history key/iv: %v, history encryption disabled", err)
		} else {
			srv.SetHistoryKey(key, iv)
		}
	}

	showStartupInfo(*dataDir)

	if err := srv.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func parseRequestType(s string) converter.RequestType {
	switch s {
	case "prediction":
		return converter.Prediction
	case "suggestion":
		return converter.Suggestion
	case "reverse":
		return converter.ReverseConversion
	default:
		return converter.Conversion
	}
}

func loadHistoryKey(keyFile, ivFile string) (key [32]byte, iv [16]byte, err error) {
	keyBytes, err := os.ReadFile(keyFile)
	if err != nil {
		return key, iv, err
	}
	ivBytes, err := os.ReadFile(ivFile)
	if err != nil {
		return key, iv, err
	}
	if len(keyBytes) != 32 {
		return key, iv, fmt.Errorf("history key file must be exactly 32 bytes, got %d", len(keyBytes))
	}
	if len(ivBytes) != 16 {
		return key, iv, fmt.Errorf("history iv file must be exactly 16 bytes, got %d", len(ivBytes))
	}
	copy(key[:], keyBytes)
	copy(iv[:], ivBytes)
	return key, iv, nil
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"}).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ mozcgo ] A* N-best conversion core")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays basic info about the init process.
func showStartupInfo(dataDir string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("==========")
	println(" mozcgo ")
	println("==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("data dir: ( %s )", dataDir)
	log.Info("status: ready")
	println("==========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
