package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/ironsheep/screen-translator/internal/config"
	apperrors "github.com/ironsheep/screen-translator/internal/errors"
	"github.com/ironsheep/screen-translator/internal/imaging"
	"github.com/ironsheep/screen-translator/internal/logging"
	"github.com/ironsheep/screen-translator/internal/ocr"
	"github.com/ironsheep/screen-translator/internal/phonetic"
	"github.com/ironsheep/screen-translator/internal/pipeline"
	"github.com/ironsheep/screen-translator/internal/selection"
	"github.com/ironsheep/screen-translator/internal/server"
	"github.com/ironsheep/screen-translator/internal/translate"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "--version", "-v", "version":
		printVersion()
		return
	case "--help", "-h", "help":
		printHelp()
		return
	}

	logger := logging.NewLogger("screen-translator")
	logger.Debug("Loading config", "path", config.Path())

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// .env may have changed the level
	logger = logging.NewLoggerTo(os.Stderr, "screen-translator", logging.ParseLevel(cfg.LogLevel))

	engine, p := build(cfg, logger)

	switch cmd {
	case "serve":
		logger.Debug("Starting MCP server", "version", Version, "commit", GitCommit)
		srv := server.New(p, cfg.Credentials,
			server.WithEngineInfo(engine),
			server.WithVersion(Version),
			server.WithLogger(logger.With("server")),
		)
		if err := srv.Run(); err != nil {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	case "preview", "translate":
		os.Exit(runOnce(cmd, os.Args[2:], p, cfg.Credentials))
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		printHelp()
		os.Exit(2)
	}
}

// loadConfig loads the config file, creating a placeholder file on first run.
func loadConfig() (*config.Config, error) {
	path := config.Path()

	created, err := config.EnsureFile(path)
	if err != nil {
		return nil, err
	}
	if created {
		return nil, fmt.Errorf("created %s.\n"+
			"Fill in a valid AppId and SecretKey:\n"+
			"1. Register at https://fanyi-api.baidu.com to obtain credentials.\n"+
			"2. Edit %s and replace %s and %s.\n"+
			"3. Run the command again.",
			path, path, config.PlaceholderAppID, config.PlaceholderSecretKey)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// build wires the OCR engine and the remote clients into a pipeline.
func build(cfg *config.Config, logger *logging.Logger) (*ocr.Tesseract, *pipeline.Pipeline) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	prepare := imaging.DefaultPrepareOptions()
	prepare.MinHeight = cfg.OCRMinHeight

	engine := ocr.NewTesseract(cfg.OCRLanguage,
		ocr.WithTessdataPrefix(cfg.TessdataPrefix),
		ocr.WithPrepareOptions(prepare),
		ocr.WithLogger(logger.With("ocr")),
	)
	translator := translate.NewClient(cfg.TranslateURL,
		translate.WithHTTPClient(httpClient),
		translate.WithLogger(logger.With("translate")),
	)
	phonetics := phonetic.NewClient(cfg.DictionaryURL,
		phonetic.WithHTTPClient(httpClient),
		phonetic.WithConcurrency(cfg.PhoneticConcurrency),
		phonetic.WithLogger(logger.With("phonetic")),
	)

	p := pipeline.New(engine, translator, phonetics,
		pipeline.WithLanguages(cfg.SourceLang, cfg.TargetLang),
		pipeline.WithLogger(logger.With("pipeline")),
	)
	return engine, p
}

// runOnce captures one region of a screenshot file and prints the result.
// It returns the process exit code.
func runOnce(cmd string, args []string, p *pipeline.Pipeline, creds config.Credentials) int {
	if len(args) != 5 {
		fmt.Fprintf(os.Stderr, "usage: screen-translator %s <screenshot> <x> <y> <width> <height>\n", cmd)
		return 2
	}

	var coords [4]int
	for i, s := range args[1:] {
		v, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid coordinate %q: %v\n", s, err)
			return 2
		}
		coords[i] = v
	}
	rect := selection.Rect{X: coords[0], Y: coords[1], Width: coords[2], Height: coords[3]}

	// A zero-area selection is a silent cancel.
	if rect.Empty() {
		return 0
	}

	screen, err := imaging.LoadScreen(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	session := pipeline.NewSession(p, creds)
	if err := session.Capture(screen, rect); err != nil {
		if apperrors.Is(err, apperrors.ErrorSelectionCancelled) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	ctx := context.Background()

	if cmd == "preview" {
		text, err := session.Preview(ctx)
		if err != nil {
			fmt.Printf("Extraction failed:\n%v\n", err)
			return 1
		}
		fmt.Printf("Recognized text:\n%s\n", text)
		return 0
	}

	res, err := session.Confirm(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	fmt.Println(res.Report())
	if res.Status == pipeline.StatusFailed {
		return 1
	}
	return 0
}

func printVersion() {
	fmt.Printf("screen-translator %s\n", Version)
	fmt.Printf("  Build time: %s\n", BuildTime)
	fmt.Printf("  Git commit: %s\n", GitCommit)

	info := ocr.NewTesseract(os.Getenv("SCREEN_TRANSLATOR_OCR_LANGUAGE"),
		ocr.WithTessdataPrefix(os.Getenv("SCREEN_TRANSLATOR_TESSDATA_PREFIX"))).Info()
	fmt.Printf("  Tesseract:  %s (language %s, installed: %v)\n", info.Version, info.Language, info.Available)
}

func printHelp() {
	fmt.Println("screen-translator - OCR a screen region, translate it and transcribe each word")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  screen-translator [serve]                            Run the MCP server on stdin/stdout")
	fmt.Println("  screen-translator preview <png> <x> <y> <w> <h>      Print the recognized text of a region")
	fmt.Println("  screen-translator translate <png> <x> <y> <w> <h>    Translate a region and print the report")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  SCREEN_TRANSLATOR_CONFIG=config.json     Credentials file")
	fmt.Println("  SCREEN_TRANSLATOR_LOG_LEVEL=debug        Enable debug logging")
	fmt.Println("  SCREEN_TRANSLATOR_FROM / _TO             Translation languages (en / zh)")
	fmt.Println("  SCREEN_TRANSLATOR_OCR_LANGUAGE=eng       Tesseract language")
	fmt.Println("  SCREEN_TRANSLATOR_TESSDATA_PREFIX        Tesseract data directory")
	fmt.Println("  SCREEN_TRANSLATOR_HTTP_TIMEOUT=30s       Remote call timeout (default none)")
	fmt.Println("  SCREEN_TRANSLATOR_PHONETIC_CONCURRENCY=4 Concurrent dictionary lookups")
	fmt.Println()
	fmt.Println("Variables may also be set in a .env file in the working directory.")
}
