// Command analyze scores content locally without starting the server.
//
//	analyze "URGENT: verify your account at http://paypa1-secure.tk"
//	cat message.eml | analyze -type email
//	analyze -url https://who.int/news
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"truthlens/internal/config"
	"truthlens/internal/detection"
	"truthlens/internal/domain/models"
	"truthlens/pkg/logger"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to config file")
		contentType = flag.String("type", "text", "content type: text, html, email, url")
		language    = flag.String("lang", "", "language hint")
		file        = flag.String("file", "", "read content from file instead of arguments or stdin")
		checkURL    = flag.String("url", "", "rate a single URL and exit")
		timeout     = flag.Duration("timeout", 10*time.Second, "analysis timeout")
		verbose     = flag.Bool("v", false, "log engine activity to stderr")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("failed to load config: %v", err)
	}

	log := logger.NewNop()
	if *verbose {
		log = logger.New(logger.Config{Level: "debug", Format: "console", Output: os.Stderr})
	}

	engine, err := detection.NewEngine(detection.ConfigFromSettings(cfg.Detection), log)
	if err != nil {
		fatalf("failed to initialize engine: %v", err)
	}

	if *checkURL != "" {
		printJSON(engine.CheckURL(*checkURL))
		return
	}

	content, err := readContent(*file, flag.Args())
	if err != nil {
		fatalf("failed to read content: %v", err)
	}
	if n := len([]rune(content)); n > cfg.Detection.MaxContentLength {
		fatalf("content exceeds %d characters", cfg.Detection.MaxContentLength)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := engine.Analyze(ctx, models.AnalysisRequest{
		Content:     content,
		ContentType: models.ContentType(strings.ToLower(*contentType)),
		Language:    *language,
		SourceApp:   "cli",
	})
	if err != nil {
		fatalf("analysis failed: %v", err)
	}

	printJSON(res)
}

// readContent prefers -file, then arguments, then stdin
func readContent(file string, args []string) (string, error) {
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatalf("failed to encode result: %v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "analyze: "+format+"\n", args...)
	os.Exit(1)
}
