// Program aipdbquery is an interactive console client for the AbuseIPDB v2
// check endpoint. It reads IP addresses at a prompt, queries the API, and
// prints the abuse confidence score, ISP, usage type, and country code for
// each one.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jubentley/AIPDBQuery/config"
	"github.com/jubentley/AIPDBQuery/credential"
	"github.com/jubentley/AIPDBQuery/reputation"
	"github.com/jubentley/AIPDBQuery/stats"
)

const (
	bannerText        = "AIPDBQuery - AbuseIPDB IP reputation lookup"
	hintText          = "enter an IP address (blank, q, or exit to quit)"
	defaultConfigPath = "aipdbquery.yaml"
	envConfigPath     = "AIPDB_CONFIG_PATH"
)

func main() {
	os.Exit(run())
}

// Purpose: Start the client: config, logging, credential, then the loop.
// Key aspects: Startup failures print actionable errors and exit nonzero.
// Upstream: process entry.
// Downstream: config loading, credential.Load, session.run.
func run() int {
	configPath := flag.String("config", "", "path to the YAML config file (optional)")
	oneShot := flag.String("ip", "", "query one address and exit instead of prompting")
	flag.Parse()

	cfg, source, err := loadClientConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fanout, logErr := setupLogging(cfg.Logging, os.Stderr)
	defer fanout.Close()
	log.SetFlags(0)
	log.SetOutput(fanout)
	if logErr != nil {
		log.Printf("File logging unavailable: %v", logErr)
	}
	if source != "" {
		log.Printf("Loaded configuration from %s", source)
	}
	log.Printf("Settings: %s", cfg.Describe())

	key, err := credential.Load(credential.DefaultDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n%s\n", err, credential.Guidance())
		return 1
	}

	client := reputation.NewClient(reputation.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.Timeout(),
		Key:     key,
	})
	colorOn := colorEnabled(cfg.UI.Color, stdoutIsTerminal())

	if *oneShot != "" {
		return runOnce(os.Stdout, client, colorOn, *oneShot)
	}

	fmt.Println(bannerText)
	fmt.Println(hintText)

	tracker := stats.NewTracker()
	sess := newSession(os.Stdin, os.Stdout, client, colorOn, tracker, fanout)
	if err := sess.run(); err != nil {
		log.Printf("input error: %v", err)
	}
	fanout.WriteFileOnlyLine(tracker.Summary(), time.Now())
	return 0
}

// loadClientConfig picks the first config path that exists out of the
// -config flag, the AIPDB_CONFIG_PATH environment variable, and the default
// file name, in that order. When none exists the built-in defaults apply
// and the returned source is empty.
func loadClientConfig(flagPath string) (*config.Config, string, error) {
	candidates := make([]string, 0, 3)
	if trimmed := strings.TrimSpace(flagPath); trimmed != "" {
		candidates = append(candidates, trimmed)
	}
	if envPath := strings.TrimSpace(os.Getenv(envConfigPath)); envPath != "" {
		candidates = append(candidates, envPath)
	}
	candidates = append(candidates, defaultConfigPath)

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, path, fmt.Errorf("failed to read config file: %w", err)
		}
		cfg, err := config.Load(path)
		if err != nil {
			return nil, path, err
		}
		return cfg, path, nil
	}
	return config.Default(), "", nil
}

// runOnce performs a single lookup for -ip and returns the process exit
// code: zero only when the query produced a record.
func runOnce(out io.Writer, client addressQuerier, colorOn bool, address string) int {
	if !reputation.IsPlausibleAddress(address) {
		fmt.Fprintln(out, applyANSIMarkup("[yellow]"+rejectionText+"[-]", colorOn))
		return 1
	}
	outcome := client.QueryAddress(address)
	renderOutcome(out, outcome, colorOn)
	if !outcome.OK {
		return 1
	}
	return 0
}
