// Package main is the pakar CLI entry point.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/hyperjump/pakar/internal/catalog"
	"github.com/hyperjump/pakar/internal/cli"
	"github.com/hyperjump/pakar/internal/config"
	"github.com/hyperjump/pakar/internal/metrics"
	"github.com/hyperjump/pakar/internal/models"
	"github.com/hyperjump/pakar/internal/recommend"
	"github.com/hyperjump/pakar/internal/rules"
	"github.com/hyperjump/pakar/internal/server"
	"github.com/hyperjump/pakar/internal/storage"
	"github.com/hyperjump/pakar/internal/tabular"
	"github.com/hyperjump/pakar/internal/watcher"
	"github.com/hyperjump/pakar/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/pakar/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// When neither exists the built-in defaults are returned, so the CLI works without a
// config file. Returns the config and the path that was actually loaded ("" for defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "recommend":
		runRecommend()
	case "brands":
		runBrands()
	case "categories":
		runCategories()
	case "status":
		runStatus()
	case "reload":
		runReload()
	case "import":
		runImport()
	case "init":
		runInit()
	case "version", "--version", "-v":
		fmt.Printf("pakar version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func mustLogger(debug bool) *zap.Logger {
	logger, err := utils.NewLogger(debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (catalog reloads, requests, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger := mustLogger(debugMode)
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("catalog_path", cfg.Catalog.Path),
		zap.Bool("debug", debugMode),
	)

	m := metrics.New()
	engine := recommend.NewEngine(catalog.NewLoader(logger), cfg.Recommend, m, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The server starts even without a catalog; queries answer 503 until a load succeeds.
	if err := engine.Reload(ctx, cfg.Catalog.Path); err != nil {
		logger.Warn("initial catalog load failed", zap.String("path", cfg.Catalog.Path), zap.Error(err))
	}

	var watchSvc *watcher.Watcher
	if cfg.Catalog.WatchOrDefault() && cfg.Catalog.Path != "" {
		watchOpts := []watcher.WatcherOption{
			watcher.WithDebounce(time.Duration(cfg.Catalog.DebounceMillis) * time.Millisecond),
		}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc = watcher.NewWatcher(
			[]string{cfg.Catalog.Path},
			func(path string) {
				if err := engine.Reload(ctx, path); err != nil {
					logger.Warn("catalog reload failed", zap.String("path", path), zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := watchSvc.Start(ctx); err != nil {
			logger.Warn("catalog watcher not started", zap.Error(err))
			watchSvc = nil
		}
	}

	srv := server.NewServer(engine, &cfg.Server, cfg.Catalog.Path, m, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watchSvc != nil {
		watchSvc.Stop()
	}
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
}

// printRecommendUsage prints recommend subcommand usage.
func printRecommendUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: pakar recommend [flags] [search terms]\n\n")
	fmt.Fprintf(fs.Output(), "Search terms are all non-flag arguments joined by spaces and filter by product name.\n")
	fmt.Fprintf(fs.Output(), "Flags and search terms may appear in any order; arguments after -- are always search terms.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Categories and their sub-categories are listed by "pakar categories".
Budgets accept separators: 15000000, 15.000.000 and 15_000_000 are the same.

Examples:
  pakar recommend -budget 15000000 -category GAMING -sub ESPORTS
  pakar recommend -budget 8.000.000 -category OFFICE -sub STUDENT -sort lowest_price
  pakar recommend -budget 20000000 -category SHOW_ALL -brand ASUS rog
  pakar recommend -server http://localhost:8080 -budget 12000000 -category PROGRAMMING -sub WEB
`)
}

// buildSearchTerm joins all positional args with spaces so multi-word searches
// work the same with or without shell quoting.
func buildSearchTerm(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// argsReorder moves every flag (and its value) to the front so that flag.Parse sees
// them wherever they appear among the search terms. Go's flag package stops at the
// first non-flag argument. Arguments after "--" are always search terms.
func argsReorder(fs *flag.FlagSet, args []string) []string {
	flags := make([]string, 0, len(args))
	terms := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			terms = append(terms, args[i+1:]...)
			break
		}
		if len(a) < 2 || a[0] != '-' {
			terms = append(terms, a)
			continue
		}
		flags = append(flags, a)
		if flagTakesValue(fs, a) && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	if len(terms) == 0 {
		return flags
	}
	return append(append(flags, "--"), terms...)
}

// flagTakesValue reports whether arg names a flag whose value is the next argument.
func flagTakesValue(fs *flag.FlagSet, arg string) bool {
	name := strings.TrimLeft(arg, "-")
	if strings.Contains(name, "=") {
		return false
	}
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
		return false
	}
	return true
}

// parseBudget reads a rupiah amount, ignoring thousands separators.
func parseBudget(s string) (int64, error) {
	cleaned := strings.NewReplacer(".", "", ",", "", "_", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, errors.New("budget is required")
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid budget %q", s)
	}
	return n, nil
}

func runRecommend() {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct catalog mode)")
	serverURL := fs.String("server", "", "server URL (empty = load the configured catalog directly)")
	catalogPath := fs.String("catalog", "", "catalog file (overrides config; direct mode only)")
	budget := fs.String("budget", "", "budget in rupiah")
	category := fs.String("category", "", "category: OFFICE, PROGRAMMING, DESIGN, GAMING or SHOW_ALL")
	sub := fs.String("sub", "", "sub-category (not used with SHOW_ALL)")
	brand := fs.String("brand", models.BrandAll, "brand filter")
	sortBy := fs.String("sort", string(models.SortScore), "sort: score, lowest_price, highest_price or best_value")
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("page-size", 0, "results per page (0 = configured default)")
	outputFormat := fs.String("output", "text", "output format: text (human-readable), compact (one result per line), or json (parseable)")
	fs.Usage = func() { printRecommendUsage(fs) }
	_ = fs.Parse(argsReorder(fs, os.Args[2:]))

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	amount, err := parseBudget(*budget)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printRecommendUsage(fs)
		os.Exit(1)
	}

	query := &models.RecommendQuery{
		Budget:      amount,
		Category:    *category,
		SubCategory: *sub,
		Search:      buildSearchTerm(fs.Args()),
		Brand:       *brand,
		Sort:        models.SortOption(*sortBy),
		Page:        *page,
		PageSize:    *pageSize,
	}

	var result *models.ResultPage
	if *serverURL != "" {
		result, err = recommendViaHTTP(*serverURL, query)
	} else {
		result, err = recommendDirect(*configPath, *catalogPath, query)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Recommend failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteResultPage(os.Stdout, result, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// openEngine loads the catalog named by catalogPath (or the config) into a fresh engine.
func openEngine(configPath, catalogPath string) (*recommend.Engine, *zap.Logger, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := mustLogger(cfg.Debug)
	if catalogPath == "" {
		catalogPath = cfg.Catalog.Path
	}
	engine := recommend.NewEngine(catalog.NewLoader(logger), cfg.Recommend, nil, logger)
	if err := engine.Reload(context.Background(), catalogPath); err != nil {
		return nil, logger, err
	}
	return engine, logger, nil
}

func recommendDirect(configPath, catalogPath string, query *models.RecommendQuery) (*models.ResultPage, error) {
	engine, logger, err := openEngine(configPath, catalogPath)
	if logger != nil {
		defer logger.Sync()
	}
	if err != nil {
		return nil, err
	}
	return engine.Recommend(context.Background(), query)
}

// apiError is the error body returned by the server.
type apiError struct {
	Error  string `json:"error"`
	Fields []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"fields"`
}

func decodeAPIError(status int, body []byte) error {
	var e apiError
	if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
		return fmt.Errorf("server returned %d: %s", status, strings.TrimSpace(string(body)))
	}
	if len(e.Fields) == 0 {
		return fmt.Errorf("server returned %d: %s", status, e.Error)
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Errorf("server returned %d: %s", status, strings.Join(msgs, "; "))
}

func recommendViaHTTP(serverURL string, query *models.RecommendQuery) (*models.ResultPage, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(strings.TrimRight(serverURL, "/")+"/api/v1/recommend", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, decodeAPIError(resp.StatusCode, b)
	}
	var page models.ResultPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &page, nil
}

func getJSON(url string, out any) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return decodeAPIError(resp.StatusCode, b)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func runBrands() {
	fs := flag.NewFlagSet("brands", flag.ExitOnError)
	serverURL := fs.String("server", "", "server URL (empty = built-in list)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	brands := catalog.Brands()
	if *serverURL != "" {
		var out struct {
			Brands []string `json:"brands"`
		}
		if err := getJSON(strings.TrimRight(*serverURL, "/")+"/api/v1/brands", &out); err != nil {
			fmt.Fprintf(os.Stderr, "Brands failed: %v\n", err)
			os.Exit(1)
		}
		brands = out.Brands
	}
	if err := cli.WriteBrands(os.Stdout, brands, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runCategories() {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cli.WriteCategories(os.Stdout, rules.Categories(), format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Ready     bool      `json:"ready"`
	CatalogID string    `json:"catalog_id,omitempty"`
	Source    string    `json:"source,omitempty"`
	LoadedAt  time.Time `json:"loaded_at"`
	Products  int       `json:"products"`
	Brands    []string  `json:"brands"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = load the catalog directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		if err := getJSON(strings.TrimRight(*serverURL, "/")+"/api/v1/status", &status); err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		engine, logger, err := openEngine(*configPath, "")
		if logger != nil {
			defer logger.Sync()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		c := engine.Catalog()
		status = statusResponse{
			Ready:     true,
			CatalogID: c.ID(),
			Source:    c.Source(),
			LoadedAt:  c.LoadedAt(),
			Products:  c.Len(),
			Brands:    engine.ListBrands(),
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		writeStatusText(os.Stdout, status)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func writeStatusText(w io.Writer, status statusResponse) {
	fmt.Fprintf(w, "ready:       %t\n", status.Ready)
	if !status.Ready {
		return
	}
	fmt.Fprintf(w, "catalog_id:  %s\n", status.CatalogID)
	fmt.Fprintf(w, "source:      %s\n", status.Source)
	fmt.Fprintf(w, "loaded_at:   %s\n", status.LoadedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "products:    %d\n", status.Products)
	fmt.Fprintf(w, "brands:      %s\n", strings.Join(status.Brands, ", "))
}

func runReload() {
	fs := flag.NewFlagSet("reload", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Post(strings.TrimRight(*serverURL, "/")+"/api/v1/catalog/reload", "application/json", nil)
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Reload failed: %v\n", decodeAPIError(resp.StatusCode, b))
		os.Exit(1)
	}
	fmt.Println(strings.TrimSpace(string(b)))
}

// importCatalog reads a tabular file and replaces the catalog table in the SQLite database
// at dbPath. The table is checked with the catalog normalizer first so that an import
// never leaves a database the server cannot load.
func importCatalog(ctx context.Context, inPath, dbPath string, logger *zap.Logger) (int, error) {
	table, err := tabular.NewReader().ReadFile(inPath)
	if err != nil {
		return 0, err
	}
	c, err := catalog.NewLoader(logger).LoadTable(table, inPath)
	if err != nil {
		return 0, err
	}
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()
	if err := store.ImportTable(ctx, table); err != nil {
		return 0, err
	}
	return c.Len(), nil
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	dbPath := fs.String("db", "", "SQLite database to write (default: catalog.database_path from config)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: pakar import [flags] <catalog.csv|.tsv|.xlsx|.ods>")
		os.Exit(1)
	}
	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := mustLogger(cfg.Debug)
	defer logger.Sync()

	target := *dbPath
	if target == "" {
		target = cfg.Catalog.DatabasePath
	}
	n, err := importCatalog(context.Background(), fs.Arg(0), target, logger)
	if err != nil {
		fmt.Printf("Import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d product(s) into %s\n", n, target)
}

// writeDefaultConfig writes the built-in defaults to path, refusing to overwrite.
func writeDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	watch := cfg.Catalog.WatchOrDefault()
	cfg.Catalog.Watch = &watch
	return config.Save(path, cfg)
}

func runInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "where to write the config file")
	_ = fs.Parse(os.Args[2:])

	if err := writeDefaultConfig(*configPath); err != nil {
		fmt.Printf("Init failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *configPath)
}

func printUsage() {
	fmt.Println(`pakar - Rule-based laptop recommender

Usage:
  pakar server [flags]                 Start the HTTP server
  pakar recommend [flags] [search]     Recommend laptops for a budget and use case
  pakar brands [flags]                 List brand filter values
  pakar categories [flags]             List categories, sub-categories and thresholds
  pakar status [flags]                 Show the loaded catalog
  pakar reload [flags]                 Ask a running server to reload its catalog
  pakar import [flags] <file>          Import a CSV/TSV/XLSX/ODS catalog into SQLite
  pakar init [flags]                   Write a default config file
  pakar version                        Show version
  pakar help                           Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/pakar/config.yaml)
  --debug            Enable debug logging

Recommend Flags:
  --budget string    Budget in rupiah (required)
  --category string  OFFICE, PROGRAMMING, DESIGN, GAMING or SHOW_ALL (required)
  --sub string       Sub-category, required unless category is SHOW_ALL
  --brand string     Brand filter (default: ALL)
  --sort string      score, lowest_price, highest_price or best_value (default: score)
  --page int         Page number (default: 1)
  --page-size int    Results per page (default from config)
  --server string    Server URL. Empty (default) loads the catalog directly.
  --catalog string   Catalog file for direct mode (default from config)
  --output string    text, compact or json (default: text)

Status Flags:
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to load directly.
  --output string    text or json (default: text)

Import Flags:
  --db string        Target SQLite database (default from config)

Examples:
  pakar server
  pakar recommend -budget 15000000 -category GAMING -sub ESPORTS
  pakar recommend -budget 20.000.000 -category SHOW_ALL -brand ASUS -sort best_value rog
  pakar recommend -output json -budget 9000000 -category OFFICE -sub STUDENT
  pakar import -db catalog.db laptops.xlsx
  pakar status --output json
  pakar init -config ./config.yaml`)
}
