package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/bartek5186/woo2katana/internal/bridge"
	"github.com/bartek5186/woo2katana/internal/catalog"
	_ "github.com/bartek5186/woo2katana/internal/catalog/local" // rejestracja
	_ "github.com/bartek5186/woo2katana/internal/catalog/woocommerce"
	conf "github.com/bartek5186/woo2katana/internal/config"
	"github.com/bartek5186/woo2katana/internal/db"
	"github.com/bartek5186/woo2katana/internal/httpapi"
	"github.com/bartek5186/woo2katana/internal/importer"
	"github.com/bartek5186/woo2katana/internal/katana"
	logs "github.com/bartek5186/woo2katana/internal/logs"
	"github.com/bartek5186/woo2katana/internal/settings"
	"github.com/rs/zerolog"
)

// wersję możesz nadpisać przez: -ldflags "-X 'main.ver=1.0.1'"
var ver = "1.0.0"

type app struct {
	log      zerolog.Logger
	appDir   string
	cfgPath  string
	store    *settings.GormStore
	creator  *bridge.Creator
	importer *importer.Importer
	source   catalog.Source
}

func main() {
	httpAddr := flag.String("http", "", "adres HTTP (np. :8080); nadpisuje http_addr z configa")
	flag.Parse()

	appDir := mustAppDataDir("woo2katana")
	cfgPath := filepath.Join(appDir, "config.json")
	cfg, firstRun, err := conf.LoadOrCreate(cfgPath)
	if err != nil {
		panic(err)
	}
	env := cfg.ApplyEnv()
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	log, logFile, err := logs.New(filepath.Join(appDir, "app.log"), cfg.LogLevel, true)
	if err != nil {
		panic(err)
	}
	defer logFile.Close()

	if firstRun {
		log.Info().Msgf("Utworzono domyślną konfigurację: %s", cfgPath)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config error")
	}

	var dbh *db.Handle
	if cfg.Database.DSN == "" && (cfg.Database.Driver == "" || cfg.Database.Driver == db.DriverSQLite) {
		dbh, err = db.OpenAt(appDir)
	} else {
		dbh, err = db.Open(cfg.Database.Driver, cfg.Database.DSN)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("DB open error")
	}
	defer dbh.Close()
	if err := dbh.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("DB migrate error")
	}
	log.Info().Str("db", dbh.Path).Msg("DB ready")

	factory, ok := catalog.Get(cfg.Catalog)
	if !ok {
		log.Fatal().Str("catalog", cfg.Catalog).Msg("brak fabryki katalogu")
	}
	src, err := factory(log.With().Str("catalog", cfg.Catalog).Logger(), cfg.Integration(cfg.Catalog), catalog.Deps{DB: dbh.DB})
	if err != nil {
		log.Fatal().Err(err).Str("catalog", cfg.Catalog).Msg("błąd inicjalizacji katalogu")
	}

	store := settings.NewGormStore(dbh.DB)
	client := katana.NewClient(cfg.Katana.BaseURL, time.Duration(cfg.Katana.TimeoutSec)*time.Second)
	a := &app{
		log:      log,
		appDir:   appDir,
		cfgPath:  cfgPath,
		store:    store,
		source:   src,
		importer: importer.New(log.With().Str("component", "importer").Logger(), dbh.DB),
		creator: bridge.NewCreator(
			log.With().Str("component", "bridge").Logger(),
			settings.NewReader(log, store, env.APIKey),
			src,
			client,
			bridge.NewLogNotifier(log),
		),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info().Str("catalog", src.Name()).Str("katana", cfg.Katana.BaseURL).Msgf("woo2katana %s uruchomiony", ver)

	if cfg.HTTPAddr != "" {
		if err := a.serve(ctx, cfg.HTTPAddr); err != nil {
			log.Error().Err(err).Msg("http server")
		}
		return
	}
	a.repl(ctx)
}

func (a *app) serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewRouter(a.log.With().Str("component", "http").Logger(), a.creator),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	a.log.Info().Str("addr", addr).Msg("HTTP listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Prosta pętla poleceń w terminalu
func (a *app) repl(ctx context.Context) {
	fmt.Println("woo2katana CLI", ver)
	fmt.Println("Komendy: create <id> | import <plik> | settings | set <klucz> <wartość> | sources | paths | quit")
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			return // EOF
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToLower(fields[0]), fields[1:]

		switch cmd {
		case "create":
			if len(args) != 1 {
				fmt.Println("Użycie: create <id>")
				continue
			}
			out := a.creator.Create(ctx, bridge.ParseProductID(args[0]))
			if out.Success {
				fmt.Println("OK:", out.Message)
			} else {
				fmt.Printf("Błąd [%s]: %s\n", out.Kind, out.Message)
			}
		case "import":
			if len(args) != 1 {
				fmt.Println("Użycie: import <plik.xml>")
				continue
			}
			res, err := a.importer.ImportFile(ctx, args[0])
			switch {
			case err != nil:
				fmt.Println("Błąd importu:", err)
			case res.Skipped:
				fmt.Println("Plik już zaimportowany, pomijam")
			default:
				fmt.Printf("Zaimportowano %d produktów (import #%d)\n", res.Products, res.ImportID)
			}
		case "settings":
			a.printSettings(ctx)
		case "set":
			if len(args) < 2 {
				fmt.Println("Użycie: set <klucz> <wartość>")
				continue
			}
			if err := a.store.Set(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
				fmt.Println("Błąd zapisu:", err)
				continue
			}
			a.log.Info().Str("key", args[0]).Msg("ustawienie zapisane")
			fmt.Println("Zapisano")
		case "sources":
			fmt.Println("Aktywny katalog:", a.source.Name())
			fmt.Println("Dostępne:", strings.Join(catalog.Names(), ", "))
		case "paths":
			fmt.Println("Logi:", filepath.Join(a.appDir, "app.log"))
			fmt.Println("Config:", a.cfgPath)
		case "quit", "exit":
			return
		default:
			fmt.Println("Nieznana komenda. Użyj: create | import | settings | set | sources | paths | quit")
		}

		if ctx.Err() != nil {
			return
		}
	}
}

func (a *app) printSettings(ctx context.Context) {
	all, err := a.store.All(ctx)
	if err != nil {
		fmt.Println("Błąd odczytu:", err)
		return
	}
	for _, k := range settings.Keys {
		v, ok := all[k]
		switch {
		case !ok:
			v = "(domyślna)"
		case k == settings.KeyAPIKey && v != "":
			v = maskKey(v)
		}
		fmt.Printf("  %-26s %s\n", k, v)
	}

	var extra []string
	for k := range all {
		if !slices.Contains(settings.Keys, k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		fmt.Printf("  %-26s %s\n", k, all[k])
	}
}

func maskKey(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

func mustAppDataDir(name string) string {
	base, err := os.UserConfigDir()
	if err != nil {
		panic(err)
	}
	p := filepath.Join(base, name)
	_ = os.MkdirAll(p, 0o755)
	return p
}
