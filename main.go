package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/neo7812/Globetrotter/internal/config"
	"github.com/neo7812/Globetrotter/internal/game"
	"github.com/neo7812/Globetrotter/internal/httpserver"
	"github.com/neo7812/Globetrotter/internal/metrics"
	"github.com/neo7812/Globetrotter/internal/remote"
	"github.com/neo7812/Globetrotter/internal/sharecard"
	"github.com/neo7812/Globetrotter/internal/store"
	"github.com/neo7812/Globetrotter/internal/terminal"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := &cli.App{
		Name:  "globetrotter",
		Usage: "geography trivia: guess the city from its clues",
		Commands: []*cli.Command{
			serveCommand(),
			playCommand(),
			cardCommand(),
			importCommand(),
		},
	}
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("globetrotter exited")
	}
}

// setup loads configuration and configures the global logger. Interactive
// commands log human-readable lines to stderr.
func setup(console bool) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(cfg.Level())
	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return cfg, nil
}

func fontsFor(cfg *config.Config, override string) sharecard.FontSource {
	if override != "" {
		return sharecard.FileFont(override)
	}
	if cfg.FontPath != "" {
		return sharecard.FileFont(cfg.FontPath)
	}
	return sharecard.DefaultFont()
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address (overrides HTTP_ADDR)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := setup(false)
			if err != nil {
				return err
			}
			if addr := c.String("addr"); addr != "" {
				cfg.HTTPAddr = addr
			}
			return serve(c.Context, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	dests, err := loadStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	fonts := fontsFor(cfg, "")
	if _, err := fonts(); err != nil {
		// Rounds still work; only /api/share will answer 500.
		log.Warn().Err(err).Msg("share card font unavailable")
	}

	srv := httpserver.New(httpserver.Deps{
		Config:  cfg,
		Logger:  log.Logger,
		Store:   dests,
		Cards:   sharecard.NewRenderer(fonts),
		Metrics: metrics.New(),
	})
	hs := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Int("destinations", dests.Len()).Msg("starting globetrotter")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "play rounds in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, Usage: "your player name"},
			&cli.StringFlag{Name: "server", Usage: "play against a running server instead of the local dataset"},
			&cli.IntFlag{Name: "rounds", Usage: "stop after this many rounds (0 = until you quit)"},
			&cli.StringFlag{Name: "share-out", Usage: "write your share card PNG here when you finish"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := setup(true)
			if err != nil {
				return err
			}
			return play(c, cfg)
		},
	}
}

func play(c *cli.Context, cfg *config.Config) error {
	ctx := c.Context
	registry := store.NewMemoryRegistry()
	name, err := registry.Register(ctx, c.String("username"))
	if err != nil {
		return err
	}

	var (
		source  game.RoundSource
		client  *remote.Client
		baseURL = cfg.PublicBaseURL
	)
	if server := c.String("server"); server != "" {
		client, err = remote.New(server, nil)
		if err != nil {
			return err
		}
		source, baseURL = client, server
	} else {
		dests, err := loadStore(ctx, cfg)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		source = game.NewDealer(dests, nil)
	}

	p := terminal.New(os.Stdin, os.Stdout)
	p.MaxRounds = c.Int("rounds")
	session := game.NewSession(name, source, game.WithListener(p.Listener()))
	score, err := p.Play(ctx, session)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\nFinal score for %s: %d correct, %d incorrect.\n", name, score.Correct, score.Incorrect)

	if inv, err := sharecard.NewInvite(baseURL, name, score.Correct); err == nil {
		fmt.Fprintf(os.Stdout, "Challenge a friend: %s\nWhatsApp: %s\n", inv.URL, inv.WhatsAppURL)
	} else {
		log.Warn().Err(err).Msg("build invite")
	}

	out := c.String("share-out")
	if out == "" {
		return nil
	}
	var card []byte
	if client != nil {
		card, err = client.ShareCard(ctx, name, score.Correct)
	} else {
		card, err = sharecard.NewRenderer(fontsFor(cfg, "")).Render(name, score.Correct)
	}
	if err != nil {
		var unavailable *sharecard.RenderUnavailableError
		if errors.As(err, &unavailable) {
			log.Warn().Err(err).Msg("share card skipped")
			return nil
		}
		return err
	}
	if err := os.WriteFile(out, card, 0o644); err != nil {
		return err
	}
	log.Info().Str("path", out).Msg("share card written")
	return nil
}

func cardCommand() *cli.Command {
	return &cli.Command{
		Name:  "card",
		Usage: "render a share card PNG",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Usage: "name on the card (blank = Player)"},
			&cli.StringFlag{Name: "score", Value: "0", Usage: "score on the card"},
			&cli.StringFlag{Name: "out", Value: "share.png", Usage: "output file"},
			&cli.StringFlag{Name: "font", Usage: "TTF file (overrides FONT_PATH)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := setup(true)
			if err != nil {
				return err
			}
			r := sharecard.NewRenderer(fontsFor(cfg, c.String("font")))
			card, err := r.Render(c.String("username"), sharecard.ParseScore(c.String("score")))
			if err != nil {
				return err
			}
			if err := os.WriteFile(c.String("out"), card, 0o644); err != nil {
				return err
			}
			log.Info().Str("path", c.String("out")).Int("bytes", len(card)).Msg("share card written")
			return nil
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "load a JSON/YAML dataset into a SQLite database for DATASET_DB",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "dataset file (blank = embedded dataset)"},
			&cli.StringFlag{Name: "db", Required: true, Usage: "SQLite file to create or update"},
		},
		Action: func(c *cli.Context) error {
			if _, err := setup(true); err != nil {
				return err
			}
			return importDataset(c.Context, c.String("from"), c.String("db"))
		},
	}
}
