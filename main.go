package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
	"github.com/matt-g-everett/framecast/api"
	"github.com/matt-g-everett/framecast/compositions"
	"github.com/matt-g-everett/framecast/config"
	"github.com/matt-g-everett/framecast/preview"
	"github.com/matt-g-everett/framecast/raster"
	"github.com/matt-g-everett/framecast/render"
	"github.com/matt-g-everett/framecast/scene"
	"github.com/matt-g-everett/framecast/stream"
	"golang.org/x/term"
)

type app struct {
	config   config.Config
	logger   *slog.Logger
	registry *scene.Registry
}

func newApp(cfg config.Config, logger *slog.Logger) *app {
	a := new(app)
	a.config = cfg
	a.logger = logger
	a.registry = compositions.Default()
	return a
}

func (a *app) list() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFRAMES\tFPS\tSIZE\tQUALITY")
	for _, c := range a.registry.Contracts() {
		fmt.Fprintf(w, "%s\t%d\t%d\t%dx%d\t%s\n", c.ID, c.DurationInFrames, c.FPS, c.Width, c.Height, c.Defaults.Quality)
	}
	w.Flush()
}

func (a *app) serve(ctx context.Context, static string) error {
	rz, err := raster.NewRasterizer()
	if err != nil {
		return err
	}
	defer rz.Close()
	return api.NewApi(a.registry, rz, static, a.logger).Serve(ctx, a.config.Server.Addr)
}

func (a *app) connect() (mqtt.Client, error) {
	m := a.config.Mqtt
	options := mqtt.NewClientOptions().
		AddBroker(m.URL).
		SetClientID(m.ClientID).
		SetUsername(m.Username).
		SetPassword(m.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(func(mqtt.Client) {
			a.logger.Info("connected", "broker", m.URL)
		})
	client := mqtt.NewClient(options)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return client, nil
}

// backend builds the configured backend. The returned cleanup runs after the
// render whatever its outcome.
func (a *app) backend(ctx context.Context, c scene.Contract, cancel context.CancelFunc) (render.Backend, func(), error) {
	rz, err := raster.NewRasterizer()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { rz.Close() }

	namer := render.Namer{Dir: a.config.Output.Dir, Name: a.config.Output.Name}
	switch a.config.Render.Backend {
	case "ffmpeg", "png":
		if err := os.MkdirAll(namer.Dir, 0o755); err != nil {
			cleanup()
			return nil, nil, err
		}
		if a.config.Render.Backend == "png" {
			namer.Ext = "_png"
		}
		path, err := namer.Path(c)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		a.logger.Info("output", "path", path)
		if a.config.Render.Backend == "png" {
			return &raster.PNGSequence{Dir: path, Raster: rz}, cleanup, nil
		}
		f := a.config.FFmpeg
		return &raster.FFmpeg{
			Path:    path,
			Raster:  rz,
			Binary:  f.Binary,
			Codec:   f.Codec,
			PixFmt:  f.PixFmt,
			Flags:   f.Flags,
			Context: ctx,
			Logger:  a.logger,
		}, cleanup, nil

	case "mqtt":
		client, err := a.connect()
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("mqtt: %w", err)
		}
		return stream.NewStreamer(a.config.Mqtt, client, a.logger), func() {
			client.Disconnect(250)
			cleanup()
		}, nil

	case "preview":
		screen, err := tcell.NewScreen()
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if err := screen.Init(); err != nil {
			cleanup()
			return nil, nil, err
		}
		return &preview.Terminal{
			Screen:   screen,
			Raster:   rz,
			Realtime: a.config.Preview.Realtime,
			Cancel:   cancel,
			Logger:   a.logger,
		}, cleanup, nil
	}
	cleanup()
	return nil, nil, fmt.Errorf("unknown backend %q", a.config.Render.Backend)
}

func (a *app) render(ctx context.Context) error {
	r := a.config.Render
	if r.Composition == "" {
		return errors.New("no composition given, use -composition or -list")
	}
	c, err := a.registry.Contract(r.Composition)
	if err != nil {
		return err
	}
	cfg := c.Defaults
	if r.Quality != "" {
		cfg.Quality = r.Quality
	}
	if r.Easing != "" {
		cfg.Easing = r.Easing
	}
	c, comp, err := a.registry.ResolveWith(r.Composition, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	backend, cleanup, err := a.backend(ctx, c, cancel)
	if err != nil {
		return err
	}
	defer cleanup()

	a.logger.Info("render", "composition", c.ID, "quality", cfg.Quality, "backend", r.Backend)
	job := &render.Job{
		Contract: c,
		Composer: comp,
		Backend:  backend,
		Workers:  r.Workers,
		Logger:   a.logger,
	}
	if r.Backend != "preview" && term.IsTerminal(int(os.Stderr.Fd())) {
		job.Progress = func(done, total int) {
			fmt.Fprintf(os.Stderr, "\r%s %d/%d", c.ID, done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}
	return job.Run(ctx)
}

// newLogger builds the text logger at the configured level.
func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func main() {
	configPath := flag.String("config", "", "YAML config file.")
	composition := flag.String("composition", "", "Composition to render.")
	backend := flag.String("backend", "", "Render backend: ffmpeg, png, mqtt or preview.")
	quality := flag.String("quality", "", "Quality tier: draft or final.")
	easing := flag.String("easing", "", "Entrance easing of the chart reveals, such as out-back.")
	out := flag.String("out", "", "Output directory.")
	name := flag.String("name", "", "Output file name prefix, the composition id by default.")
	workers := flag.Int("workers", 0, "Frame evaluation workers, one per CPU by default.")
	list := flag.Bool("list", false, "List compositions and exit.")
	serve := flag.Bool("serve", false, "Serve the HTTP scrubbing API.")
	static := flag.String("static", "", "Directory served at / with -serve.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "composition":
			cfg.Render.Composition = *composition
		case "backend":
			cfg.Render.Backend = *backend
		case "out":
			cfg.Output.Dir = *out
		case "name":
			cfg.Output.Name = *name
		case "workers":
			cfg.Render.Workers = *workers
		case "easing":
			cfg.Render.Easing = *easing
		}
	})
	if *quality != "" {
		q, err := scene.ParseQuality(*quality)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg.Render.Quality = q
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(logger)
	gg.SetLogger(logger)
	mqtt.ERROR = slog.NewLogLogger(logger.Handler(), slog.LevelError)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg, logger)
	switch {
	case *list:
		a.list()
	case *serve:
		err = a.serve(ctx, *static)
	default:
		err = a.render(ctx)
	}
	if err != nil {
		var missing *render.RenderOutputMissingError
		if errors.As(err, &missing) {
			logger.Error("render finished without output", "path", missing.Path)
		} else {
			logger.Error("failed", "err", err)
		}
		stop()
		os.Exit(1)
	}
}
