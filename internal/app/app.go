package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Ampersand-S/dfpy/internal/ctxlog"
	"github.com/Ampersand-S/dfpy/internal/fsutil"
	"github.com/Ampersand-S/dfpy/internal/hcltmpl"
	"github.com/Ampersand-S/dfpy/pyre/codec"
	"github.com/Ampersand-S/dfpy/pyre/recode"
	"github.com/Ampersand-S/dfpy/pyre/tagdata"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	store  *tagdata.Store
	loader *hcltmpl.Loader
	client *recode.Client
}

// NewApp constructs a fully initialized App with its own isolated logger.
// The tag table is loaded eagerly; its absence is a warning, not a failure.
func NewApp(outW io.Writer, errW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	return &App{
		outW:   outW,
		logger: logger,
		store:  tagdata.Load(ctx, cfg.DataPath),
		loader: hcltmpl.NewLoader(),
		client: &recode.Client{Addr: cfg.Addr},
	}
}

// Run compiles every template under cfg.TemplatePath, assembles and encodes
// each one, prints the artifacts, and optionally delivers them. A build
// error fails the run; an unreachable or rejecting delivery endpoint is
// reported and the run continues, since the artifact already exists.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	files, err := fsutil.CollectFiles(cfg.TemplatePath, ".hcl")
	if err != nil {
		return fmt.Errorf("resolving template path: %w", err)
	}

	compiled, err := a.loader.Load(ctx, files...)
	if err != nil {
		return err
	}
	if len(compiled) == 0 {
		return fmt.Errorf("no template blocks found in %d file(s)", len(files))
	}

	for _, c := range compiled {
		doc := c.Template.Assemble(ctx, a.store)
		art, err := codec.Encode(ctx, doc)
		if err != nil {
			return fmt.Errorf("encoding template %q from %s: %w", c.Name, c.Source, err)
		}
		fmt.Fprintf(a.outW, "%s\t%s\n", art.Name, art.Code)

		if !cfg.Send {
			continue
		}
		if err := a.client.Send(ctx, art); err != nil {
			if errors.Is(err, recode.ErrUnavailable) {
				a.logger.Error("could not reach the recode item API; is Minecraft open?",
					"template", art.Name, "error", err)
			} else {
				a.logger.Error("template delivery failed", "template", art.Name, "error", err)
			}
		}
	}
	return nil
}
