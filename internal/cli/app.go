package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/useray/internal/config"
	"github.com/dmitrijs2005/useray/internal/logging"
	"github.com/dmitrijs2005/useray/internal/models"
	"golang.org/x/term"
)

// Engine is the slice of services.SyncEngine the shell drives.
type Engine interface {
	AddClient(ctx context.Context, c *models.Client) error
	ExtendClient(ctx context.Context, id string, delta time.Duration) error
	RevokeClient(ctx context.Context, id string) error
	ReinstateClient(ctx context.Context, id string) error
	UpdateClient(ctx context.Context, id string, c *models.Client) error
	ListExpired(ctx context.Context) []*models.Client
	ClearExpired(ctx context.Context) (int, error)
	Get(id string) (*models.Client, bool)
	List() []*models.Client
	Enforced(id string) bool
}

// timeNow and isTerminal can be overridden in tests.
var timeNow = time.Now

var isTerminal = term.IsTerminal

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return isTerminal(int(f.Fd()))
}

type App struct {
	config      *config.Config
	engine      Engine
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewApp builds a shell reading commands from in and writing to out. When
// interactive is false, prompts and confirmations are skipped so the shell
// can be driven by a script.
func NewApp(cfg *config.Config, engine Engine, log logging.Logger, in io.Reader, out io.Writer, interactive bool) *App {
	return &App{
		config:      cfg,
		engine:      engine,
		log:         log.With("component", "shell"),
		reader:      bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Run blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	if a.interactive {
		fmt.Fprintln(a.out, "Welcome to useray (type 'help' for commands)")
	}
	runREPL(ctx, a, a.reader, a.out, a.interactive)
}

// report prints err for the operator and logs it; it returns err unchanged.
func (a *App) report(ctx context.Context, op string, err error) error {
	if err != nil {
		a.log.Error(ctx, "command failed", "op", op, "error", err)
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
	return err
}
