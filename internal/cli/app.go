// Package cli is the command-line front end of the training module
// repository. Each invocation runs exactly one command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/trainingkeeper/internal/logging"
	"github.com/dmitrijs2005/trainingkeeper/internal/models"
	"github.com/dmitrijs2005/trainingkeeper/internal/repositories/modules"
	"golang.org/x/term"
)

// ErrUsage marks a malformed command line.
var ErrUsage = errors.New("usage")

// ModuleRepository is the subset of the modules repository the commands use.
type ModuleRepository interface {
	ListOutcome(ctx context.Context) modules.Outcome[[]models.TrainingModule]
	Get(ctx context.Context, id string) (*models.TrainingModule, error)
	Create(ctx context.Context, b models.ModuleBuilder) error
	Update(ctx context.Context, patch models.ModulePatch) error
	Delete(ctx context.Context, ids []string) error
	SwapOrder(ctx context.Context, id1, id2 string) error
	UpdateProgress(ctx context.Context, id string, lastStep int, completed bool) error
	Import(ctx context.Context, archives [][]byte) ([]models.PersistedModule, error)
	Export(ctx context.Context, ids []string) ([]byte, error)
	ResetDefaultValue(ctx context.Context, ids []string) error
	SyncTranslations(ctx context.Context, id string) modules.Outcome[*models.PersistedModule]
}

type App struct {
	repo       ModuleRepository
	logger     logging.Logger
	out        io.Writer
	isTerminal func() bool
}

// NewApp writes to stdout; tables are used only when stdout is a terminal.
func NewApp(repo ModuleRepository, logger logging.Logger) *App {
	return &App{
		repo:   repo,
		logger: logger.With("component", "cli"),
		out:    os.Stdout,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

func usage(synopsis string) error {
	return fmt.Errorf("%w: %s", ErrUsage, synopsis)
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}
