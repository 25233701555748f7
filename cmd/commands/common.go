// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/ldblocks/internal/config"
	"github.com/katalvlaran/ldblocks/internal/fsutil"
	"github.com/katalvlaran/ldblocks/internal/logging"
	"github.com/katalvlaran/ldblocks/ldstore"
	"github.com/katalvlaran/ldblocks/matrix"
)

const (
	flagConfig = "config"
	flagDebug  = "debug"
)

// setup resolves the configuration of cmd and returns a context carrying
// a logger named after the command.
func setup(cmd *cobra.Command) (context.Context, *config.Config, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, nil, err
	}
	var path string
	if f := cmd.Flags().Lookup(flagConfig); f != nil {
		path = f.Value.String()
	}
	conf, err := config.Load(v, path)
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.NewLogger(conf.Debug).Named(cmd.Name())

	return logging.WithLogger(ctx, logger), conf, nil
}

// source is an opened matrix plus whatever must be released afterwards.
type source struct {
	matrix.Accessor
	close func() error
}

func (s *source) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// openMatrix opens path with the configured backing: a lazy mmap store, or
// the whole matrix decoded into memory.
func openMatrix(ctx context.Context, path string, conf *config.Config) (*source, error) {
	store, err := ldstore.Open(path, conf.Dataset)
	if err != nil {
		return nil, err
	}
	h := store.Header()
	logging.FromContext(ctx).Infow("Matrix opened",
		"path", path, "rows", h.Rows, "cols", h.Cols, "dtype", h.DType.String(), "backing", conf.Backing)

	if conf.Backing == config.BackingMmap {
		return &source{Accessor: store, close: store.Close}, nil
	}
	dense, err := store.Load()
	if cerr := store.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &source{Accessor: dense}, nil
}

// progressLogger logs every 10% of total.
func progressLogger(logger *zap.SugaredLogger) func(done, total int) {
	return func(done, total int) {
		step := total / 10
		if step == 0 {
			step = 1
		}
		if done%step == 0 || done == total {
			logger.Infow("Progress", "done", done, "total", total, "percent", 100*done/total)
		}
	}
}

// logElapsed logs the time spent since start.
func logElapsed(logger *zap.SugaredLogger, start time.Time) {
	logger.Infof("Time spent: %s", fsutil.FormatElapsed(time.Since(start)))
}
