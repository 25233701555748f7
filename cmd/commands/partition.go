// SPDX-License-Identifier: MIT

package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/katalvlaran/ldblocks/annotation"
	"github.com/katalvlaran/ldblocks/det"
	"github.com/katalvlaran/ldblocks/internal/config"
	"github.com/katalvlaran/ldblocks/internal/fsutil"
	"github.com/katalvlaran/ldblocks/internal/logging"
	"github.com/katalvlaran/ldblocks/partition"
	"github.com/katalvlaran/ldblocks/report"
)

var errAnnotatedWithoutBIM = errors.New("--annotated requires --bim")

// Determinant kernels selectable with --evaluator.
const (
	evaluatorLU     = "lu"
	evaluatorNative = "native"
)

// partitionOptions holds the partition flags that are not config keys.
type partitionOptions struct {
	input          string
	output         string
	blocksReport   string
	bimFile        string
	annotated      string
	boundariesOnly bool
	trm2           bool
	evaluator      string
}

func NewPartitionCommand() *cobra.Command {
	o := &partitionOptions{}

	command := &cobra.Command{
		Use:   "partition",
		Short: "Partition an LD matrix into blocks by determinant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}
	command.Flags().StringVarP(&o.input, "input", "i", "", "Path to the LD matrix store (.ldm)")
	command.Flags().StringVarP(&o.output, "output", "o", "", "Path to save block labels (index label)")
	command.Flags().StringVar(&o.blocksReport, "report", "", "Path to save the block report (block start end sign logdet)")
	command.Flags().StringVarP(&o.bimFile, "bim", "b", "", "Path to the PLINK .bim file describing the markers")
	command.Flags().StringVar(&o.annotated, "annotated", "", "Path to save the annotated CSV report (default: <output>.csv when --bim is set)")
	command.Flags().BoolVar(&o.boundariesOnly, "boundaries-only", false, "Keep only the first and last marker of each block in the annotated report")
	command.Flags().Float64P(config.KeyMinDet, "d", 0.001, "Minimal determinant value")
	command.Flags().BoolVarP(&o.trm2, "trm2", "t", false, "Accepted for compatibility, has no effect")
	command.Flags().String(config.KeyBacking, config.BackingMmap, "Matrix backing: mmap or dense")
	command.Flags().String(config.KeyDataset, "r2", "Dataset name inside the matrix store")
	command.Flags().StringVar(&o.evaluator, "evaluator", evaluatorLU, "Determinant kernel: lu or native")
	_ = command.MarkFlagRequired("input")
	_ = command.MarkFlagRequired("output")
	return command
}

func (o *partitionOptions) run(cmd *cobra.Command) (err error) {
	start := time.Now()
	ctx, conf, err := setup(cmd)
	if err != nil {
		return err
	}
	logger := logging.FromContext(ctx)

	annotated := o.annotated
	if annotated == "" && o.bimFile != "" {
		annotated = strings.TrimSuffix(o.output, filepath.Ext(o.output)) + ".csv"
	}
	if annotated != "" && o.bimFile == "" {
		return errAnnotatedWithoutBIM
	}
	ev, err := newEvaluator(o.evaluator)
	if err != nil {
		return err
	}
	if err = fsutil.CheckInputFiles(o.input, o.bimFile); err != nil {
		logger.Errorw("Missing input", zap.Error(err))
		return err
	}
	if err = fsutil.EnsureOutputDir(o.output, o.blocksReport, annotated); err != nil {
		return err
	}

	logger.Infow("Input", "matrix", o.input, "bim", o.bimFile, "min-det", conf.MinDet, "evaluator", o.evaluator)
	logger.Infow("Output", "labels", o.output, "report", o.blocksReport, "annotated", annotated)
	if o.trm2 {
		logger.Warn("--trm2 is accepted for compatibility and ignored")
	}

	src, err := openMatrix(ctx, o.input, conf)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, src.Close()) }()

	var rows []annotation.BIMRow
	if o.bimFile != "" {
		if rows, err = annotation.LoadBIM(o.bimFile); err != nil {
			return err
		}
		if err = annotation.CheckRows(rows, src.Rows()); err != nil {
			logger.Errorw("Different number of lines in matrix and bim file", zap.Error(err))
			return err
		}
	}

	res, err := partition.Run(src, ev,
		partition.WithMinDet(conf.MinDet),
		partition.WithProgress(progressLogger(logger)),
		partition.WithLogger(logger))
	if err != nil {
		return err
	}

	var ann []annotation.Row
	if rows != nil {
		if ann, err = annotation.Annotate(res.Labels(), rows); err != nil {
			return err
		}
		if o.boundariesOnly {
			ann = annotation.Boundaries(ann)
		}
	}

	if err = writeOutputs(res, ann, o.output, o.blocksReport, annotated); err != nil {
		return err
	}
	logger.Infow("Number of blocks", "blocks", res.NumBlocks(), "markers", res.Len())
	logElapsed(logger, start)
	return nil
}

func newEvaluator(name string) (det.Evaluator, error) {
	switch name {
	case evaluatorLU:
		return det.NewLU(), nil
	case evaluatorNative:
		return det.NewNative(), nil
	default:
		return nil, fmt.Errorf("unsupported evaluator %q", name)
	}
}

// writeOutputs renders every requested table from the finished result.
func writeOutputs(res *partition.Result, ann []annotation.Row, labelsPath, blocksPath, annotatedPath string) error {
	if err := report.WriteFile(labelsPath, func(w io.Writer) error {
		return report.WriteLabels(w, res.Labels())
	}); err != nil {
		return err
	}
	if blocksPath != "" {
		if err := report.WriteFile(blocksPath, func(w io.Writer) error {
			return report.WriteBlocks(w, res.Blocks())
		}); err != nil {
			return err
		}
	}
	if annotatedPath != "" {
		return report.WriteFile(annotatedPath, func(w io.Writer) error {
			return report.WriteAnnotated(w, ann)
		})
	}
	return nil
}
