// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/katalvlaran/ldblocks/annotation"
	"github.com/katalvlaran/ldblocks/features"
	"github.com/katalvlaran/ldblocks/internal/config"
	"github.com/katalvlaran/ldblocks/internal/fsutil"
	"github.com/katalvlaran/ldblocks/internal/logging"
	"github.com/katalvlaran/ldblocks/partition"
	"github.com/katalvlaran/ldblocks/report"
)

type featuresOptions struct {
	input   string
	output  string
	matrix  string
	bimFile string
}

func NewFeaturesCommand() *cobra.Command {
	o := &featuresOptions{}

	command := &cobra.Command{
		Use:   "features",
		Short: "Count density and length features of partitioned blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}
	command.Flags().StringVarP(&o.input, "input", "i", "", "Path to the block labels (index label)")
	command.Flags().StringVarP(&o.output, "output", "o", "", "Path to save the feature table")
	command.Flags().StringVarP(&o.matrix, "matrix", "m", "", "Path to the LD matrix store (.ldm)")
	command.Flags().StringVarP(&o.bimFile, "bim", "b", "", "Path to the PLINK .bim file, adds block length")
	command.Flags().Float64(config.KeyR2, features.DefaultR2, "Minimal r2 value to estimate density of blocks")
	command.Flags().String(config.KeyBacking, config.BackingMmap, "Matrix backing: mmap or dense")
	command.Flags().String(config.KeyDataset, "r2", "Dataset name inside the matrix store")
	_ = command.MarkFlagRequired("input")
	_ = command.MarkFlagRequired("output")
	_ = command.MarkFlagRequired("matrix")
	return command
}

func (o *featuresOptions) run(cmd *cobra.Command) (err error) {
	start := time.Now()
	ctx, conf, err := setup(cmd)
	if err != nil {
		return err
	}
	logger := logging.FromContext(ctx)

	if err = fsutil.CheckInputFiles(o.input, o.matrix, o.bimFile); err != nil {
		return err
	}
	if err = fsutil.EnsureOutputDir(o.output); err != nil {
		return err
	}
	logger.Infow("Input", "labels", o.input, "matrix", o.matrix, "bim", o.bimFile, "r2", conf.R2)
	logger.Infow("Output", "features", o.output)

	labels, err := report.ReadLabelsFile(o.input)
	if err != nil {
		return err
	}
	src, err := openMatrix(ctx, o.matrix, conf)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, src.Close()) }()

	if err = partition.Verify(labels, src.Rows()); err != nil {
		return fmt.Errorf("%s: %w", o.input, err)
	}
	spans, err := partition.SpansFromLabels(labels)
	if err != nil {
		return err
	}
	logger.Infow("Number of blocks", "blocks", len(spans))

	var rows []annotation.BIMRow
	if o.bimFile != "" {
		if rows, err = annotation.LoadBIM(o.bimFile); err != nil {
			return err
		}
	}
	feats, err := features.Compute(src, spans, conf.R2, rows)
	if err != nil {
		return err
	}

	if err = report.WriteFile(o.output, func(w io.Writer) error {
		return report.WriteFeatures(w, feats)
	}); err != nil {
		return err
	}
	logElapsed(logger, start)
	return nil
}
