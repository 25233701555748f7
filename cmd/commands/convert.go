// SPDX-License-Identifier: MIT

package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ldblocks/internal/config"
	"github.com/katalvlaran/ldblocks/internal/fsutil"
	"github.com/katalvlaran/ldblocks/internal/logging"
	"github.com/katalvlaran/ldblocks/ldstore"
)

func NewConvertCommand() *cobra.Command {
	var (
		input   string
		output  string
		useFloat64 bool
	)

	command := &cobra.Command{
		Use:   "convert",
		Short: "Convert a whitespace-separated text LD matrix into a matrix store",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			ctx, conf, err := setup(cmd)
			if err != nil {
				return err
			}
			logger := logging.FromContext(ctx)

			if err = fsutil.CheckInputFiles(input); err != nil {
				return err
			}
			if err = fsutil.EnsureOutputDir(output); err != nil {
				return err
			}
			logger.Infow("Input", "text", input)

			m, err := ldstore.ReadTextFile(input)
			if err != nil {
				return err
			}
			dtype := ldstore.Float32
			if useFloat64 {
				dtype = ldstore.Float64
			}
			if err = ldstore.WriteFile(output, m, ldstore.WithDType(dtype), ldstore.WithDataset(conf.Dataset)); err != nil {
				return err
			}

			r, c := m.Shape()
			logger.Infow("Output", "store", output, "rows", r, "cols", c, "dtype", dtype.String())
			logElapsed(logger, start)
			return nil
		},
	}
	command.Flags().StringVarP(&input, "input", "i", "", "Path to the text matrix (one row per line)")
	command.Flags().StringVarP(&output, "output", "o", "", "Path to save the matrix store (.ldm)")
	command.Flags().BoolVar(&useFloat64, "float64", false, "Store values as float64 instead of float32")
	command.Flags().String(config.KeyDataset, "r2", "Dataset name to store the matrix under")
	_ = command.MarkFlagRequired("input")
	_ = command.MarkFlagRequired("output")
	return command
}
