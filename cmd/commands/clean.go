// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ldblocks/annotation"
	"github.com/katalvlaran/ldblocks/internal/config"
	"github.com/katalvlaran/ldblocks/internal/fsutil"
	"github.com/katalvlaran/ldblocks/internal/logging"
	"github.com/katalvlaran/ldblocks/ldstore"
	"github.com/katalvlaran/ldblocks/matrix"
	"github.com/katalvlaran/ldblocks/report"
)

// File name suffixes used by clean, relative to --prefix.
const (
	extMatrix  = ".ldm"
	extBIM     = ".bim"
	extCleaned = ".cleaned.ldm"
	extMarkers = ".snp"
)

// symmetryTol bounds |r2[i,j] - r2[j,i]| for a matrix clean accepts.
const symmetryTol = 1e-6

func NewCleanCommand() *cobra.Command {
	var prefix string

	command := &cobra.Command{
		Use:   "clean",
		Short: "Drop markers whose LD row is entirely NaN",
		Long: `clean reads <prefix>.ldm and <prefix>.bim, removes every marker whose row of
the matrix is all NaN, and writes <prefix>.cleaned.ldm with the kept markers.
<prefix>.snp always lists the kept marker IDs; when nothing is removed no new
matrix is written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, prefix)
		},
	}
	command.Flags().StringVarP(&prefix, "prefix", "p", "", "Path prefix of the .ldm and .bim input files")
	command.Flags().String(config.KeyDataset, "r2", "Dataset name inside the matrix store")
	_ = command.MarkFlagRequired("prefix")
	return command
}

func runClean(cmd *cobra.Command, prefix string) error {
	start := time.Now()
	ctx, conf, err := setup(cmd)
	if err != nil {
		return err
	}
	logger := logging.FromContext(ctx)

	in, bimFile := prefix+extMatrix, prefix+extBIM
	if err = fsutil.CheckInputFiles(in, bimFile); err != nil {
		return err
	}
	logger.Infow("Input", "matrix", in, "bim", bimFile)

	store, err := ldstore.Open(in, conf.Dataset)
	if err != nil {
		return err
	}
	dtype := store.Header().DType
	m, err := store.Load()
	if cerr := store.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if err = matrix.ValidateSymmetric(m, symmetryTol); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	rows, err := annotation.LoadBIM(bimFile)
	if err != nil {
		return err
	}
	if err = annotation.CheckRows(rows, m.Rows()); err != nil {
		return err
	}

	res, err := matrix.DropNaN(m)
	if err != nil {
		return err
	}
	logger.Infow("NaN rows removed", "removed", res.Removed, "kept", len(res.Kept), "remaining-nan", res.RemainingNaN)

	ids := make([]string, len(res.Kept))
	for i, k := range res.Kept {
		ids[i] = rows[k].VariantID
	}
	if res.Removed > 0 {
		out := prefix + extCleaned
		if err = ldstore.WriteFile(out, res.Matrix, ldstore.WithDType(dtype), ldstore.WithDataset(conf.Dataset)); err != nil {
			return err
		}
		logger.Infow("Output", "matrix", out)
	}
	if err = report.WriteFile(prefix+extMarkers, func(w io.Writer) error {
		return report.WriteMarkerIDs(w, ids)
	}); err != nil {
		return err
	}
	logger.Infow("Output", "markers", prefix+extMarkers)
	logElapsed(logger, start)
	return nil
}
