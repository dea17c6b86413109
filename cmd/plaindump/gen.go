package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rawbytedev/plain/pkg/recfile"
)

type genOptions struct {
	typeName string
	count    int
	zstd     bool
}

func newGenCommand(a *app) *cobra.Command {
	var opts genOptions
	cmd := &cobra.Command{
		Use:   "gen FILE",
		Short: "Write a record file of sequential values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, a, opts, args[0])
		},
	}
	flags := cmd.Flags()
	addTypeFlag(flags, &opts.typeName, "record type")
	flags.IntVarP(&opts.count, "count", "n", 16, "number of records")
	flags.BoolVar(&opts.zstd, "zstd", false, "compress the body with zstd")
	return cmd
}

func runGen(cmd *cobra.Command, a *app, opts genOptions, path string) error {
	if opts.count < 0 {
		return errors.Errorf("invalid --count %d", opts.count)
	}
	v, err := lookupType(opts.typeName, a.cfg.floatPolicy)
	if err != nil {
		return err
	}

	var encOpts []recfile.Option
	if opts.zstd {
		encOpts = append(encOpts, recfile.WithCompression())
	}
	data, err := v.Generate(opts.count, encOpts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write record file")
	}

	a.log.Debug("wrote record file",
		zap.String("path", path),
		zap.String("type", v.Name()),
		zap.Int("records", opts.count),
		zap.Int("bytes", len(data)))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d %s records (%d bytes) to %s\n", opts.count, v.Name(), len(data), path)
	return nil
}
