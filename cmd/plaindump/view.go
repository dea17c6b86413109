package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rawbytedev/plain/pkg/mmapview"
)

type viewOptions struct {
	typeName string
	raw      bool
	offset   int
	count    int
	dump     bool
}

func newViewCommand(a *app) *cobra.Command {
	var opts viewOptions
	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Print the values of a file in place",
		Long: "View decodes a record file. With --raw it views the bytes at --offset\n" +
			"as values of --type directly; the offset must suit the type's alignment.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, a, opts, args[0])
		},
	}
	flags := cmd.Flags()
	addTypeFlag(flags, &opts.typeName, "value type")
	flags.BoolVar(&opts.raw, "raw", false, "view bytes directly instead of decoding a record file")
	flags.IntVar(&opts.offset, "offset", 0, "byte offset for --raw")
	flags.IntVarP(&opts.count, "count", "n", -1, "number of values for --raw; -1 takes every whole value")
	flags.BoolVar(&opts.dump, "dump", false, "dump values with go-spew")
	return cmd
}

func runView(cmd *cobra.Command, a *app, opts viewOptions, path string) error {
	v, err := lookupType(opts.typeName, a.cfg.floatPolicy)
	if err != nil {
		return err
	}
	m, err := mmapview.Open(path)
	if err != nil {
		return err
	}
	defer m.Close()
	a.log.Debug("mapped file", zap.String("path", path), zap.Int("bytes", m.Len()))

	out := cmd.OutOrStdout()
	if !opts.raw {
		if opts.dump {
			s, err := v.DumpRecords(m.Bytes())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, s)
			return err
		}
		h, lines, err := v.Records(m.Bytes())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d %s records\n", h.Count, v.Name())
		for _, l := range lines {
			fmt.Fprintln(out, l)
		}
		return nil
	}

	data := m.Bytes()
	if opts.offset < 0 || opts.offset > len(data) {
		return errors.Errorf("--offset %d outside file of %d bytes", opts.offset, len(data))
	}
	data = data[opts.offset:]

	if opts.dump {
		s, err := v.Dump(data, opts.count)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, s)
		return err
	}
	lines, err := v.Lines(data, opts.count)
	if err != nil {
		return err
	}
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	return nil
}
