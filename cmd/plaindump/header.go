package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rawbytedev/plain/pkg/mmapview"
	"github.com/rawbytedev/plain/pkg/recfile"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func newHeaderCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "header FILE",
		Short: "Print the header of a record file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mmapview.Open(args[0])
			if err != nil {
				return err
			}
			defer m.Close()

			h, err := recfile.ParseHeader(m.Bytes())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHeader(args[0], h))
			return nil
		},
	}
}

func renderHeader(title string, h *recfile.Header) string {
	compression := "none"
	if h.Compressed() {
		compression = "zstd"
	}
	rows := [][2]string{
		{"magic", fmt.Sprintf("%#08x", h.Magic)},
		{"version", fmt.Sprint(h.Version)},
		{"flags", fmt.Sprintf("%#04x", h.Flags)},
		{"record size", fmt.Sprint(h.RecordSize)},
		{"record align", fmt.Sprint(h.RecordAlign)},
		{"count", fmt.Sprint(h.Count)},
		{"body", fmt.Sprintf("%d bytes (%s)", h.BodySize, compression)},
		{"checksum", fmt.Sprintf("%#08x", h.Checksum)},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(keyStyle.Render(r[0]))
		b.WriteString(valueStyle.Render(r[1]))
	}
	return b.String()
}
