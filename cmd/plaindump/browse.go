package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rawbytedev/plain/pkg/mmapview"
)

var errNotTerminal = errors.New("browse needs an interactive terminal; use view instead")

func newBrowseCommand(a *app) *cobra.Command {
	var typeName string
	cmd := &cobra.Command{
		Use:   "browse FILE",
		Short: "Page through the records of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errNotTerminal
			}
			v, err := lookupType(typeName, a.cfg.floatPolicy)
			if err != nil {
				return err
			}
			m, err := mmapview.Open(args[0])
			if err != nil {
				return err
			}
			defer m.Close()

			h, lines, err := v.Records(m.Bytes())
			if err != nil {
				return err
			}
			title := fmt.Sprintf("%s: %d %s records", args[0], h.Count, v.Name())
			_, err = tea.NewProgram(newPager(title, lines), tea.WithAltScreen()).Run()
			return err
		},
	}
	addTypeFlag(cmd.Flags(), &typeName, "record type")
	return cmd
}

type pager struct {
	title string
	vp    viewport.Model
	ready bool
}

func newPager(title string, lines []string) *pager {
	vp := viewport.New(80, 20)
	vp.SetContent(strings.Join(lines, "\n"))
	return &pager{title: title, vp: vp}
}

func (p *pager) Init() tea.Cmd {
	return nil
}

func (p *pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return p, tea.Quit
		}
	case tea.WindowSizeMsg:
		// Title and footer take one line each.
		p.vp.Width = msg.Width
		p.vp.Height = max(msg.Height-2, 1)
		p.ready = true
	}

	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return p, cmd
}

func (p *pager) View() string {
	if !p.ready {
		return titleStyle.Render(p.title) + "\n" + helpStyle.Render("loading...")
	}
	footer := helpStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll  q quit", p.vp.ScrollPercent()*100))
	return titleStyle.Render(p.title) + "\n" + p.vp.View() + "\n" + footer
}
