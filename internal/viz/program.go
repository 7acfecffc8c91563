package viz

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/trace"
)

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// Forwarder is a trace.Observer that feeds Events to a running program.
type Forwarder struct {
	sender Sender
}

func NewForwarder(s Sender) *Forwarder {
	return &Forwarder{sender: s}
}

func (f *Forwarder) OnStep(ev trace.Event) {
	f.sender.Send(StepMsg(ev))
}

type Options struct {
	// ConfigPath is watched for changes when set.
	ConfigPath string
	OnResult   func(*session.Result)
	Logger     zerolog.Logger
	AltScreen  bool
}

// Run starts the interactive UI over ctrl and blocks until the user quits.
func Run(ctrl *session.Controller, cfg *config.Config, opts Options) error {
	m := NewModel(ctrl, cfg).OnResult(opts.OnResult)

	var progOpts []tea.ProgramOption
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, progOpts...)
	ctrl.AddObserver(NewForwarder(p))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if opts.ConfigPath != "" {
		go func() {
			err := config.Watch(ctx, opts.ConfigPath, func(c *config.Config, err error) {
				if err != nil {
					opts.Logger.Warn().Err(err).Str("path", opts.ConfigPath).Msg("config reload failed")
				} else {
					opts.Logger.Info().Str("path", opts.ConfigPath).Msg("config reloaded")
				}
				p.Send(ConfigMsg{Config: c, Err: err})
			})
			if err != nil {
				opts.Logger.Warn().Err(err).Msg("config watch stopped")
			}
		}()
	}

	_, err := p.Run()
	ctrl.Stop()
	return err
}
