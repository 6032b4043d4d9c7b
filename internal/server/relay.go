package server

import (
	"github.com/exovance/site/internal/config"
	"github.com/exovance/site/internal/logging"
	"github.com/exovance/site/internal/relay"
	"github.com/exovance/site/internal/relay/emailjs"
)

// NewRelay builds the configured mail relay. Dry-run mode never leaves the process.
func NewRelay(cfg *config.Config, observer emailjs.Observer, logger *logging.Logger) relay.Relay {
	if cfg.RelayDryRun {
		return relay.DryRun{Log: logger.Info}
	}

	opts := []emailjs.Option{emailjs.WithBaseURL(cfg.EmailJSBaseURL)}
	if observer != nil {
		opts = append(opts, emailjs.WithObserver(observer))
	}
	return emailjs.NewClient(cfg.RelayTimeout, opts...)
}
