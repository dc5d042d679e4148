package webhook

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/config"
)

// Module exposes the event sender to fx graph.
var Module = fx.Provide(newSender)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) (Sender, error) {
	if p.Config.NotifyWebhookURL == "" {
		return NewLogSender(p.Logger), nil
	}
	client, err := NewHTTPClient(p.Config.NotifyWebhookURL, p.Logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}
