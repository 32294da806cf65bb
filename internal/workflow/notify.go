package workflow

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/carpetaciudadana/co/internal/config"
	"github.com/carpetaciudadana/co/internal/transport"
	"github.com/carpetaciudadana/co/pkg/audit"
	"github.com/carpetaciudadana/co/pkg/envelope"
)

// Notifier is the registry notification stage. It heals verification results
// coming off the identity response queue and forwards them, canonical tag and
// all, to the national registry mock.
type Notifier struct {
	cfg      *config.Config
	audit    audit.Appender
	dispatch Dispatcher
	log      zerolog.Logger
}

func NewNotifier(cfg *config.Config, appender audit.Appender, dispatch Dispatcher) *Notifier {
	return &Notifier{
		cfg:      cfg,
		audit:    appender,
		dispatch: dispatch,
		log:      zlog.With().Str("stage", "notify").Logger(),
	}
}

func (n *Notifier) Handle(ctx context.Context, body []byte) error {
	env, err := envelope.Normalize(body, envelope.ResourceResultadoVerificacion)
	if err != nil {
		return err
	}

	log := n.log.With().Str("transaction", env.TransactionID).Logger()

	if err := n.audit.Append(ctx, env.TransactionID, StepVerifyResultReceived, env); err != nil {
		return fmt.Errorf("failed to record verification result: %w", err)
	}

	if err := n.dispatch.Dispatch(ctx, transport.Direct(n.cfg.RegistryNoticeTopic), env); err != nil {
		return fmt.Errorf("failed to forward verification result: %w", err)
	}

	if err := n.audit.Append(ctx, env.TransactionID, StepVerifyResultSent, env); err != nil {
		return fmt.Errorf("failed to record forwarded result: %w", err)
	}

	log.Info().Str("estado", env.StringField("estado")).Msg("registry notified")
	return nil
}
