package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/carpetaciudadana/co/internal/config"
	"github.com/carpetaciudadana/co/internal/transport"
	"github.com/carpetaciudadana/co/pkg/audit"
	"github.com/carpetaciudadana/co/pkg/envelope"
)

// EstadoAceptado is the only outcome the national registry mock produces.
const EstadoAceptado = "Aceptado"

// MinTIC is the national registry acceptance mock. After a simulated delay it
// always accepts; there is no branching here, unlike the identity mock.
type MinTIC struct {
	cfg      *config.Config
	audit    audit.Appender
	dispatch Dispatcher
	log      zerolog.Logger
}

func NewMinTIC(cfg *config.Config, appender audit.Appender, dispatch Dispatcher) *MinTIC {
	return &MinTIC{
		cfg:      cfg,
		audit:    appender,
		dispatch: dispatch,
		log:      zlog.With().Str("stage", "mintic").Logger(),
	}
}

func (m *MinTIC) Handle(ctx context.Context, body []byte) error {
	env, err := envelope.Normalize(body, envelope.ResourceResultadoVerificacion)
	if err != nil {
		return err
	}

	log := m.log.With().Str("transaction", env.TransactionID).Logger()

	if err := m.audit.Append(ctx, env.TransactionID, StepRegistryReceived, env); err != nil {
		return fmt.Errorf("failed to record registry notice: %w", err)
	}

	time.Sleep(m.cfg.RegistryDelay)

	out := envelope.New(envelope.ResourceResultadoRegistro, env.TransactionID)
	out.SetField("estadoRegistro", EstadoAceptado)
	out.SetField("procesadoEn", nowISO())

	if err := m.dispatch.Dispatch(ctx, transport.Queue(m.cfg.RegistryResponseQueueURL), out); err != nil {
		return fmt.Errorf("failed to dispatch registry result: %w", err)
	}

	if err := m.audit.Append(ctx, env.TransactionID, StepRegistryResultSent, out); err != nil {
		return fmt.Errorf("failed to record registry result: %w", err)
	}

	log.Info().Msg("registry result sent")
	return nil
}
