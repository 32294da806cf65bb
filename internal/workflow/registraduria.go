package workflow

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/carpetaciudadana/co/internal/config"
	"github.com/carpetaciudadana/co/internal/transport"
	"github.com/carpetaciudadana/co/pkg/audit"
	"github.com/carpetaciudadana/co/pkg/envelope"
)

// Verification verdicts.
const (
	EstadoVerificado = "Verificado"
	EstadoInconcluso = "Inconcluso"
)

// Verdict is the outcome of one registry identity check.
type Verdict struct {
	Estado   string
	Detalles string
}

// Decider produces the verdict for one verification request. The production
// decider is random; tests plug in deterministic ones.
type Decider interface {
	Decide(motivo string) Verdict
}

// WeightedDecider draws verdicts from a weighted distribution after a
// simulated processing delay, standing in for the real registry policy.
type WeightedDecider struct {
	Verified     int
	Inconclusive int
	Delay        time.Duration
}

func (d *WeightedDecider) Decide(motivo string) Verdict {
	time.Sleep(d.Delay)

	total := d.Verified + d.Inconclusive
	if total <= 0 || rand.IntN(total) < d.Verified {
		return Verdict{Estado: EstadoVerificado, Detalles: fmt.Sprintf("Mock OK (%s)", motivo)}
	}
	return Verdict{Estado: EstadoInconcluso, Detalles: "Manual review suggested"}
}

// Registraduria is the identity-registry mock stage. It accepts the XML
// envelope from the validator as well as legacy canonical JSON, decides a
// verdict, and queues the result for the notification stage.
type Registraduria struct {
	cfg      *config.Config
	audit    audit.Appender
	dispatch Dispatcher
	decider  Decider
	log      zerolog.Logger
}

// NewRegistraduria builds the stage. A nil decider gets the weighted random
// one configured by cfg.
func NewRegistraduria(cfg *config.Config, appender audit.Appender, dispatch Dispatcher, decider Decider) *Registraduria {
	if decider == nil {
		decider = &WeightedDecider{
			Verified:     cfg.VerifiedWeight,
			Inconclusive: cfg.InconclusiveWeight,
			Delay:        cfg.VerifyDelay,
		}
	}
	return &Registraduria{
		cfg:      cfg,
		audit:    appender,
		dispatch: dispatch,
		decider:  decider,
		log:      zlog.With().Str("stage", "registraduria").Logger(),
	}
}

func (r *Registraduria) Handle(ctx context.Context, body []byte) error {
	env, err := envelope.Normalize(body, envelope.ResourceSolicitudVerificacion)
	if err != nil {
		return err
	}

	payloadType := "JSON"
	if env.ContentType == envelope.ContentXML {
		payloadType = "XML"
	}

	log := r.log.With().Str("transaction", env.TransactionID).Str("payload", payloadType).Logger()

	if err := r.audit.Append(ctx, env.TransactionID, StepVerifyReceived, env); err != nil {
		return fmt.Errorf("failed to record verification request: %w", err)
	}

	motivo := env.StringField("motivo")
	if motivo == "" {
		motivo = MotiveRegistration
	}

	verdict := r.decider.Decide(motivo)

	out := envelope.New(envelope.ResourceResultadoVerificacion, env.TransactionID)
	out.SetField("ciudadano", env.CitizenFields())
	out.SetField("estado", verdict.Estado)
	out.SetField("verificadoEn", nowISO())
	out.SetField("detalles", verdict.Detalles)

	if err := r.dispatch.Dispatch(ctx, transport.Queue(r.cfg.IdentityResponseQueueURL), out); err != nil {
		return fmt.Errorf("failed to dispatch verification result: %w", err)
	}

	if err := r.audit.Append(ctx, env.TransactionID, StepVerifyProcessed, map[string]any{
		"estado":      verdict.Estado,
		"motivo":      motivo,
		"payloadType": payloadType,
	}); err != nil {
		return fmt.Errorf("failed to record verdict: %w", err)
	}

	log.Info().Str("estado", verdict.Estado).Msg("verification processed")
	return nil
}
