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

// Validator is the identity validation stage. It canonicalizes inbound folder
// opening requests, records their receipt, drops a breadcrumb, and hands the
// registry mock an XML-wrapped verification request.
type Validator struct {
	cfg        *config.Config
	audit      audit.Appender
	dispatch   Dispatcher
	breadcrumb BreadcrumbWriter
	log        zerolog.Logger
}

func NewValidator(cfg *config.Config, appender audit.Appender, dispatch Dispatcher, breadcrumb BreadcrumbWriter) *Validator {
	return &Validator{
		cfg:        cfg,
		audit:      appender,
		dispatch:   dispatch,
		breadcrumb: breadcrumb,
		log:        zlog.With().Str("stage", "validate").Logger(),
	}
}

func (v *Validator) Handle(ctx context.Context, body []byte) error {
	env, err := envelope.Normalize(body, envelope.ResourceSolicitudApertura)
	if err != nil {
		return err
	}

	citizen := env.Citizen()
	log := v.log.With().Str("transaction", env.TransactionID).Str("citizen", citizen.Key()).Logger()

	if err := v.audit.Append(ctx, env.TransactionID, StepOpenRequestReceived, env); err != nil {
		return fmt.Errorf("failed to record open request: %w", err)
	}

	v.breadcrumb.Write(ctx, env.TransactionID,
		fmt.Sprintf("SolicitudApertura received at %s for %s", nowISO(), citizen.Key()))

	request := &envelope.SolicitudVerificacion{
		TransactionID: env.TransactionID,
		Motivo:        MotiveRegistration,
	}
	if citizen != nil {
		request.Ciudadano = *citizen
	}

	doc, err := request.EncodeXML()
	if err != nil {
		return err
	}

	out := envelope.NewDocument(envelope.ResourceSolicitudVerificacion, env.TransactionID, doc)
	if err := v.dispatch.Dispatch(ctx, transport.Direct(v.cfg.VerifyRequestTopic), out); err != nil {
		return fmt.Errorf("failed to dispatch verification request: %w", err)
	}

	if err := v.audit.Append(ctx, env.TransactionID, StepVerifyRequestSent, out); err != nil {
		return fmt.Errorf("failed to record verification request: %w", err)
	}

	log.Info().Msg("verification requested")
	return nil
}
