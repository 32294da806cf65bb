package workflow

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/carpetaciudadana/co/internal/config"
	"github.com/carpetaciudadana/co/pkg/audit"
	"github.com/carpetaciudadana/co/pkg/envelope"
)

// Address derives the citizen mailbox from a transaction id: fixed prefix,
// first eight characters of the id, fixed domain. Deterministic, always
// succeeds.
func Address(transactionID, prefix, domain string) string {
	id := transactionID
	if len(id) > 8 {
		id = id[:8]
	}
	return prefix + "." + id + "@" + domain
}

// Email is the terminal assignment stage. It reacts to folder-created
// notifications and records the assigned address in the audit trail; nothing
// is dispatched further.
type Email struct {
	cfg   *config.Config
	audit audit.Appender
	log   zerolog.Logger
}

func NewEmail(cfg *config.Config, appender audit.Appender) *Email {
	return &Email{
		cfg:   cfg,
		audit: appender,
		log:   zlog.With().Str("stage", "email").Logger(),
	}
}

func (e *Email) Handle(ctx context.Context, body []byte) error {
	env, err := envelope.Normalize(body, envelope.ResourceCarpetaCreada)
	if err != nil {
		return err
	}

	log := e.log.With().Str("transaction", env.TransactionID).Logger()

	if err := e.audit.Append(ctx, env.TransactionID, StepFolderCreatedReceived, env); err != nil {
		return fmt.Errorf("failed to record folder notice: %w", err)
	}

	address := Address(env.TransactionID, e.cfg.EmailPrefix, e.cfg.EmailDomain)

	out := envelope.New(envelope.ResourceEmailAsignado, env.TransactionID)
	out.SetField("email", address)
	out.SetField("asignadoEn", nowISO())

	if err := e.audit.Append(ctx, env.TransactionID, StepEmailAssigned, out); err != nil {
		return fmt.Errorf("failed to record assigned email: %w", err)
	}

	log.Info().Str("email", address).Msg("email assigned")
	return nil
}
