package workflow

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/carpetaciudadana/co/internal/config"
	"github.com/carpetaciudadana/co/internal/transport"
	"github.com/carpetaciudadana/co/pkg/audit"
	"github.com/carpetaciudadana/co/pkg/envelope"
)

// Local runs raw open-request files through the validation stage offline,
// with an in-memory audit trail and a dispatcher that only logs what it would
// send. Useful for checking message shapes without any broker running.
func Local(path string, logLevel zerolog.Level) {
	zerolog.SetGlobalLevel(logLevel)

	trail := audit.NewMemory()
	validator := NewValidator(config.FromEnv(), trail, &logDispatcher{
		log: log.With().Str("component", "dispatcher").Logger(),
	}, (*transport.Breadcrumb)(nil))

	process(path, validator)

	log.Info().Int("steps", trail.Len()).Msg("done")
}

func process(path string, validator *Validator) {
	file, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Msg("failed to open file")
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		log.Error().Err(err).Msg("failed to stat file")
		return
	}

	if stat.IsDir() {
		files, err := file.ReadDir(0)
		if err != nil {
			log.Error().Err(err).Msg("failed to read directory")
			return
		}

		for _, f := range files {
			process(filepath.Join(path, f.Name()), validator)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Msg("failed to read file")
			return
		}

		if err := validator.Handle(context.Background(), data); err != nil {
			log.Error().Err(err).Str("file", path).Msg("failed to handle message")
		}
	}
}

type logDispatcher struct {
	log zerolog.Logger
}

func (d *logDispatcher) Dispatch(ctx context.Context, target transport.Target, env *envelope.Envelope) error {
	body, err := env.Encode()
	if err != nil {
		return err
	}

	d.log.Info().
		Str("kind", target.Kind).
		Str("target", target.Name).
		RawJSON("body", body).
		Msg("would dispatch")
	return nil
}
