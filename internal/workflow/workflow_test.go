package workflow

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carpetaciudadana/co/internal/config"
	"github.com/carpetaciudadana/co/internal/transport"
	"github.com/carpetaciudadana/co/pkg/audit"
	"github.com/carpetaciudadana/co/pkg/envelope"
)

type dispatched struct {
	target transport.Target
	env    *envelope.Envelope
}

// memoryDispatcher records sends; when fail is set every dispatch errors.
type memoryDispatcher struct {
	sent []dispatched
	fail error
}

func (d *memoryDispatcher) Dispatch(ctx context.Context, target transport.Target, env *envelope.Envelope) error {
	if d.fail != nil {
		return d.fail
	}
	d.sent = append(d.sent, dispatched{target: target, env: env})
	return nil
}

type memoryBreadcrumb struct {
	notes map[string]string
}

func (b *memoryBreadcrumb) Write(ctx context.Context, transactionID, note string) {
	if b.notes == nil {
		b.notes = map[string]string{}
	}
	b.notes[transactionID] = note
}

func testConfig() *config.Config {
	return &config.Config{
		OpenRequestQueueURL:      "https://sqs.test/open-requests",
		IdentityResponseQueueURL: "https://sqs.test/identity-response",
		RegistryResponseQueueURL: "https://sqs.test/registry-response",
		VerifyRequestTopic:       config.DefaultVerifyRequestTopic,
		RegistryNoticeTopic:      config.DefaultRegistryNoticeTopic,
		FolderCreatedExchange:    config.DefaultFolderCreatedExchange,
		EmailPrefix:              config.DefaultEmailPrefix,
		EmailDomain:              config.DefaultEmailDomain,
		VerifiedWeight:           config.DefaultVerifiedWeight,
		InconclusiveWeight:       config.DefaultInconclusiveWeight,
	}
}

// recordData unmarshals the stored step blob for assertions.
func recordData(t *testing.T, trail *audit.Memory, transactionID, step string) map[string]any {
	t.Helper()

	record, ok := trail.Get(transactionID, step)
	require.Truef(t, ok, "missing audit record %s/%s", transactionID, step)

	data := map[string]any{}
	require.NoError(t, json.Unmarshal(record.Data, &data))
	return data
}
