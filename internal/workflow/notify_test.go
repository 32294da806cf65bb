package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carpetaciudadana/co/internal/transport"
	"github.com/carpetaciudadana/co/pkg/audit"
	"github.com/carpetaciudadana/co/pkg/envelope"
)

func TestNotifierHealsResourceTag(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing tag", `{"transactionId":"tx-300","estado":"Verificado"}`},
		{"stale tag", `{"resourceType":"ResultadoVerificacionV0","transactionId":"tx-300","estado":"Verificado"}`},
		{"unexpected tag", `{"resourceType":"AlgoInesperado","transactionId":"tx-300","estado":"Verificado"}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			trail := audit.NewMemory()
			dispatcher := &memoryDispatcher{}
			notifier := NewNotifier(testConfig(), trail, dispatcher)

			require.NoError(t, notifier.Handle(context.Background(), []byte(test.body)))

			require.Len(t, dispatcher.sent, 1)
			sent := dispatcher.sent[0]
			assert.Equal(t, envelope.ResourceResultadoVerificacion, sent.env.ResourceType)
			assert.Equal(t, transport.Direct(testConfig().RegistryNoticeTopic), sent.target)

			received := recordData(t, trail, "tx-300", StepVerifyResultReceived)
			assert.Equal(t, envelope.ResourceResultadoVerificacion, received["resourceType"])
			assert.Equal(t, "Verificado", received["estado"])

			_, ok := trail.Get("tx-300", StepVerifyResultSent)
			assert.True(t, ok)
		})
	}
}

func TestNotifierDispatchFailure(t *testing.T) {
	trail := audit.NewMemory()
	notifier := NewNotifier(testConfig(), trail, &memoryDispatcher{fail: errors.New("broker down")})

	err := notifier.Handle(context.Background(), []byte(`{"transactionId":"tx-301"}`))
	require.Error(t, err)

	// Receipt was recorded before the failed forward; redelivery will
	// harmlessly rewrite it.
	_, ok := trail.Get("tx-301", StepVerifyResultReceived)
	assert.True(t, ok)
	_, ok = trail.Get("tx-301", StepVerifyResultSent)
	assert.False(t, ok)
}
