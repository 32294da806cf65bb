package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carpetaciudadana/co/internal/transport"
	"github.com/carpetaciudadana/co/pkg/audit"
	"github.com/carpetaciudadana/co/pkg/envelope"
)

// fixedDecider replaces the weighted random verdict in tests.
type fixedDecider struct {
	verdict Verdict
	motivo  string
}

func (d *fixedDecider) Decide(motivo string) Verdict {
	d.motivo = motivo
	return d.verdict
}

func verificationRequestBody(t *testing.T, tx string) []byte {
	t.Helper()

	doc, err := (&envelope.SolicitudVerificacion{
		TransactionID: tx,
		Motivo:        "Registro",
		Ciudadano:     envelope.Ciudadano{TipoID: "CC", NumeroID: "123"},
	}).EncodeXML()
	require.NoError(t, err)

	body, err := envelope.NewDocument(envelope.ResourceSolicitudVerificacion, tx, doc).Encode()
	require.NoError(t, err)
	return body
}

func TestRegistraduriaHandleXML(t *testing.T) {
	trail := audit.NewMemory()
	dispatcher := &memoryDispatcher{}
	decider := &fixedDecider{verdict: Verdict{Estado: EstadoVerificado, Detalles: "Mock OK (Registro)"}}
	stage := NewRegistraduria(testConfig(), trail, dispatcher, decider)

	require.NoError(t, stage.Handle(context.Background(), verificationRequestBody(t, "tx-200")))

	assert.Equal(t, "Registro", decider.motivo)

	require.Len(t, dispatcher.sent, 1)
	sent := dispatcher.sent[0]
	assert.Equal(t, transport.Queue(testConfig().IdentityResponseQueueURL), sent.target)
	assert.Equal(t, envelope.ResourceResultadoVerificacion, sent.env.ResourceType)
	assert.Equal(t, "tx-200", sent.env.TransactionID)
	assert.Equal(t, EstadoVerificado, sent.env.StringField("estado"))
	assert.Equal(t, "Mock OK (Registro)", sent.env.StringField("detalles"))
	assert.NotEmpty(t, sent.env.StringField("verificadoEn"))
	assert.Equal(t, "CC-123", sent.env.Citizen().Key())

	processed := recordData(t, trail, "tx-200", StepVerifyProcessed)
	assert.Equal(t, EstadoVerificado, processed["estado"])
	assert.Equal(t, "XML", processed["payloadType"])
}

func TestRegistraduriaHandleLegacyJSON(t *testing.T) {
	trail := audit.NewMemory()
	dispatcher := &memoryDispatcher{}
	decider := &fixedDecider{verdict: Verdict{Estado: EstadoInconcluso, Detalles: "Manual review suggested"}}
	stage := NewRegistraduria(testConfig(), trail, dispatcher, decider)

	body := []byte(`{"transactionId":"tx-201","ciudadano":{"tipoId":"CC","numeroId":"9"},"motivo":"Actualizacion"}`)
	require.NoError(t, stage.Handle(context.Background(), body))

	assert.Equal(t, "Actualizacion", decider.motivo)

	require.Len(t, dispatcher.sent, 1)
	assert.Equal(t, EstadoInconcluso, dispatcher.sent[0].env.StringField("estado"))

	processed := recordData(t, trail, "tx-201", StepVerifyProcessed)
	assert.Equal(t, "JSON", processed["payloadType"])
}

func TestRegistraduriaMissingCitizen(t *testing.T) {
	trail := audit.NewMemory()
	dispatcher := &memoryDispatcher{}
	stage := NewRegistraduria(testConfig(), trail, dispatcher, &fixedDecider{verdict: Verdict{Estado: EstadoVerificado}})

	// No citizen block and no motive: healed, not rejected.
	require.NoError(t, stage.Handle(context.Background(), []byte(`{"transactionId":"tx-202"}`)))

	require.Len(t, dispatcher.sent, 1)
	sent := dispatcher.sent[0]
	// The result carries an empty citizen block, so the key degrades to
	// placeholders rather than erroring.
	assert.Equal(t, "?-?", sent.env.Citizen().Key())

	processed := recordData(t, trail, "tx-202", StepVerifyProcessed)
	assert.Equal(t, MotiveRegistration, processed["motivo"])
}

func TestWeightedDecider(t *testing.T) {
	decider := &WeightedDecider{Verified: 2, Inconclusive: 1}

	seen := map[string]int{}
	for i := 0; i < 200; i++ {
		verdict := decider.Decide("Registro")
		seen[verdict.Estado]++
		switch verdict.Estado {
		case EstadoVerificado:
			assert.Equal(t, "Mock OK (Registro)", verdict.Detalles)
		case EstadoInconcluso:
			assert.Equal(t, "Manual review suggested", verdict.Detalles)
		default:
			t.Fatalf("unexpected verdict %q", verdict.Estado)
		}
	}

	assert.Greater(t, seen[EstadoVerificado], 0)
	assert.Greater(t, seen[EstadoInconcluso], 0)
}

func TestWeightedDeciderZeroWeights(t *testing.T) {
	decider := &WeightedDecider{}

	verdict := decider.Decide("Registro")
	assert.Equal(t, EstadoVerificado, verdict.Estado)
}
