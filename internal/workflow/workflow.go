// Package workflow implements the stages of the folder-opening choreography:
// identity validation, the registry verification mock, registry notification,
// the national registry acceptance mock and email assignment. Each stage is
// stateless, reacts to one inbound message and coordinates with the others
// only through the transports and the audit trail.
package workflow

import (
	"context"
	"time"

	"github.com/carpetaciudadana/co/internal/transport"
	"github.com/carpetaciudadana/co/pkg/envelope"
)

// Step names recorded in the audit trail. Together they narrate one
// transaction's journey through the workflow.
const (
	StepOpenRequestReceived   = envelope.ResourceSolicitudApertura + ":RECEIVED"
	StepVerifyRequestSent     = envelope.ResourceSolicitudVerificacion + ":SENT"
	StepVerifyReceived        = "Registraduria:RECEIVED"
	StepVerifyProcessed       = "Registraduria:PROCESSED"
	StepVerifyResultReceived  = envelope.ResourceResultadoVerificacion + ":RECEIVED"
	StepVerifyResultSent      = envelope.ResourceResultadoVerificacion + ":SENT"
	StepRegistryReceived      = "MinTIC:RECEIVED"
	StepRegistryResultSent    = envelope.ResourceResultadoRegistro + ":SENT"
	StepFolderCreatedReceived = envelope.ResourceCarpetaCreada + ":RECEIVED"
	StepEmailAssigned         = envelope.ResourceEmailAsignado + ":DONE"
)

// MotiveRegistration is the motive recorded on verification requests opened
// through the folder workflow.
const MotiveRegistration = "Registro"

// Dispatcher sends an envelope to a downstream target, fire and forget.
type Dispatcher interface {
	Dispatch(ctx context.Context, target transport.Target, env *envelope.Envelope) error
}

// BreadcrumbWriter drops a best-effort progress note for a transaction.
type BreadcrumbWriter interface {
	Write(ctx context.Context, transactionID, note string)
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
