// Package envelope implements the canonical message unit exchanged between the
// stages of the folder-opening workflow. Inbound bodies arrive in several
// shapes (canonical JSON, legacy JSON, topic-wrapped JSON, XML-wrapped) and are
// normalized into one envelope before any stage logic runs.
package envelope

import (
	"encoding/json"
	"errors"
)

// Canonical resource tags. Every envelope leaving a stage carries one of these,
// healed in regardless of what the inbound message claimed.
const (
	ResourceCarpetaCreada         = "NotificacionCarpetaCreada"
	ResourceSolicitudApertura     = "SolicitudApertura"
	ResourceSolicitudVerificacion = "SolicitudVerificacion"
	ResourceResultadoVerificacion = "ResultadoVerificacion"
	ResourceResultadoRegistro     = "ResultadoRegistro"
	ResourceEmailAsignado         = "EmailAsignado"
)

// Payload content types.
const (
	ContentJSON = "application/json"
	ContentXML  = "application/xml"
)

// ErrMalformed marks inbound bodies that could not be parsed in any known
// shape. No envelope is constructed for them.
var ErrMalformed = errors.New("malformed message")

// Envelope is the canonical in-memory form of one exchanged message. The
// payload is either structured fields (ContentJSON) or an embedded document
// carried verbatim (ContentXML); ContentType says which.
type Envelope struct {
	ResourceType  string
	TransactionID string
	ContentType   string
	// Fields holds the structured payload, excluding the envelope keys.
	Fields map[string]any
	// Document holds the embedded document when ContentType is ContentXML.
	Document string
}

// New returns a structured-payload envelope with the given canonical tag.
func New(resource, transactionID string) *Envelope {
	return &Envelope{
		ResourceType:  resource,
		TransactionID: transactionID,
		ContentType:   ContentJSON,
		Fields:        map[string]any{},
	}
}

// NewDocument returns an envelope carrying an embedded document payload.
func NewDocument(resource, transactionID, doc string) *Envelope {
	return &Envelope{
		ResourceType:  resource,
		TransactionID: transactionID,
		ContentType:   ContentXML,
		Document:      doc,
	}
}

// Encode serializes the envelope to the wire form the next stage expects.
// Structured envelopes become a flat JSON document with the canonical tag and
// transaction id; document envelopes become the wrapper that marks the payload
// as an embedded XML document.
func (e *Envelope) Encode() ([]byte, error) {
	switch e.ContentType {
	case ContentXML:
		return json.Marshal(map[string]any{
			"contentType":  ContentXML,
			"resourceType": e.ResourceType,
			"payload":      e.Document,
		})
	default:
		out := make(map[string]any, len(e.Fields)+2)
		for k, v := range e.Fields {
			out[k] = v
		}
		out["resourceType"] = e.ResourceType
		out["transactionId"] = e.TransactionID
		return json.Marshal(out)
	}
}

func (e *Envelope) MarshalJSON() ([]byte, error) {
	return e.Encode()
}

// StringField returns a payload field as a string, or "" when absent or not a
// string.
func (e *Envelope) StringField(key string) string {
	s, _ := e.Fields[key].(string)
	return s
}

func (e *Envelope) SetField(key string, value any) {
	if e.Fields == nil {
		e.Fields = map[string]any{}
	}
	e.Fields[key] = value
}

// CitizenFields returns the raw citizen block, or an empty map when absent.
func (e *Envelope) CitizenFields() map[string]any {
	if m, ok := e.Fields["ciudadano"].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// Citizen returns the typed citizen block, or nil when the message carries
// none at all.
func (e *Envelope) Citizen() *Ciudadano {
	m, ok := e.Fields["ciudadano"].(map[string]any)
	if !ok {
		return nil
	}
	return CitizenFromMap(m)
}
