package envelope

import (
	"encoding/json"
	"fmt"
)

// Normalize maps a raw inbound body onto the canonical envelope for a stage.
//
// Rules, in priority order: a wrapper whose contentType marks an embedded XML
// payload is decoded through the XML sub-protocol; otherwise the body is
// structured JSON and a stale resource tag is overwritten with the canonical
// one, a missing tag is injected. Normalization is self-healing, not
// validating: the only error is a body that parses in no known shape.
// A transaction id is always present on the returned envelope.
func Normalize(raw []byte, canonical string) (*Envelope, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if fields == nil {
		// "null" is valid JSON but not a message.
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformed)
	}

	// Notifications relayed through the fan-out topic nest the real document
	// under Message. Decode into a fresh map so none of the wrapper keys
	// survive into the envelope.
	if inner, ok := fields["Message"].(string); ok && fields["Type"] == "Notification" {
		var unwrapped map[string]any
		if err := json.Unmarshal([]byte(inner), &unwrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if unwrapped == nil {
			return nil, fmt.Errorf("%w: not a JSON object", ErrMalformed)
		}
		fields = unwrapped
	}

	if fields["contentType"] == ContentXML {
		doc, _ := fields["payload"].(string)
		return normalizeDocument(doc, canonical)
	}

	tx := Resolve(fields)
	delete(fields, "resourceType")
	delete(fields, "transactionId")

	return &Envelope{
		ResourceType:  canonical,
		TransactionID: tx,
		ContentType:   ContentJSON,
		Fields:        fields,
	}, nil
}

func normalizeDocument(doc, canonical string) (*Envelope, error) {
	sol, err := DecodeSolicitudVerificacion(doc)
	if err != nil {
		return nil, err
	}

	tx := sol.TransactionID
	if tx == "" {
		tx = mint()
	}

	return &Envelope{
		ResourceType:  canonical,
		TransactionID: tx,
		ContentType:   ContentXML,
		Document:      doc,
		Fields: map[string]any{
			"motivo":    sol.Motivo,
			"ciudadano": sol.Ciudadano.Map(),
		},
	}, nil
}
