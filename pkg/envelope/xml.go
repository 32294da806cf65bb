package envelope

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const xmlHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"

// SolicitudVerificacion is the embedded XML document used on the single
// XML-wrapped leg of the workflow, between the identity validator and the
// registry mock. Absent values encode as empty elements, never omitted.
type SolicitudVerificacion struct {
	XMLName       xml.Name  `xml:"SolicitudVerificacion"`
	TransactionID string    `xml:"TransactionId"`
	Motivo        string    `xml:"Motivo"`
	Ciudadano     Ciudadano `xml:"Ciudadano"`
}

// EncodeXML renders the document with a declared XML 1.0 header. Text content
// is escaped by the encoder, so citizen fields may contain &, < and >.
func (s *SolicitudVerificacion) EncodeXML() (string, error) {
	out, err := xml.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode verification request: %w", err)
	}
	return xmlHeader + string(out) + "\n", nil
}

// DecodeSolicitudVerificacion parses the document back. Absent elements yield
// empty fields; surrounding whitespace on text content is trimmed.
func DecodeSolicitudVerificacion(doc string) (*SolicitudVerificacion, error) {
	s := &SolicitudVerificacion{}
	if err := xml.Unmarshal([]byte(doc), s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	s.TransactionID = strings.TrimSpace(s.TransactionID)
	s.Motivo = strings.TrimSpace(s.Motivo)
	s.Ciudadano.trim()
	return s, nil
}

func (c *Ciudadano) trim() {
	c.TipoID = strings.TrimSpace(c.TipoID)
	c.NumeroID = strings.TrimSpace(c.NumeroID)
	c.Nombres = strings.TrimSpace(c.Nombres)
	c.Apellidos = strings.TrimSpace(c.Apellidos)
	c.FechaNacimiento = strings.TrimSpace(c.FechaNacimiento)
}
