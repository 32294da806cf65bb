package envelope

import (
	"strings"
	"testing"
)

func TestXMLEncode(t *testing.T) {
	doc, err := (&SolicitudVerificacion{
		TransactionID: "tx-10",
		Motivo:        "Registro",
		Ciudadano: Ciudadano{
			TipoID:   "CC",
			NumeroID: "123",
			Nombres:  "Maria",
		},
	}).EncodeXML()
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}

	if !strings.HasPrefix(doc, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>") {
		t.Error("expected a declared XML 1.0 header")
	}
	for _, want := range []string{
		"<SolicitudVerificacion>",
		"<TransactionId>tx-10</TransactionId>",
		"<Motivo>Registro</Motivo>",
		"<Ciudadano>",
		"<TipoId>CC</TipoId>",
		"<NumeroId>123</NumeroId>",
		"<Nombres>Maria</Nombres>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("expected document to contain %s, got:\n%s", want, doc)
		}
	}

	// Absent values encode as empty elements, never omitted.
	if !strings.Contains(doc, "<Apellidos></Apellidos>") {
		t.Errorf("expected an empty Apellidos element, got:\n%s", doc)
	}
	if !strings.Contains(doc, "<FechaNacimiento></FechaNacimiento>") {
		t.Errorf("expected an empty FechaNacimiento element, got:\n%s", doc)
	}
}

func TestXMLEscaping(t *testing.T) {
	doc, err := (&SolicitudVerificacion{
		TransactionID: "tx-11",
		Motivo:        "a & b",
		Ciudadano:     Ciudadano{Nombres: "<Maria>"},
	}).EncodeXML()
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}

	if !strings.Contains(doc, "a &amp; b") {
		t.Errorf("expected '&' to be escaped, got:\n%s", doc)
	}
	if !strings.Contains(doc, "&lt;Maria&gt;") {
		t.Errorf("expected '<' and '>' to be escaped, got:\n%s", doc)
	}
}

func TestXMLRoundTrip(t *testing.T) {
	original := &SolicitudVerificacion{
		TransactionID: "tx-12",
		Motivo:        "Registro & <update>",
		Ciudadano: Ciudadano{
			TipoID:          "CC",
			NumeroID:        "1 < 2 > 0",
			Nombres:         "Ana & Luisa",
			Apellidos:       "",
			FechaNacimiento: "1990-01-01",
		},
	}

	doc, err := original.EncodeXML()
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}

	decoded, err := DecodeSolicitudVerificacion(doc)
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}

	if decoded.TransactionID != original.TransactionID {
		t.Errorf("expected transaction '%s', got '%s'", original.TransactionID, decoded.TransactionID)
	}
	if decoded.Motivo != original.Motivo {
		t.Errorf("expected motive '%s', got '%s'", original.Motivo, decoded.Motivo)
	}
	if decoded.Ciudadano != original.Ciudadano {
		t.Errorf("expected citizen %+v, got %+v", original.Ciudadano, decoded.Ciudadano)
	}
}

func TestXMLDecodeAbsentElements(t *testing.T) {
	decoded, err := DecodeSolicitudVerificacion(
		"<SolicitudVerificacion><TransactionId> tx-13 </TransactionId></SolicitudVerificacion>")
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}

	if decoded.TransactionID != "tx-13" {
		t.Errorf("expected trimmed transaction 'tx-13', got '%s'", decoded.TransactionID)
	}
	if decoded.Motivo != "" {
		t.Errorf("expected an empty motive, got '%s'", decoded.Motivo)
	}
	if decoded.Ciudadano != (Ciudadano{}) {
		t.Errorf("expected an empty citizen block, got %+v", decoded.Ciudadano)
	}
}

func TestCitizenKey(t *testing.T) {
	tests := []struct {
		citizen *Ciudadano
		want    string
	}{
		{&Ciudadano{TipoID: "CC", NumeroID: "123"}, "CC-123"},
		{&Ciudadano{TipoID: "CC"}, "CC-?"},
		{&Ciudadano{}, "?-?"},
		{nil, "UNKNOWN"},
	}

	for _, test := range tests {
		if got := test.citizen.Key(); got != test.want {
			t.Errorf("expected key '%s', got '%s'", test.want, got)
		}
	}
}
