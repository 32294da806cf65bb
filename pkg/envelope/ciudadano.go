package envelope

// CitizenUnknown is the citizen key used when a message carries no citizen
// block at all.
const CitizenUnknown = "UNKNOWN"

const citizenPlaceholder = "?"

// Ciudadano is the citizen identity block embedded in workflow payloads.
// Every field is optional; absence is tolerated, never an error.
type Ciudadano struct {
	TipoID          string `json:"tipoId" xml:"TipoId"`
	NumeroID        string `json:"numeroId" xml:"NumeroId"`
	Nombres         string `json:"nombres" xml:"Nombres"`
	Apellidos       string `json:"apellidos" xml:"Apellidos"`
	FechaNacimiento string `json:"fechaNacimiento" xml:"FechaNacimiento"`
}

// Key derives the stable citizen key used for logging and breadcrumbs:
// tipoId-numeroId, with placeholders for missing fields.
func (c *Ciudadano) Key() string {
	if c == nil {
		return CitizenUnknown
	}
	return fieldOrPlaceholder(c.TipoID) + "-" + fieldOrPlaceholder(c.NumeroID)
}

// Map returns the block in the loose form used inside structured payloads.
func (c *Ciudadano) Map() map[string]any {
	if c == nil {
		return map[string]any{}
	}
	return map[string]any{
		"tipoId":          c.TipoID,
		"numeroId":        c.NumeroID,
		"nombres":         c.Nombres,
		"apellidos":       c.Apellidos,
		"fechaNacimiento": c.FechaNacimiento,
	}
}

// CitizenFromMap builds the typed block from a loose payload map. Non-string
// and missing values become empty fields.
func CitizenFromMap(m map[string]any) *Ciudadano {
	c := &Ciudadano{}
	c.TipoID, _ = m["tipoId"].(string)
	c.NumeroID, _ = m["numeroId"].(string)
	c.Nombres, _ = m["nombres"].(string)
	c.Apellidos, _ = m["apellidos"].(string)
	c.FechaNacimiento, _ = m["fechaNacimiento"].(string)
	return c
}

func fieldOrPlaceholder(s string) string {
	if s == "" {
		return citizenPlaceholder
	}
	return s
}
