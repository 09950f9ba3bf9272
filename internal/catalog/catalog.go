// Package catalog defines the static intent catalog the classifier scores
// against. Two equivalent representations are supported: a structured JSON
// form and a compact delimited TOON form parsed by ParseTOON.
package catalog

// IntentDefinition describes a single routable intent. Definitions are loaded
// once at startup and treated as immutable afterwards.
type IntentDefinition struct {
	ID             string    `json:"id"`
	Label          string    `json:"label"`
	Keywords       []string  `json:"keywords"`
	Description    string    `json:"description"`
	StarterPhrases []string  `json:"starter_phrases"`
	SemanticVector []float64 `json:"semantic_vector"`
	Triggers       []string  `json:"triggers"`
}

// Catalog is an ordered set of intent definitions. Order is load-bearing:
// the classifier's stable sort breaks score ties by catalog position.
type Catalog []IntentDefinition

// Dim returns the semantic vector dimensionality of the catalog. All entries
// in a well-formed catalog share one dimensionality; the first entry decides.
func (c Catalog) Dim() int {
	if len(c) == 0 {
		return DefaultVectorDim
	}
	return len(c[0].SemanticVector)
}

// Find returns the definition with the given id, or nil.
func (c Catalog) Find(id string) *IntentDefinition {
	for i := range c {
		if c[i].ID == id {
			return &c[i]
		}
	}
	return nil
}

// IDs returns the intent ids in catalog order.
func (c Catalog) IDs() []string {
	ids := make([]string, len(c))
	for i, def := range c {
		ids[i] = def.ID
	}
	return ids
}
