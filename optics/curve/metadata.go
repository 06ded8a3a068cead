package curve

// Provenance keys recorded by loaders and models.
const (
	MetaFilename    = "filename"
	MetaDescription = "descrip"
	MetaNotes       = "notes"
	MetaExpr        = "expr"
	MetaRescaled    = "rescaled"
)

// Metadata maps provenance keys to free-form strings.
type Metadata map[string]string

// Clone returns an independent copy. Clone of nil is an empty map.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge returns a copy of m overlaid with extra.
func (m Metadata) Merge(extra Metadata) Metadata {
	out := m.Clone()
	for k, v := range extra {
		out[k] = v
	}
	return out
}
