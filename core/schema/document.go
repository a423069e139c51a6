package schema

// Document is a free-form JSON-LD object written to the graph as given.
type Document map[string]any

func (d Document) EntityID() string {
	id, _ := d["@id"].(string)
	return id
}

// EntityType returns the first declared @type, or "" when there is none.
func (d Document) EntityType() Type {
	switch t := d["@type"].(type) {
	case string:
		return Type(t)
	case []any:
		if len(t) > 0 {
			s, _ := t[0].(string)
			return Type(s)
		}
	case []string:
		if len(t) > 0 {
			return Type(t[0])
		}
	}
	return ""
}
