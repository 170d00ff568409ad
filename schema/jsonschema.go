package schema

// Described pairs an entity name with its JSON-Schema-like description.
type Described struct {
	Name   string                 `json:"name"`
	Schema map[string]interface{} `json:"schema"`
}

// Collections lists the persisted entities in the order /schema reports them.
var Collections = []Entity{Patient, Appointment, Note}

func Describe(entities ...Entity) []Described {
	out := make([]Described, 0, len(entities))
	for _, e := range entities {
		out = append(out, Described{Name: e.Name, Schema: e.JSONSchema()})
	}
	return out
}

func (e Entity) JSONSchema() map[string]interface{} {
	properties := map[string]interface{}{}
	required := []string{}
	for _, f := range e.Fields {
		properties[f.Name] = f.jsonSchema()
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return map[string]interface{}{
		"title":      e.Name,
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func (f Field) jsonSchema() map[string]interface{} {
	prop := map[string]interface{}{
		"title":       f.Name,
		"description": f.Description,
	}
	switch f.Type {
	case String:
		prop["type"] = "string"
	case Email, Date, DateTime:
		prop["type"] = "string"
		prop["format"] = string(f.Type)
	case Integer:
		prop["type"] = "integer"
		if f.Minimum != nil {
			prop["minimum"] = *f.Minimum
		}
		if f.Maximum != nil {
			prop["maximum"] = *f.Maximum
		}
	case StringList:
		prop["type"] = "array"
		prop["items"] = map[string]interface{}{"type": "string"}
	}
	if f.NonEmpty {
		prop["minLength"] = 1
	}
	if def := f.defaultValue(); def != nil {
		prop["default"] = def
	} else if !f.Required {
		prop["default"] = nil
	}
	return prop
}
