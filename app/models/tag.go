package models

// Validate checks if the tag meets all validation requirements
func (t *Tag) Validate() error {
	return validateStruct(t)
}

// Less orders tags by name, then id.
func (t *Tag) Less(other *Tag) bool {
	if t.Name != other.Name {
		return t.Name < other.Name
	}
	return t.ID < other.ID
}

// Validate checks if the association meets all validation requirements
func (pt *PostTag) Validate() error {
	return validateStruct(pt)
}
