package models

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	return validateStruct(u)
}

// ApplyDefaults substitutes the placeholder picture when no image URL was given.
func (u *User) ApplyDefaults() {
	if u.ImageURL == "" {
		u.ImageURL = DefaultImageURL
	}
}

// FullName returns "First Last".
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// SortName returns "Last, First", the form used by the user list.
func (u *User) SortName() string {
	return u.LastName + ", " + u.FirstName
}

// Less reports whether u sorts before other in the user list: by last name,
// then first name, then id. Comparison is case-sensitive byte order.
func (u *User) Less(other *User) bool {
	if u.LastName != other.LastName {
		return u.LastName < other.LastName
	}
	if u.FirstName != other.FirstName {
		return u.FirstName < other.FirstName
	}
	return u.ID < other.ID
}
