package auth

// Principal is the authenticated identity threaded explicitly through every
// lifecycle call. It is populated once by register/login and carried by the
// JWT cookie — no ambient session globals anywhere.
//
// UserID, NID, and Name are all embedded so downstream calls never need a
// second user lookup.
type Principal struct {
	UserID int64  `json:"userId"`
	NID    string `json:"nid"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the principal may read the reporting surface.
func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}
