package domain

// Actor identifies the authenticated caller of an operation. A zero Actor
// means "not logged in"; services reject it before touching any state.
type Actor struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsLoggedIn reports whether the actor carries an authenticated identity.
func (a Actor) IsLoggedIn() bool {
	return a.Username != ""
}
