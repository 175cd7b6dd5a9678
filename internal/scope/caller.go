package scope

// Caller is the already-authenticated identity a request carries.
// The zero value is an anonymous caller.
type Caller struct {
	UserID      uint
	Email       string
	IsStaff     bool
	IsSuperuser bool
}

// Anonymous reports whether the caller carries no authenticated identity.
func (c Caller) Anonymous() bool {
	return c.UserID == 0
}
