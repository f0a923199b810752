package entity

// OperatorLoginData is what the token middleware stores in fiber locals for
// authenticated hotel staff.
type OperatorLoginData struct {
	ID    string
	Email string
	Role  string
}

const (
	OperatorRoleAdmin   = "admin"
	OperatorRoleAnalyst = "analyst"
)
