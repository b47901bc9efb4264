package domain

type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
)

// AuthContext is resolved once per request from the inbound credential.
type AuthContext struct {
	Subject string
	Role    Role
}

func Anonymous() AuthContext {
	return AuthContext{Role: RoleAnonymous}
}

func (a AuthContext) Authenticated() bool {
	return a.Role != RoleAnonymous && a.Role != ""
}

type Operation string

const (
	OpCreateRate Operation = "create_rate"
	OpUpdateRate Operation = "update_rate"
	OpDeleteRate Operation = "delete_rate"
	OpReadRate   Operation = "read_rate"
	OpConvert    Operation = "convert"
)

// Mutating reports whether the operation changes stored rates.
func (o Operation) Mutating() bool {
	switch o {
	case OpCreateRate, OpUpdateRate, OpDeleteRate:
		return true
	default:
		return false
	}
}
