package models

// ActorContext carries the authenticated caller's identity and role into
// the service layer. Services never read ambient session state.
type ActorContext struct {
	UserID string
	Role   Role
}

func (a ActorContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a ActorContext) IsLecturer() bool {
	return a.Role == RoleLecturer
}

func (a ActorContext) IsStudent() bool {
	return a.Role == RoleStudent
}
