package models

type UserRole string

const (
	UserRoleSuperAdmin UserRole = "super_admin"
	SpaceAdminRole     UserRole = "space_admin"
	RequesterRole      UserRole = "requester"
	ApproverRole       UserRole = "approver"
	DesignerRole       UserRole = "designer"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleSuperAdmin, SpaceAdminRole, RequesterRole, ApproverRole, DesignerRole:
		return true
	}
	return false
}
