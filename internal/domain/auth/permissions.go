package auth

import "context"

const (
	RoleHR       = "hr"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

const (
	PermOrgRead            = "org.read"
	PermOrgWrite           = "org.write"
	PermContractsRead      = "contracts.read"
	PermContractsWrite     = "contracts.write"
	PermPerformanceRead    = "performance.read"
	PermPerformanceWrite   = "performance.write"
	PermPerformancePublish = "performance.publish"
	PermAuditRead          = "audit.read"
)

var DefaultPermissions = []string{
	PermOrgRead,
	PermOrgWrite,
	PermContractsRead,
	PermContractsWrite,
	PermPerformanceRead,
	PermPerformanceWrite,
	PermPerformancePublish,
	PermAuditRead,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermOrgRead,
		PermPerformanceRead,
		PermPerformanceWrite,
	},
	RoleManager: {
		PermOrgRead,
		PermContractsRead,
		PermPerformanceRead,
		PermPerformanceWrite,
	},
	RoleHR: {
		PermOrgRead,
		PermOrgWrite,
		PermContractsRead,
		PermContractsWrite,
		PermPerformanceRead,
		PermPerformanceWrite,
		PermPerformancePublish,
		PermAuditRead,
	},
}

func ValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}

// StaticPermissions resolves permissions from RolePermissions.
type StaticPermissions struct{}

func (StaticPermissions) HasPermission(_ context.Context, role, permission string) (bool, error) {
	for _, candidate := range RolePermissions[role] {
		if candidate == permission {
			return true, nil
		}
	}
	return false, nil
}
