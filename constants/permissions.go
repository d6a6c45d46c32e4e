package constants

// Role permissions
const (
	PermAdminFull    = "medcare.admin.full-permit"
	PermCustomerFull = "medcare.customer.full-permit"
	PermAgentFull    = "medcare.delivery-agent.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	StaffPermissions = []string{
		PermAdminFull,
		PermAgentFull,
	}
)
