package authz

// Role is the shop-floor role carried in the JWT role claim
type Role string

const (
	RoleScheduler       Role = "scheduler"
	RoleSupervisor      Role = "supervisor"
	RoleAssembler       Role = "assembler"
	RoleMaterialHandler Role = "material_handler"
	RoleViewer          Role = "viewer"
)

// Capability names an action a role may perform
type Capability string

const (
	CapViewCards        Capability = "view_cards"
	CapManageCards      Capability = "manage_cards"
	CapTransitionCards  Capability = "transition_cards"
	CapClearForPicking  Capability = "clear_for_picking"
	CapBulkOperations   Capability = "bulk_operations"
	CapManageAssemblers Capability = "manage_assemblers"
	CapRaiseAndon       Capability = "raise_andon"
	CapResolveAndon     Capability = "resolve_andon"
	CapPostIdeas        Capability = "post_ideas"
)

// capabilities is a static lookup table; roles are fixed configuration, not
// data.
var capabilities = map[Role]map[Capability]bool{
	RoleScheduler: {
		CapViewCards:        true,
		CapManageCards:      true,
		CapTransitionCards:  true,
		CapClearForPicking:  true,
		CapBulkOperations:   true,
		CapManageAssemblers: true,
		CapRaiseAndon:       true,
		CapResolveAndon:     true,
		CapPostIdeas:        true,
	},
	RoleSupervisor: {
		CapViewCards:        true,
		CapManageCards:      true,
		CapTransitionCards:  true,
		CapClearForPicking:  true,
		CapManageAssemblers: true,
		CapRaiseAndon:       true,
		CapResolveAndon:     true,
		CapPostIdeas:        true,
	},
	RoleAssembler: {
		CapViewCards:       true,
		CapTransitionCards: true,
		CapRaiseAndon:      true,
		CapPostIdeas:       true,
	},
	RoleMaterialHandler: {
		CapViewCards:       true,
		CapTransitionCards: true,
		CapRaiseAndon:      true,
		CapPostIdeas:       true,
	},
	RoleViewer: {
		CapViewCards: true,
	},
}

// CanAccess reports whether the role holds the capability. Unknown roles hold
// nothing.
func CanAccess(role Role, cap Capability) bool {
	return capabilities[role][cap]
}

// IsValidRole reports whether the role is part of the fixed role set
func IsValidRole(role Role) bool {
	_, ok := capabilities[role]
	return ok
}
