package auth

// Operation names a privileged action checked against the access policy.
type Operation string

const (
	OpCrewList           Operation = "crew.list"
	OpAircraftManage     Operation = "aircraft.manage"
	OpAircraftRead       Operation = "aircraft.read"
	OpLogbookWrite       Operation = "logbook.write"
	OpLogbookRead        Operation = "logbook.read"
	OpExpenseWrite       Operation = "expense.write"
	OpExpenseRead        Operation = "expense.read"
	OpReconciliationRead Operation = "reconciliation.read"
)

// Policy maps each operation to the set of roles allowed to perform it.
// It is the single source of truth consulted by the authorization
// middleware; handlers never carry their own role lists.
type Policy map[Operation][]Role

// DefaultPolicy returns the static permission table for the application.
func DefaultPolicy() Policy {
	return Policy{
		OpCrewList: {
			RoleAdmin, RoleManagerMaster, RoleFinanceMaster,
			RoleOperations, RoleFinance, RoleChiefPilot,
		},
		OpAircraftManage: {
			RoleAdmin, RoleManagerMaster, RoleOperations,
		},
		OpAircraftRead: {
			RoleAdmin, RoleManagerMaster, RoleFinanceMaster,
			RoleOperations, RoleFinance, RoleChiefPilot,
			RoleCrewMember, RoleShareholder,
		},
		OpLogbookWrite: {
			RoleAdmin, RoleOperations, RoleChiefPilot, RoleCrewMember,
		},
		OpLogbookRead: {
			RoleAdmin, RoleManagerMaster, RoleOperations,
			RoleChiefPilot, RoleCrewMember,
		},
		OpExpenseWrite: {
			RoleAdmin, RoleFinanceMaster, RoleFinance, RoleCrewMember,
		},
		OpExpenseRead: {
			RoleAdmin, RoleManagerMaster, RoleFinanceMaster,
			RoleFinance, RoleShareholder,
		},
		OpReconciliationRead: {
			RoleAdmin, RoleManagerMaster, RoleFinanceMaster, RoleFinance,
		},
	}
}

// RequiredRoles returns the role set for op. An operation absent from the
// policy yields an empty set, which Allowed treats as deny.
func (p Policy) RequiredRoles(op Operation) []Role {
	return p[op]
}

// Allowed reports whether the caller's role set intersects the required set.
// An empty required set (unknown operation) always denies; an empty caller
// set is never allowed for a non-empty required set.
func Allowed(callerRoles, requiredRoles []Role) bool {
	if len(requiredRoles) == 0 || len(callerRoles) == 0 {
		return false
	}
	have := make(map[Role]struct{}, len(callerRoles))
	for _, r := range callerRoles {
		have[r] = struct{}{}
	}
	for _, r := range requiredRoles {
		if _, ok := have[r]; ok {
			return true
		}
	}
	return false
}

// CrewRoles is the role set that marks a user as flight crew.
// Used by the crew listing to select which profiles count as crew.
func CrewRoles() []Role {
	return []Role{RoleCrewMember, RoleChiefPilot}
}
