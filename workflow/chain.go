package workflow

import "github.com/Abhi9av-Git/LeaveEase/models"

// chains is the fixed role order per application type. Data, not
// control flow: the engine only ever walks these slices.
var chains = map[models.ApplicationType][]models.Role{
	models.TypeOutpass: {models.RoleCounsellor, models.RoleWarden},
	models.TypeLeave:   {models.RoleCounsellor, models.RoleHOD, models.RoleJointDirector, models.RoleWarden},
}

// ChainFor returns the ordered approver roles for an application type.
func ChainFor(t models.ApplicationType) []models.Role {
	return chains[t]
}

// InChain reports whether the role appears in the chain for the type.
func InChain(t models.ApplicationType, role models.Role) bool {
	for _, r := range chains[t] {
		if r == role {
			return true
		}
	}
	return false
}

// NextLevel returns the level after current in the chain for t,
// or LevelCompleted when current is the last role.
func NextLevel(t models.ApplicationType, current models.Level) (models.Level, bool) {
	chain := chains[t]
	for i, r := range chain {
		if models.Level(r) == current {
			if i == len(chain)-1 {
				return models.LevelCompleted, true
			}
			return models.Level(chain[i+1]), true
		}
	}
	return "", false
}
