package auth

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Permissions maps role -> []permission
type Permissions map[string][]string

type permissionsFile struct {
	Roles map[string][]string `yaml:"roles"`
}

// LoadPermissions loads a permissions.yml file and returns a role->permissions map.
func LoadPermissions(path string) (Permissions, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pf permissionsFile
	if err := yaml.Unmarshal(b, &pf); err != nil {
		return nil, err
	}
	return Permissions(pf.Roles), nil
}

// HasPermission checks the role -> permissions mapping.
// Role lookup is case-insensitive so stored roles (e.g. "Doctor") match
// permissions.yml keys regardless of casing.
func HasPermission(pr *Principal, permission string, perms Permissions) bool {
	pList, ok := perms[pr.Role]
	if !ok {
		for role, list := range perms {
			if strings.EqualFold(role, pr.Role) {
				pList, ok = list, true
				break
			}
		}
	}
	if !ok {
		return false
	}
	for _, p := range pList {
		if p == permission {
			return true
		}
	}
	return false
}
