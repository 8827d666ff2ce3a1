package services

import (
	"fmt"

	"github.com/CianCode/Emetals-Web-App/domain"
)

// PolicyServiceImpl manages role access rules through a Casbin enforcer.
// Mutations persist through the adapter immediately, so a restarted
// instance comes back with the same rules.
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a policy service. *casbin.Enforcer satisfies
// domain.CasbinEnforcer directly.
func NewPolicyService(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// AddPolicy grants a role access to a resource/action pair.
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	added, err := p.enforcer.AddPolicy(role, resource, action)
	if err != nil {
		return fmt.Errorf("add policy: %w", err)
	}
	if !added {
		return domain.ErrPolicyExists
	}
	return p.enforcer.SavePolicy()
}

// RemovePolicy revokes a role's access to a resource/action pair.
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	removed, err := p.enforcer.RemovePolicy(role, resource, action)
	if err != nil {
		return fmt.Errorf("remove policy: %w", err)
	}
	if !removed {
		return domain.ErrPolicyNotFound
	}
	return p.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, _ := p.enforcer.GetPolicy()
	return policies
}
