package services

import (
	"errors"
	"testing"

	"github.com/CianCode/Emetals-Web-App/domain"
	"github.com/CianCode/Emetals-Web-App/internal/mocks"
)

func TestPolicyServiceAddPolicySaves(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()

	var added []interface{}
	enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
		added = params
		return true, nil
	}
	var saved bool
	enforcer.SavePolicyFunc = func() error {
		saved = true
		return nil
	}

	svc := NewPolicyService(enforcer)
	if err := svc.AddPolicy("role_user", "/api/auth/logout", "POST"); err != nil {
		t.Fatalf("add policy: %v", err)
	}
	if len(added) != 3 || added[0] != "role_user" {
		t.Errorf("added = %v", added)
	}
	if !saved {
		t.Error("policy not persisted")
	}
}

func TestPolicyServiceAddPolicyError(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
		return false, errors.New("adapter down")
	}
	var saved bool
	enforcer.SavePolicyFunc = func() error {
		saved = true
		return nil
	}

	svc := NewPolicyService(enforcer)
	if err := svc.AddPolicy("role_user", "/x", "GET"); err == nil {
		t.Fatal("expected error")
	}
	if saved {
		t.Error("save attempted after a failed add")
	}
}

func TestPolicyServiceAddDuplicate(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
		return false, nil
	}
	var saved bool
	enforcer.SavePolicyFunc = func() error {
		saved = true
		return nil
	}

	svc := NewPolicyService(enforcer)
	err := svc.AddPolicy("role_user", "/api/auth/logout", "POST")
	if !errors.Is(err, domain.ErrPolicyExists) {
		t.Fatalf("err = %v, want ErrPolicyExists", err)
	}
	if saved {
		t.Error("save attempted for a duplicate rule")
	}
}

func TestPolicyServiceRemoveMissing(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	enforcer.RemovePolicyFunc = func(params ...interface{}) (bool, error) {
		return false, nil
	}

	svc := NewPolicyService(enforcer)
	err := svc.RemovePolicy("role_user", "/nope", "GET")
	if !errors.Is(err, domain.ErrPolicyNotFound) {
		t.Fatalf("err = %v, want ErrPolicyNotFound", err)
	}
}

func TestPolicyServiceCheckPermission(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	enforcer.EnforceFunc = func(rvals ...interface{}) (bool, error) {
		return rvals[0] == "role_admin", nil
	}

	svc := NewPolicyService(enforcer)

	allowed, err := svc.CheckPermission("role_admin", "/api/admin/policies", "GET")
	if err != nil || !allowed {
		t.Errorf("admin check = (%v, %v)", allowed, err)
	}
	allowed, err = svc.CheckPermission("role_user", "/api/admin/policies", "GET")
	if err != nil || allowed {
		t.Errorf("user check = (%v, %v)", allowed, err)
	}
}

func TestPolicyServiceGetPolicies(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	enforcer.GetPolicyFunc = func() ([][]string, error) {
		return [][]string{{"role_admin", "/api/admin/*", "(GET|POST|PUT|DELETE)"}}, nil
	}

	svc := NewPolicyService(enforcer)
	policies := svc.GetPolicies()
	if len(policies) != 1 || policies[0][0] != "role_admin" {
		t.Errorf("policies = %v", policies)
	}
}
