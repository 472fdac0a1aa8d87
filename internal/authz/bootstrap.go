package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 店铺后台预置角色
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "viewer",
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
		},
		{
			Role:     "catalog_manager",
			Inherits: []string{"viewer"},
			Policies: []Policy{
				{Object: "/admin/products", Action: "*"},
				{Object: "/admin/products/:id", Action: "*"},
				{Object: "/admin/products/:id/stock", Action: "PUT"},
				{Object: "/admin/categories", Action: "*"},
				{Object: "/admin/categories/:id", Action: "*"},
				{Object: "/admin/deals", Action: "*"},
				{Object: "/admin/deals/:id", Action: "*"},
				{Object: "/admin/upload", Action: "POST"},
			},
		},
		{
			Role:     "content_editor",
			Inherits: []string{"viewer"},
			Policies: []Policy{
				{Object: "/admin/posts", Action: "*"},
				{Object: "/admin/posts/:id", Action: "*"},
				{Object: "/admin/upload", Action: "POST"},
			},
		},
		{
			Role:     "order_manager",
			Inherits: []string{"viewer"},
			Policies: []Policy{
				{Object: "/admin/orders/:id/deliver", Action: "PUT"},
				{Object: "/admin/users/:id/status", Action: "PUT"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色，已存在的策略保持不变
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := s.EnsureRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			if err := s.Grant(role, policy.Object, policy.Action); err != nil {
				return err
			}
		}
	}
	return nil
}
