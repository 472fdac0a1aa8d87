package authz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:authz_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestAuthorizeWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.Grant("merch", "/admin/products/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.AssignRoles(1, []string{"merch"}); err != nil {
		t.Fatalf("assign roles failed: %v", err)
	}

	allow, err := svc.Authorize(1, "/api/v1/admin/products/42", "get")
	if err != nil {
		t.Fatalf("authorize failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.Authorize(1, "/api/v1/admin/products/42", "DELETE")
	if err != nil {
		t.Fatalf("authorize failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}

	if err := svc.Revoke("merch", "/admin/products/:id", "GET"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if allow, _ := svc.Authorize(1, "/admin/products/42", "GET"); allow {
		t.Fatalf("expected revoked policy to deny")
	}
}

func TestAssignRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.Grant("merch", "/admin/deals", "GET"); err != nil {
		t.Fatalf("grant merch policy failed: %v", err)
	}
	if err := svc.Grant("editor", "/admin/posts", "GET"); err != nil {
		t.Fatalf("grant editor policy failed: %v", err)
	}

	if err := svc.AssignRoles(2, []string{"merch"}); err != nil {
		t.Fatalf("assign first role failed: %v", err)
	}
	if err := svc.AssignRoles(2, []string{"editor"}); err != nil {
		t.Fatalf("assign second role failed: %v", err)
	}
	roles, err := svc.RolesOf(2)
	if err != nil {
		t.Fatalf("roles of failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:editor" {
		t.Fatalf("roles want [role:editor], got=%v", roles)
	}

	if allow, _ := svc.Authorize(2, "/admin/deals", "GET"); allow {
		t.Fatalf("expected old role permission removed")
	}
	if allow, _ := svc.Authorize(2, "/admin/posts", "GET"); !allow {
		t.Fatalf("expected new role permission granted")
	}
}

func TestNormalizeObjectAndRole(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "admin/orders", want: "/admin/orders"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		if got := NormalizeObject(item.in); got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}

	if role, err := NormalizeRole(" catalog manager "); err != nil || role != "role:catalog_manager" {
		t.Fatalf("unexpected role normalization: %q %v", role, err)
	}
	for _, bad := range []string{"", "role:", "role:__anchor__"} {
		if _, err := NormalizeRole(bad); !errors.Is(err, ErrRoleRequired) {
			t.Fatalf("expected ErrRoleRequired for %q, got=%v", bad, err)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	// 重复执行不报错
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}

	roles, err := svc.Roles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	want := map[string]bool{
		"role:viewer":          true,
		"role:catalog_manager": true,
		"role:content_editor":  true,
		"role:order_manager":   true,
	}
	for _, role := range roles {
		delete(want, role)
	}
	if len(want) != 0 {
		t.Fatalf("builtin roles missing: %v", want)
	}

	if err := svc.AssignRoles(3, []string{"catalog_manager"}); err != nil {
		t.Fatalf("assign roles failed: %v", err)
	}
	if allow, _ := svc.Authorize(3, "/api/v1/admin/orders", "GET"); !allow {
		t.Fatalf("expected inherited viewer permission")
	}
	if allow, _ := svc.Authorize(3, "/api/v1/admin/orders/9/deliver", "PUT"); allow {
		t.Fatalf("catalog manager should not deliver orders")
	}
	if allow, _ := svc.Authorize(3, "/api/v1/admin/deals/5", "DELETE"); !allow {
		t.Fatalf("catalog manager should manage deals")
	}

	policies, err := svc.PoliciesOf(3)
	if err != nil {
		t.Fatalf("policies of failed: %v", err)
	}
	found := false
	for _, item := range policies {
		if item.Object == "/admin/*" && item.Action == "GET" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected inherited viewer policy in %v", policies)
	}
}
