package services

import (
	"errors"
	"testing"
)

func TestEnsureDefaultAdminAndLogin(t *testing.T) {
	svc := NewAdminService(newTestDB(t), testConfig())

	if err := svc.EnsureDefaultAdmin(); err != nil {
		t.Fatalf("EnsureDefaultAdmin: %v", err)
	}
	// 再実行しても二重作成しない
	if err := svc.EnsureDefaultAdmin(); err != nil {
		t.Fatalf("EnsureDefaultAdmin(2回目): %v", err)
	}

	admin, err := svc.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if admin.Username != "admin" {
		t.Errorf("Username = %s", admin.Username)
	}

	if _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login("nobody", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}
