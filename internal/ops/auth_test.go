package ops

import (
	"testing"

	"hookline/internal/config"
	"hookline/internal/errors"
)

func adminConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.AdminUsername = "root"
	cfg.AdminPassword = "hunter2"
	return cfg
}

func TestAuthenticateAdmin(t *testing.T) {
	cfg := adminConfig()

	if !AuthenticateAdmin(cfg, "root", "hunter2") {
		t.Error("valid admin credentials rejected")
	}
	if AuthenticateAdmin(cfg, "root", "wrong") {
		t.Error("wrong password accepted")
	}
	if AuthenticateAdmin(cfg, "nobody", "hunter2") {
		t.Error("wrong username accepted")
	}
}

func TestAuthenticateAdmin_Unconfigured(t *testing.T) {
	cfg := config.DefaultConfig()
	if AuthenticateAdmin(cfg, "", "") {
		t.Error("empty credentials must not authenticate when no admin is configured")
	}
}

func TestLogin_Admin(t *testing.T) {
	st := newTestStore(t)
	cfg := adminConfig()

	out, err := Login(st, cfg, LoginInput{Username: "root", Password: "hunter2"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !out.Admin {
		t.Error("Admin = false, want true")
	}
	if userRecord(t, st, "root") != nil {
		t.Error("admin login must not create a ledger record")
	}
}

func TestLogin_User(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DefaultPassword = "letmein"
	st, err := openTestStore(t, cfg)
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	mustAddUser(t, st, "alice", 5)

	out, err := Login(st, cfg, LoginInput{Username: "alice", Password: "letmein"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if out.Admin {
		t.Error("Admin = true, want false")
	}
	if out.Credits != 5 {
		t.Errorf("Credits = %d, want 5", out.Credits)
	}
	if userRecord(t, st, "alice").LastLogin == nil {
		t.Error("last_login not stamped")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	st := newTestStore(t)
	mustAddUser(t, st, "alice", 5)

	_, err := Login(st, config.DefaultConfig(), LoginInput{Username: "alice", Password: "nope"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
	if userRecord(t, st, "alice").LastLogin != nil {
		t.Error("failed login must not stamp last_login")
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	st := newTestStore(t)
	_, err := Login(st, config.DefaultConfig(), LoginInput{Username: "ghost", Password: "anything"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}
