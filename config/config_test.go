package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected sqlite driver by default, got %s", cfg.Database.Driver)
	}
	if cfg.Auth.JWTSecret != "" {
		t.Error("expected authentication to be disabled by default")
	}
	if cfg.Assistant.ReplyDelay != time.Second {
		t.Errorf("expected 1s reply delay, got %s", cfg.Assistant.ReplyDelay)
	}
	if cfg.Assistant.WelcomeMessage != DefaultWelcomeMessage {
		t.Errorf("unexpected welcome message %q", cfg.Assistant.WelcomeMessage)
	}
	if cfg.Assistant.SupersedePending {
		t.Error("expected pending replies not to be superseded by default")
	}
	if cfg.Assistant.Responder != "ledger" {
		t.Errorf("expected ledger responder, got %s", cfg.Assistant.Responder)
	}
	if cfg.Server.FormSessionLimit != 1000 || cfg.Server.FormSessionIdle != 30*time.Minute {
		t.Errorf("unexpected form session limits %d/%s", cfg.Server.FormSessionLimit, cfg.Server.FormSessionIdle)
	}
	if !reflect.DeepEqual(cfg.Categories.Expense, DefaultExpenseCategories) {
		t.Errorf("unexpected expense categories %v", cfg.Categories.Expense)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ASSISTANT_REPLY_DELAY", "250ms")
	t.Setenv("ASSISTANT_SUPERSEDE_PENDING", "true")
	t.Setenv("CATEGORIES_INCOME", " Salary , ,Freelance ")
	t.Setenv("REDIS_ENABLED", "not-a-bool")
	t.Setenv("FORM_SESSION_IDLE", "5m")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Assistant.ReplyDelay != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %s", cfg.Assistant.ReplyDelay)
	}
	if !cfg.Assistant.SupersedePending {
		t.Error("expected supersede to be enabled")
	}
	if want := []string{"Salary", "Freelance"}; !reflect.DeepEqual(cfg.Categories.Income, want) {
		t.Errorf("expected %v, got %v", want, cfg.Categories.Income)
	}
	if cfg.Redis.Enabled {
		t.Error("expected an unparsable bool to fall back to the default")
	}
	if cfg.Server.FormSessionIdle != 5*time.Minute {
		t.Errorf("expected 5m form session idle, got %s", cfg.Server.FormSessionIdle)
	}
}

func TestGetEnvAsSlice_EmptyFallsBack(t *testing.T) {
	t.Setenv("CATEGORIES_EXPENSE", " , ")

	got := getEnvAsSlice("CATEGORIES_EXPENSE", []string{"Food"})
	if !reflect.DeepEqual(got, []string{"Food"}) {
		t.Errorf("expected fallback, got %v", got)
	}
}
