package secret

import (
	"context"
	"testing"
)

func TestStatic(t *testing.T) {
	key, err := Static("sk-test").APIKey(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "sk-test" {
		t.Errorf("key = %q", key)
	}

	if _, err := Static("").APIKey(context.Background()); err == nil {
		t.Error("empty static key must error")
	}
}

func TestEnv(t *testing.T) {
	t.Setenv("ASKMAP_TEST_KEY", "sk-env")

	key, err := Env{Var: "ASKMAP_TEST_KEY"}.APIKey(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "sk-env" {
		t.Errorf("key = %q", key)
	}

	if _, err := (Env{Var: "ASKMAP_TEST_KEY_MISSING"}).APIKey(context.Background()); err == nil {
		t.Error("missing variable must error")
	}
}
