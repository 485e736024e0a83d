package config

import (
	"strings"
	"testing"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("ADVENT_TEST_SET", "value")
	t.Setenv("ADVENT_TEST_EMPTY", "")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"set", "v: ${ADVENT_TEST_SET}", "v: value"},
		{"unset", "v: ${ADVENT_TEST_UNSET}", "v: "},
		{"default when unset", "v: ${ADVENT_TEST_UNSET:-fallback}", "v: fallback"},
		{"default when empty", "v: ${ADVENT_TEST_EMPTY:-fallback}", "v: fallback"},
		{"default ignored when set", "v: ${ADVENT_TEST_SET:-fallback}", "v: value"},
		{"required and set", "v: ${ADVENT_TEST_SET:?need it}", "v: value"},
		{"several", "${ADVENT_TEST_SET}:${ADVENT_TEST_UNSET:-x}", "value:x"},
		{"bare dollar untouched", "cost: $5 and $ADVENT_TEST_SET", "cost: $5 and $ADVENT_TEST_SET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandEnv(tt.input)
			if err != nil {
				t.Fatalf("ExpandEnv(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ExpandEnv(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpandEnv_RequiredMissing(t *testing.T) {
	t.Setenv("ADVENT_TEST_EMPTY", "")

	_, err := ExpandEnv("a: ${ADVENT_TEST_UNSET:?session token}\nb: ${ADVENT_TEST_EMPTY:?}")
	if err == nil {
		t.Fatal("expected error for missing required variables")
	}
	for _, want := range []string{"ADVENT_TEST_UNSET (session token)", "ADVENT_TEST_EMPTY (required)"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestExpandEnv_InputsSection(t *testing.T) {
	t.Setenv("MINIO_ACCESS", "admin")
	t.Setenv("MINIO_SECRET", "secret")

	input := `inputs:
  backend: minio
  access_key: ${MINIO_ACCESS}
  secret_key: ${MINIO_SECRET:?minio secret}`

	got, err := ExpandEnv(input)
	if err != nil {
		t.Fatalf("ExpandEnv error: %v", err)
	}
	want := `inputs:
  backend: minio
  access_key: admin
  secret_key: secret`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
