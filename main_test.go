package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}
}

func TestGetEnvDefault(t *testing.T) {
	t.Setenv("GRIDAGENT_TEST_KEY", "from-env")
	if got := getEnvDefault("GRIDAGENT_TEST_KEY", "fallback"); got != "from-env" {
		t.Errorf("expected env value, got %q", got)
	}
	if got := getEnvDefault("GRIDAGENT_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestInitializeServices(t *testing.T) {
	tmp := t.TempDir()
	originalConfigDir, originalMatchDir := *configDir, *matchDir
	*configDir = tmp
	*matchDir = filepath.Join(tmp, "matches")
	defer func() { *configDir, *matchDir = originalConfigDir, originalMatchDir }()

	agent, matches, configs, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	if agent == nil || matches == nil || configs == nil {
		t.Fatal("Expected all services to be initialized")
	}

	// An empty config directory falls back to the built-in default map.
	status := agent.Status()
	if status.GridWidth != 16 || status.GridHeight != 12 {
		t.Errorf("expected default 16x12 grid, got %dx%d", status.GridWidth, status.GridHeight)
	}
	if _, err := os.Stat(filepath.Join(tmp, "matches")); err != nil {
		t.Errorf("expected match directory to be created: %v", err)
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	originalConfigDir := *configDir
	*configDir = "/non/existent/path"
	defer func() { *configDir = originalConfigDir }()

	if _, _, _, err := initializeServices(); err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestFlagDefaults(t *testing.T) {
	if *port <= 0 || *port > 65535 {
		t.Errorf("Invalid default port: %d", *port)
	}
	if *serverURL == "" {
		t.Error("Server URL should have a default value")
	}
	if *agentName == "" {
		t.Error("Agent name should have a default value")
	}
	if *configDir == "" || *matchDir == "" {
		t.Error("Config and match directories should have default values")
	}
	if *matchCount < 1 {
		t.Errorf("Invalid default match count: %d", *matchCount)
	}
}

// main(), runAgent(), runHTTPServer(), and runStdioMCPWithInternalServer()
// block on servers or sockets; their components are covered by the
// transport/websocket, api, and transport/mcp package tests.
