package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenhalal/backend/internal/config"
)

func TestConfigFrom(t *testing.T) {
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "2000", AllowedOrigins: []string{"http://localhost:1000"}},
		Store:     config.StoreConfig{Path: "data/greenhalal.db", Silent: true},
		Reference: config.ReferenceConfig{Path: "reference.yaml"},
		AI:        config.AIConfig{Disabled: true, APIKey: "sk-test", Model: "m"},
	}

	got := ConfigFrom(cfg)
	assert.Equal(t, "data/greenhalal.db", got.DBPath)
	assert.True(t, got.SilentDB)
	assert.Equal(t, "reference.yaml", got.ReferencePath)
	assert.Equal(t, []string{"http://localhost:1000"}, got.AllowedOrigins)
	assert.True(t, got.DisableAI)
	assert.Equal(t, "sk-test", got.AIConfig.APIKey)
	assert.Equal(t, "m", got.AIConfig.Model)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	server, _ := newTestServer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.ListenAndServe(ctx, "0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
