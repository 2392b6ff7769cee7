package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/memorygame-go/internal/config"
	"github.com/mcoot/memorygame-go/internal/testutil"
)

func TestNewServerConfigUsesListenAddress(t *testing.T) {
	cfg := config.Default()
	cfg.Host = "127.0.0.1"
	cfg.Port = 9090

	server := NewServer(nil, NewServerConfig(cfg), testutil.NopLogger())

	assert.Equal(t, "127.0.0.1:9090", server.Addr())
}

func TestServerConfigAddrBracketsIPv6(t *testing.T) {
	cfg := config.Default()
	cfg.Host = "::1"
	cfg.Port = 8080

	assert.Equal(t, "[::1]:8080", NewServerConfig(cfg).Addr())
}

func TestServerKeepsEventStreamsOpen(t *testing.T) {
	server := NewServer(nil, NewServerConfig(config.Default()), testutil.NopLogger())

	assert.Zero(t, server.server.ReadTimeout)
	assert.Zero(t, server.server.WriteTimeout)
	assert.Positive(t, server.server.ReadHeaderTimeout)
}
