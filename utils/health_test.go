package utils

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestCheckHealth(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	status := CheckHealth(context.Background(), client)
	assert.True(t, status.Redis)
	assert.Equal(t, status, GetHealthStatus())

	mr.Close()
	status = CheckHealth(context.Background(), client)
	assert.False(t, status.Redis)
	assert.False(t, GetHealthStatus().Redis)

	assert.False(t, CheckHealth(context.Background(), nil).Redis)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN", zapcore.InfoLevel))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("", zapcore.InfoLevel))
	assert.Equal(t, zapcore.DebugLevel, parseLevel("chatty", zapcore.DebugLevel))
}
