// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/juridico-rag/pkg/types"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.LogConfig
		enabled zapcore.Level
		muted   zapcore.Level
		wantErr bool
	}{
		{name: "default info", cfg: types.LogConfig{}, enabled: zapcore.InfoLevel, muted: zapcore.DebugLevel},
		{name: "debug", cfg: types.LogConfig{Level: "debug"}, enabled: zapcore.DebugLevel, muted: zapcore.DebugLevel - 1},
		{name: "warn development", cfg: types.LogConfig{Level: "warn", Development: true}, enabled: zapcore.WarnLevel, muted: zapcore.InfoLevel},
		{name: "bad level", cfg: types.LogConfig{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.muted))
		})
	}
}
