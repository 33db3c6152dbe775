package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupVerbosityLevels(t *testing.T) {
	cases := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{9, zerolog.TraceLevel},
	}
	for _, tc := range cases {
		Setup(tc.verbosity, true)
		if got := zerolog.GlobalLevel(); got != tc.want {
			t.Errorf("verbosity %d: global level = %v, want %v", tc.verbosity, got, tc.want)
		}
	}
}

func TestGetLoggerDoesNotPanic(t *testing.T) {
	Setup(0, true)
	logger := GetLogger("test")
	logger.Debug().Msg("suppressed at warn level")
}
