package pid

import (
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code-runner/internal/memory"
)

func TestParseStatm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected memory.Memory
		wantErr  bool
	}{
		{name: "should read resident pages", input: "1000 25 10 1 0 30 0\n", expected: memory.Memory(25 * pageSize)},
		{name: "should fail on a short line", input: "1000", wantErr: true},
		{name: "should fail on a non number", input: "1000 many 10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := parseStatm([]byte(tt.input))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestMonitor(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("process memory is only sampled from /proc")
	}

	done := make(chan struct{})
	peak := Monitor(done, os.Getpid(), 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	close(done)

	assert.Greater(t, <-peak, memory.Memory(0))
}

func TestMonitorMissingProcess(t *testing.T) {
	done := make(chan struct{})
	peak := Monitor(done, -1, time.Millisecond)

	time.Sleep(5 * time.Millisecond)
	close(done)

	assert.Equal(t, memory.Memory(0), <-peak)
}
