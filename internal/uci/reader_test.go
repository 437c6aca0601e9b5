package uci

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainEventually(t *testing.T, r *Reader, n int) []Message {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	var got []Message
	for time.Now().Before(deadline) && len(got) < n {
		if msg, ok := r.TryRecv(); ok {
			got = append(got, msg)
			continue
		}
		time.Sleep(time.Millisecond)
	}
	return got
}

func TestReaderForwardsKnownCommands(t *testing.T) {
	in := strings.NewReader("uci\nposition startpos\nquit\n")
	var out bytes.Buffer
	r := NewReader(in, &out)

	got := drainEventually(t, r, 3)
	require.Len(t, got, 3)
	assert.Equal(t, KindUCI, got[0].Kind)
	assert.Equal(t, KindPosition, got[1].Kind)
	assert.Equal(t, KindQuit, got[2].Kind)
}

func TestReaderForwardsFirstIsReadyOnly(t *testing.T) {
	in := strings.NewReader("isready\nisready\nisready\n")
	var out bytes.Buffer
	r := NewReader(in, &out)

	got := drainEventually(t, r, 1)
	require.Len(t, got, 1)
	assert.Equal(t, KindIsReady, got[0].Kind)

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	_, ok := r.TryRecv()
	assert.False(t, ok, "subsequent isready should be self-answered, not queued")
	assert.Equal(t, "readyok\nreadyok\n", out.String())
}

func TestReaderReportsClosed(t *testing.T) {
	in := strings.NewReader("quit\n")
	var out bytes.Buffer
	r := NewReader(in, &out)
	drainEventually(t, r, 1)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && !r.Closed() {
		time.Sleep(time.Millisecond)
	}
	assert.True(t, r.Closed())
}
