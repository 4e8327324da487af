package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"studentadmin/retry"
	"studentadmin/types"
)

func TestTerminal_PrintsOneLinePerNotification(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Success("Student deleted")
	term.Error("Failed to delete student")
	term.Warning("check related records")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "✓")
	assert.Contains(t, lines[0], "Student deleted")
	assert.Contains(t, lines[1], "✗")
	assert.Contains(t, lines[1], "Failed to delete student")
	assert.Contains(t, lines[2], "!")
	assert.Contains(t, lines[2], "check related records")
}

func TestTerminal_ConcurrentWritesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			term.Success("ok")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 50)
}

func TestLog_MapsSeverityToLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLog(zap.New(core))

	l.Success("a")
	l.Warning("b")
	l.Error("c")

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "a", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "error", entries[2].ContextMap()["severity"])
}

type fakeWriter struct {
	mu       sync.Mutex
	failures int
	hang     bool
	attempts int
	msgs     []kafka.Message
	closed   bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.hang {
		<-ctx.Done()
		return ctx.Err()
	}
	f.mu.Lock()
	f.attempts++
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("leader not available")
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func newTestKafka(w *fakeWriter, logger *zap.Logger) *Kafka {
	k := newKafka(context.Background(), w, logger)
	k.policy = retry.Policy{Attempts: 3, Initial: time.Millisecond}
	k.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return k
}

func TestKafka_PublishesNotification(t *testing.T) {
	w := &fakeWriter{failures: 1}
	k := newTestKafka(w, nil)

	k.Warning("some failed")

	require.Len(t, w.msgs, 1)
	var n types.Notification
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &n))
	assert.Equal(t, types.SeverityWarning, n.Severity)
	assert.Equal(t, "some failed", n.Text)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, n.ID, string(w.msgs[0].Key))
	assert.True(t, n.Time.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))

	require.NoError(t, k.Close())
	assert.True(t, w.closed)
}

func TestKafka_DropsAfterRetries(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	w := &fakeWriter{failures: 10}
	k := newTestKafka(w, zap.New(core))

	k.Error("boom")

	assert.Empty(t, w.msgs)
	assert.Equal(t, 1, logs.FilterMessage("notification dropped").Len())
}

func TestKafka_UnreachableBrokerHoldsCallerBriefly(t *testing.T) {
	w := &fakeWriter{failures: 100}
	k := newKafka(context.Background(), w, nil)

	start := time.Now()
	k.Warning("some failed")
	took := time.Since(start)

	assert.Less(t, took, PublishTimeout)
	assert.Equal(t, PublishPolicy().Attempts, w.attempts)
	assert.Empty(t, w.msgs)
}

func TestKafka_HangingWriteIsCutOff(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	k := newKafka(context.Background(), &fakeWriter{hang: true}, zap.New(core))
	k.timeout = 50 * time.Millisecond

	start := time.Now()
	k.Success("Student deleted")

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, logs.FilterMessage("notification dropped").Len())
}

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
}

func (r *recorder) Success(text string) { r.add("success:" + text) }
func (r *recorder) Error(text string)   { r.add("error:" + text) }
func (r *recorder) Warning(text string) { r.add("warning:" + text) }

func TestMulti_ForwardsToAll(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := Multi(a, b)

	m.Success("x")
	m.Error("y")
	m.Warning("z")

	want := []string{"success:x", "error:y", "warning:z"}
	assert.Equal(t, want, a.calls)
	assert.Equal(t, want, b.calls)
}
