// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/agentgate-foundation/agentgate/lib/clock"
)

type fakeSupervisor struct {
	restarts   int
	restartErr error
	status     string
	journals   []string
	journalAt  int
}

func (f *fakeSupervisor) Restart(ctx context.Context, unit string) error {
	f.restarts++
	return f.restartErr
}

func (f *fakeSupervisor) Status(ctx context.Context, unit string) string {
	return f.status
}

func (f *fakeSupervisor) Journal(ctx context.Context, unit string, since time.Time) (string, error) {
	if f.journalAt < len(f.journals) {
		entry := f.journals[f.journalAt]
		f.journalAt++
		return entry, nil
	}
	if len(f.journals) == 0 {
		return "", nil
	}
	return f.journals[len(f.journals)-1], nil
}

type fakeLog struct {
	size   int64
	chunks []string
	reads  int
}

func (f *fakeLog) Size() (int64, error) { return f.size, nil }

func (f *fakeLog) ReadFrom(offset int64) (string, error) {
	if f.reads < len(f.chunks) {
		chunk := f.chunks[f.reads]
		f.reads++
		return chunk, nil
	}
	if len(f.chunks) == 0 {
		return "", nil
	}
	return f.chunks[len(f.chunks)-1], nil
}

func testObserver(supervisor Supervisor, log LogStore) (*Observer, *clock.FakeClock) {
	fake := clock.Fake(time.Unix(1766500000, 0))
	return &Observer{
		Supervisor:   supervisor,
		Log:          log,
		Clock:        fake,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Unit:         "agentgate-gateway",
		PollInterval: 2 * time.Second,
		Deadline:     22 * time.Second,
	}, fake
}

func TestRestartAndVerifyConfirmed(t *testing.T) {
	supervisor := &fakeSupervisor{status: "active"}
	log := &fakeLog{chunks: []string{
		"",
		"gateway booting\nagent model: openai/gpt-5\nready",
	}}
	observer, fake := testObserver(supervisor, log)

	verdict := observer.RestartAndVerify(context.Background(), "openai/gpt-5")
	if !verdict.Healthy {
		t.Fatalf("verdict = %+v, want healthy", verdict)
	}
	if supervisor.restarts != 1 {
		t.Errorf("restarts = %d, want 1", supervisor.restarts)
	}
	// Confirmed on the second poll: two sleeps, no deadline wait.
	if sleeps := fake.Sleeps(); len(sleeps) != 2 {
		t.Errorf("sleeps = %v, want 2 poll sleeps", sleeps)
	}
}

func TestRestartAndVerifyConfirmationFromJournal(t *testing.T) {
	supervisor := &fakeSupervisor{
		status:   "active",
		journals: []string{"agent model: openai/gpt-5"},
	}
	observer, _ := testObserver(supervisor, &fakeLog{})

	verdict := observer.RestartAndVerify(context.Background(), "openai/gpt-5")
	if !verdict.Healthy {
		t.Fatalf("verdict = %+v, confirmation in the journal should count", verdict)
	}
}

func TestRestartAndVerifyWrongModelNotConfirmed(t *testing.T) {
	supervisor := &fakeSupervisor{status: "active"}
	log := &fakeLog{chunks: []string{"agent model: anthropic/claude-opus-4-6"}}
	observer, _ := testObserver(supervisor, log)

	verdict := observer.RestartAndVerify(context.Background(), "openai/gpt-5")
	if verdict.Healthy {
		t.Fatal("a different model's confirmation line must not count")
	}
}

func TestRestartAndVerifyFailurePhraseShortCircuits(t *testing.T) {
	supervisor := &fakeSupervisor{status: "active"}
	log := &fakeLog{chunks: []string{"ERROR unknown model: nobody/nothing"}}
	observer, fake := testObserver(supervisor, log)

	verdict := observer.RestartAndVerify(context.Background(), "nobody/nothing")
	if verdict.Healthy {
		t.Fatal("failure phrase should fail the verdict")
	}
	if !strings.Contains(strings.ToLower(verdict.Reason), "unknown model") {
		t.Errorf("reason = %q, want the matched phrase", verdict.Reason)
	}
	if len(fake.Sleeps()) != 1 {
		t.Errorf("failure phrase should short-circuit, slept %v", fake.Sleeps())
	}
}

func TestRestartAndVerifyInactiveShortCircuits(t *testing.T) {
	supervisor := &fakeSupervisor{status: "failed"}
	observer, fake := testObserver(supervisor, &fakeLog{})

	verdict := observer.RestartAndVerify(context.Background(), "openai/gpt-5")
	if verdict.Healthy {
		t.Fatal("inactive service should fail the verdict")
	}
	if !strings.Contains(verdict.Reason, "failed") {
		t.Errorf("reason = %q, want the unit status", verdict.Reason)
	}
	if len(fake.Sleeps()) != 1 {
		t.Errorf("inactive status should short-circuit, slept %v", fake.Sleeps())
	}
}

func TestRestartAndVerifyDeadlineStillActive(t *testing.T) {
	supervisor := &fakeSupervisor{status: "active"}
	observer, fake := testObserver(supervisor, &fakeLog{})

	verdict := observer.RestartAndVerify(context.Background(), "openai/gpt-5")
	if verdict.Healthy {
		t.Fatal("silence until the deadline is a failure")
	}
	if !strings.Contains(verdict.Reason, "never appeared") {
		t.Errorf("reason = %q, want the unconfirmed wording", verdict.Reason)
	}
	// 22s deadline at a 2s interval: eleven sleeps, then stop.
	if sleeps := fake.Sleeps(); len(sleeps) != 11 {
		t.Errorf("slept %d times, want 11", len(sleeps))
	}
}

func TestRestartAndVerifyRestartError(t *testing.T) {
	supervisor := &fakeSupervisor{restartErr: errors.New("unit not loaded")}
	observer, fake := testObserver(supervisor, &fakeLog{})

	verdict := observer.RestartAndVerify(context.Background(), "openai/gpt-5")
	if verdict.Healthy {
		t.Fatal("restart failure should fail the verdict")
	}
	if !strings.Contains(verdict.Reason, "unit not loaded") {
		t.Errorf("reason = %q, want the restart error", verdict.Reason)
	}
	if len(fake.Sleeps()) != 0 {
		t.Errorf("no polling after a failed restart, slept %v", fake.Sleeps())
	}
}

func TestRestartAndVerifyCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	supervisor := &fakeSupervisor{status: "active"}
	observer, _ := testObserver(supervisor, &fakeLog{})

	verdict := observer.RestartAndVerify(ctx, "openai/gpt-5")
	if verdict.Healthy {
		t.Fatal("canceled context should fail the verdict")
	}
	if !strings.Contains(verdict.Reason, "canceled") {
		t.Errorf("reason = %q", verdict.Reason)
	}
}

func TestMatchFailurePatterns(t *testing.T) {
	for _, text := range []string{
		"Unknown model: nobody/nothing",
		"ERROR unknown model: x",
		"upstream said Model Not Found",
		"GET /v1/models 404 no such model",
	} {
		if _, found := matchFailure(text); !found {
			t.Errorf("matchFailure(%q) should match", text)
		}
	}

	if phrase, found := matchFailure("agent model: openai/gpt-5\nall good"); found {
		t.Errorf("matchFailure matched %q in healthy output", phrase)
	}
}
