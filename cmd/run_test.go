package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/focuslog/internal/timer"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{30, "30s"},
		{59, "59s"},
		{60, "1m 0s"},
		{90, "1m 30s"},
		{3600, "1h 0m 0s"},
		{3661, "1h 1m 1s"},
		{7322, "2h 2m 2s"},
	}
	for _, tt := range tests {
		got := formatElapsed(tt.seconds)
		if got != tt.want {
			t.Errorf("formatElapsed(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestCountdownRunsCycles(t *testing.T) {
	var sessions []timer.Session
	engine := timer.New(timer.Options{
		Durations: func() (int, int) { return 2, 1 },
		OnFocusComplete: func(s timer.Session) error {
			sessions = append(sessions, s)
			return nil
		},
	})
	if err := engine.SelectTag("工作"); err != nil {
		t.Fatal(err)
	}
	if err := engine.Start(); err != nil {
		t.Fatal(err)
	}

	ticks := make(chan time.Time, 10)
	for i := 0; i < cap(ticks); i++ {
		ticks <- time.Time{}
	}
	var out bytes.Buffer
	if err := countdown(context.Background(), engine, &out, false, 2, ticks); err != nil {
		t.Fatal(err)
	}

	if len(sessions) != 2 {
		t.Fatalf("recorded %d sessions, want 2", len(sessions))
	}
	if got := len(ticks); got != 5 {
		t.Errorf("%d ticks left, want 5 (two focus runs of 2 and one break of 1)", got)
	}
	if !strings.Contains(out.String(), "Done: 2 focus session(s)") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestCountdownInterrupted(t *testing.T) {
	engine := timer.New(timer.Options{})
	if err := engine.SelectTag("学习"); err != nil {
		t.Fatal(err)
	}
	if err := engine.Start(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	if err := countdown(ctx, engine, &out, false, 1, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "the running focus was not recorded") {
		t.Errorf("unexpected output %q", out.String())
	}
}
