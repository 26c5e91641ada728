package redis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/langdocs/internal/logger"
)

func validOptions() ConnectOptions {
	return ConnectOptions{
		Addr:           "127.0.0.1:1",
		DialTimeout:    50 * time.Millisecond,
		ReadTimeout:    50 * time.Millisecond,
		WriteTimeout:   50 * time.Millisecond,
		PoolSize:       1,
		ConnectTimeout: time.Minute,
		RetryInterval:  time.Hour,
		MaxWait:        time.Hour,
		PingTimeout:    50 * time.Millisecond,
		WarnThreshold:  3,
	}
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ConnectOptions)
		wantErr bool
	}{
		{name: "valid", mutate: func(*ConnectOptions) {}},
		{name: "zero connect timeout", mutate: func(o *ConnectOptions) { o.ConnectTimeout = 0 }, wantErr: true},
		{name: "zero retry interval", mutate: func(o *ConnectOptions) { o.RetryInterval = 0 }, wantErr: true},
		{name: "zero max wait", mutate: func(o *ConnectOptions) { o.MaxWait = 0 }, wantErr: true},
		{name: "zero ping timeout", mutate: func(o *ConnectOptions) { o.PingTimeout = 0 }, wantErr: true},
		{name: "negative warn threshold", mutate: func(o *ConnectOptions) { o.WarnThreshold = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)
			err := validateOptions(opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client, err := New(ctx, validOptions(), logger.Nop())
	if err == nil {
		t.Fatal("expected an error for a canceled context")
	}
	if client != nil {
		t.Error("client should be nil on failure")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewInvalidOptions(t *testing.T) {
	opts := validOptions()
	opts.ConnectTimeout = 0

	if _, err := New(context.Background(), opts, logger.Nop()); err == nil {
		t.Error("expected an error for invalid options")
	}
}

func TestValidateOptionsReportsAll(t *testing.T) {
	err := validateOptions(ConnectOptions{WarnThreshold: -1})
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, name := range []string{"ConnectTimeout", "RetryInterval", "MaxWait", "PingTimeout", "WarnThreshold"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("Expected error to mention %s, got %v", name, err)
		}
	}
}

func TestBackoff(t *testing.T) {
	b := &backoff{next: time.Second, max: 5 * time.Second}
	expected := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 5 * time.Second, 5 * time.Second}

	for i, want := range expected {
		if got := b.wait(); got != want {
			t.Errorf("wait() #%d = %v, want %v", i+1, got, want)
		}
	}
}
