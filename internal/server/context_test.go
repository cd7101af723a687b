package server

import (
	"context"
	"testing"
)

func TestNewServerContext(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if sc.Context() == nil {
		t.Error("Context() returned nil")
	}
	if sc.IsShutdown() {
		t.Error("new context should not be shut down")
	}
	if sc.Metrics() != nil {
		t.Error("metrics should be nil until set")
	}
	if sc.AuditLogger() != nil {
		t.Error("audit logger should be nil until set")
	}
}

func TestServerContext_Shutdown(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if err := sc.Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("IsShutdown() = false after Shutdown()")
	}

	// Context should be canceled
	select {
	case <-sc.Context().Done():
	default:
		t.Error("context not canceled after Shutdown()")
	}

	// Second shutdown is a no-op
	if err := sc.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

func TestServerContext_ClientForUnknownAccount(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	// No token exists for an invalid account name, so no client is created
	if c := sc.GmailClientForAccount("no/such/account"); c != nil {
		t.Error("expected nil Gmail client for tokenless account")
	}
	if c := sc.CalendarClientForAccount("no/such/account"); c != nil {
		t.Error("expected nil Calendar client for tokenless account")
	}
	if c := sc.ChatClientForAccount("no/such/account"); c != nil {
		t.Error("expected nil Chat client for tokenless account")
	}
	if p := sc.ProjectorForAccount("no/such/account"); p != nil {
		t.Error("expected nil projector for tokenless account")
	}
}
