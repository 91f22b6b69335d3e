package mcp

import (
	"context"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/store"
)

func TestRunnerEndpointDefaults(t *testing.T) {
	addr, path := Runner{}.endpoint()
	if addr != "127.0.0.1:8080" || path != "/mcp" {
		t.Fatalf("unexpected defaults %q %q", addr, path)
	}
	_, path = Runner{HTTPEndpointPath: "rpc"}.endpoint()
	if path != "/rpc" {
		t.Fatalf("expected leading slash, got %q", path)
	}
}

func TestRunnerRejectsHalfTLS(t *testing.T) {
	if _, err := (Runner{HTTPServerCert: "cert.pem"}).tls(); err == nil {
		t.Fatalf("expected error for cert without key")
	}
	if on, err := (Runner{}).tls(); err != nil || on {
		t.Fatalf("expected plain http, got %v %v", on, err)
	}
}

func TestRunnerRequiresStore(t *testing.T) {
	if err := (Runner{}).Do(context.Background()); err == nil {
		t.Fatalf("expected error without store")
	}
}

func TestRunnerServesHTTPUntilCancelled(t *testing.T) {
	s := app.New(store.NewMemory())
	s.Load(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	listening := make(chan net.Addr, 1)
	done := make(chan error, 1)
	go func() {
		done <- Runner{
			Store:           s,
			Transport:       TransportHTTP,
			HTTPListenAddr:  "127.0.0.1:0",
			OnHTTPListening: func(a net.Addr) { listening <- a },
		}.Do(ctx)
	}()

	var addr net.Addr
	select {
	case addr = <-listening:
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not start")
	}

	resp, err := http.Post("http://"+addr.String()+"/mcp", "application/json",
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	_ = resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("server did not stop")
	}
}
