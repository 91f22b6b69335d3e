package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/logging"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Runner coordinates MCP server startup.
type Runner struct {
	Store   *app.Service
	Name    string
	Version string
	Log     *slog.Logger

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Store == nil {
		return errors.New("mcp runner requires a planner store")
	}
	name := r.Name
	if name == "" {
		name = "studyplan"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	log := r.Log
	if log == nil {
		log = logging.Discard()
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Manage study tasks and goals, inspect the weekly timeline and workload statistics."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(r.Store)
	registerResources(srv, svc)
	registerTools(srv, svc)

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv, log)
	case TransportStdio:
		log.Debug("mcp: serving on stdio")
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

// endpoint returns the listen address and path with defaults applied.
func (r Runner) endpoint() (addr, path string) {
	addr = r.HTTPListenAddr
	if addr == "" {
		addr = "127.0.0.1:8080"
	}
	path = r.HTTPEndpointPath
	if path == "" {
		path = "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return addr, path
}

func (r Runner) tls() (bool, error) {
	switch {
	case r.HTTPServerCert == "" && r.HTTPServerKey == "":
		return false, nil
	case r.HTTPServerCert == "" || r.HTTPServerKey == "":
		return false, errors.New("both http tls cert and key must be provided")
	}
	return true, nil
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer, log *slog.Logger) error {
	useTLS, err := r.tls()
	if err != nil {
		return err
	}
	addr, path := r.endpoint()

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mcp: listen %s: %w", addr, err)
	}
	log.Info("mcp: listening", "addr", ln.Addr().String(), "path", path, "tls", useTLS)
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn("mcp: shutdown", "error", err)
		}
	})
	defer stop()

	if useTLS {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
