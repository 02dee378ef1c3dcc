package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/logger"
	"tableflip.dev/mytodo/pkg/web"
)

type Transport string

const (
	TransportStdio Transport = "stdio"
	// TransportHTTP is the streamable HTTP transport.
	TransportHTTP Transport = "http"

	DefaultPath = "/mcp"
	DefaultAddr = "127.0.0.1:8081"
)

// ParseTransport accepts "stdio" (the default) or "http".
func ParseTransport(s string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(s))); t {
	case "", TransportStdio:
		return TransportStdio, nil
	case TransportHTTP:
		return TransportHTTP, nil
	default:
		return "", fmt.Errorf("unsupported transport %q (expected stdio or http)", s)
	}
}

// Runner serves the task list over MCP until ctx is done or stdin closes.
type Runner struct {
	Service *app.Service
	Name    string
	Version string

	Transport Transport
	// Addr and Path are only used by the http transport.
	Addr string
	Path string

	Log logrus.FieldLogger
	// Out receives the listening banner.
	Out io.Writer
}

// NewServer builds the MCP server with every tool and resource registered.
func NewServer(name, version string, tasks *app.Service) *server.MCPServer {
	srv := server.NewMCPServer(
		name+" MCP",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read and change the offline to-do list: create, complete, mark, archive, restore and reorder tasks."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(tasks)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not serve mcp, no service")
	}
	name, version := r.Name, r.Version
	if name == "" {
		name = "mytodo"
	}
	if version == "" {
		version = "dev"
	}
	srv := NewServer(name, version, r.Service)

	switch r.Transport {
	case "", TransportStdio:
		return server.ServeStdio(srv)
	case TransportHTTP:
		return r.serveHTTP(ctx, srv)
	}
	return fmt.Errorf("unknown MCP transport %q", r.Transport)
}

// Endpoint is the normalised http path.
func (r Runner) Endpoint() string {
	p := strings.TrimSpace(r.Path)
	if p == "" {
		return DefaultPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	log := r.Log
	if log == nil {
		log = logger.Discard()
	}
	addr := r.Addr
	if addr == "" {
		addr = DefaultAddr
	}

	mux := http.NewServeMux()
	mux.Handle(r.Endpoint(), server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{
		Handler:           web.Logging(log, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if r.Out != nil {
		fmt.Fprintf(r.Out, "MCP server listening on http://%s%s\n", ln.Addr(), r.Endpoint())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if err := httpSrv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
