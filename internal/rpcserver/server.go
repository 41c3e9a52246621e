package rpcserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"go.lsp.dev/jsonrpc2"

	"github.com/jarredhawkins/blocklocate"
	"github.com/jarredhawkins/blocklocate/internal/logging"
)

// Server speaks "blocklocate/diagnose" over a jsonrpc2.Conn, reusing the
// teacher's readWriteCloser stream-adapter so Serve can run against any
// reader/writer pair (typically stdin/stdout).
type Server struct {
	opts blocklocate.Options
}

// NewServer returns a Server that runs every diagnose request through
// blocklocate.Locate configured by opts.
func NewServer(opts blocklocate.Options) *Server {
	return &Server{opts: opts}
}

// Serve runs the JSON-RPC loop until ctx is done or the connection closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stream := jsonrpc2.NewStream(&readWriteCloser{in, out})
	conn := jsonrpc2.NewConn(stream)

	conn.Go(ctx, s.handler)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-conn.Done():
		return conn.Err()
	}
}

func (s *Server) handler(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	log := logging.Default()
	log.Debug("rpc request", "method", req.Method())

	switch req.Method() {
	case "initialize":
		return reply(ctx, InitializeResult{ServerInfo: &ServerInfo{Name: "blocklocate", Version: "0.1.0"}}, nil)
	case "initialized":
		return reply(ctx, nil, nil)
	case "shutdown":
		return reply(ctx, nil, nil)
	case "exit":
		return nil
	case "blocklocate/diagnose":
		return s.handleDiagnose(ctx, reply, req)
	default:
		return reply(ctx, nil, &jsonrpc2.Error{
			Code:    jsonrpc2.MethodNotFound,
			Message: "method not supported: " + req.Method(),
		})
	}
}

func (s *Server) handleDiagnose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DiagnoseParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, &jsonrpc2.Error{
			Code:    jsonrpc2.InvalidParams,
			Message: err.Error(),
		})
	}

	ranges, err := blocklocate.Locate(params.TextDocument.Text, s.opts)
	var locateErr *blocklocate.LocateError
	if err != nil && !errors.As(err, &locateErr) {
		return reply(ctx, nil, &jsonrpc2.Error{
			Code:    jsonrpc2.InternalError,
			Message: err.Error(),
		})
	}

	return reply(ctx, DiagnoseResult{
		URI:         params.TextDocument.URI,
		Diagnostics: toDiagnostics(params.TextDocument.Text, ranges),
	}, nil)
}

// toDiagnostics converts blocklocate's 1-based inclusive line ranges into
// LSP-shaped 0-based Diagnostics spanning each range's full lines.
func toDiagnostics(text string, ranges []blocklocate.Range) []Diagnostic {
	if len(ranges) == 0 {
		return nil
	}

	lines := strings.Split(text, "\n")
	out := make([]Diagnostic, len(ranges))
	for i, r := range ranges {
		endLine := r.End - 1
		endChar := uint32(0)
		if endLine >= 0 && endLine < len(lines) {
			endChar = uint32(len(lines[endLine]))
		}
		out[i] = Diagnostic{
			Range: Range{
				Start: Position{Line: uint32(r.Start - 1), Character: 0},
				End:   Position{Line: uint32(endLine), Character: endChar},
			},
			Severity: SeverityError,
			Source:   "blocklocate",
			Message:  "suspect block: excising this range would let the rest parse",
		}
	}
	return out
}

// readWriteCloser adapts separate reader/writer halves into the
// io.ReadWriteCloser jsonrpc2.NewStream expects.
type readWriteCloser struct {
	io.Reader
	io.Writer
}

func (rwc *readWriteCloser) Close() error { return nil }
