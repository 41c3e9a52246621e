// Package rpcserver exposes Locate over JSON-RPC 2.0 on stdio, grounded on
// the teacher's internal/lsp (Server.Serve's stream-adapter pattern and its
// minimal hand-rolled protocol types), scaled down to the one request this
// domain needs: "diagnose this document's suspect block ranges."
package rpcserver

// Position and Range mirror the LSP wire shapes (0-indexed line/character)
// so a diagnose result can be consumed by an LSP-aware client without
// translation.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Severity mirrors LSP's DiagnosticSeverity; blocklocate only ever reports
// errors, but the field is kept so a client's generic diagnostic renderer
// doesn't need a special case for this server.
type Severity int

const (
	SeverityError Severity = 1
)

// Diagnostic is one suspect block, LSP-Diagnostic-shaped.
type Diagnostic struct {
	Range    Range    `json:"range"`
	Severity Severity `json:"severity"`
	Source   string   `json:"source"`
	Message  string   `json:"message"`
}

// TextDocumentItem is the subset of LSP's TextDocumentItem this server reads
// from a diagnose request.
type TextDocumentItem struct {
	URI  string `json:"uri"`
	Text string `json:"text"`
}

// DiagnoseParams is the params object for the "blocklocate/diagnose" method.
type DiagnoseParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// DiagnoseResult is the result object for "blocklocate/diagnose".
type DiagnoseResult struct {
	URI         string       `json:"uri"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// ServerInfo mirrors LSP's InitializeResult.serverInfo.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// InitializeResult is the result of the "initialize" method, mirroring LSP
// just enough that a generic LSP client recognizes this as a server with no
// capabilities of its own beyond the custom diagnose request.
type InitializeResult struct {
	ServerInfo *ServerInfo `json:"serverInfo,omitempty"`
}
