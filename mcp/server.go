// Package mcp implements a minimal tool-call server speaking newline-delimited
// JSON-RPC 2.0 over a stream transport, typically stdin/stdout.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
)

const (
	protocolVersion = "2024-11-05"
	// MaxFrameBytes caps a single JSON-RPC frame. Larger frames are rejected
	// without killing the serve loop.
	MaxFrameBytes = 1 << 20
)

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// ToolHandler executes one tool invocation and returns its text result.
type ToolHandler func(ctx context.Context, args map[string]any) (string, error)

// Tool describes a callable operation exposed to clients.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Handler     ToolHandler
}

// Server dispatches JSON-RPC requests to registered tools. Requests are read
// one at a time from the transport; responses are serialized through a mutex
// so handlers could answer concurrently without interleaving frames.
type Server struct {
	name    string
	version string

	tools  []Tool
	byName map[string]Tool

	writeMu sync.Mutex
}

// NewServer creates a tool-call server with the given identity.
func NewServer(name, version string) *Server {
	return &Server{
		name:    name,
		version: version,
		byName:  make(map[string]Tool),
	}
}

// RegisterTool adds a tool. Registering a duplicate name replaces the old one.
func (s *Server) RegisterTool(tool Tool) {
	if _, exists := s.byName[tool.Name]; !exists {
		s.tools = append(s.tools, tool)
	} else {
		for i := range s.tools {
			if s.tools[i].Name == tool.Name {
				s.tools[i] = tool
			}
		}
	}
	s.byName[tool.Name] = tool
}

// Wire types.

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type contentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type callResult struct {
	Content []contentItem `json:"content"`
	IsError bool          `json:"isError"`
}

type toolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// errFrameTooLong marks a frame that exceeded MaxFrameBytes. The rest of the
// offending line has already been drained when it is returned.
var errFrameTooLong = errors.New("frame too long")

// Serve reads frames from r until EOF or context cancellation. Malformed or
// oversized frames produce a parse-error response and the loop continues.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line, err := readFrame(reader)
		if errors.Is(err, errFrameTooLong) {
			s.writeResponse(w, response{JSONRPC: "2.0", ID: nullID(), Error: &rpcError{
				Code:    codeParseError,
				Message: fmt.Sprintf("frame exceeds %d bytes", MaxFrameBytes),
			}})
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			s.dispatch(ctx, w, trimmed)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}

// readFrame reads one newline-terminated frame. A frame longer than
// MaxFrameBytes is discarded to the end of its line and reported as
// errFrameTooLong so the serve loop survives it.
func readFrame(reader *bufio.Reader) ([]byte, error) {
	var frame []byte
	for {
		chunk, err := reader.ReadSlice('\n')
		frame = append(frame, chunk...)
		if err == nil || errors.Is(err, io.EOF) {
			if len(frame) > MaxFrameBytes {
				return nil, errFrameTooLong
			}
			return frame, err
		}
		if !errors.Is(err, bufio.ErrBufferFull) {
			return frame, err
		}
		if len(frame) > MaxFrameBytes {
			if drainErr := drainLine(reader); drainErr != nil && !errors.Is(drainErr, io.EOF) {
				return nil, drainErr
			}
			return nil, errFrameTooLong
		}
	}
}

// drainLine discards input up to and including the next newline.
func drainLine(reader *bufio.Reader) error {
	for {
		_, err := reader.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return err
	}
}

func (s *Server) dispatch(ctx context.Context, w io.Writer, line []byte) {
	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		s.writeResponse(w, response{JSONRPC: "2.0", ID: nullID(), Error: &rpcError{Code: codeParseError, Message: "parse error"}})
		return
	}
	s.handle(ctx, w, req)
}

func (s *Server) handle(ctx context.Context, w io.Writer, req request) {
	// Notifications carry no id and get no response.
	if len(req.ID) == 0 || string(req.ID) == "null" {
		log.Printf("MCP: Notification: %s", req.Method)
		return
	}

	switch req.Method {
	case "initialize":
		s.writeResult(w, req.ID, map[string]any{
			"protocolVersion": protocolVersion,
			"serverInfo":      map[string]any{"name": s.name, "version": s.version},
			"capabilities":    map[string]any{"tools": map[string]any{}},
		})
	case "ping":
		s.writeResult(w, req.ID, map[string]any{})
	case "tools/list":
		descriptors := make([]toolDescriptor, 0, len(s.tools))
		for _, tool := range s.tools {
			descriptors = append(descriptors, toolDescriptor{
				Name:        tool.Name,
				Description: tool.Description,
				InputSchema: tool.InputSchema,
			})
		}
		s.writeResult(w, req.ID, map[string]any{"tools": descriptors})
	case "tools/call":
		s.handleCall(ctx, w, req)
	default:
		s.writeError(w, req.ID, codeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method))
	}
}

func (s *Server) handleCall(ctx context.Context, w io.Writer, req request) {
	var params callParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(w, req.ID, codeInvalidRequest, "invalid tools/call params")
		return
	}
	tool, ok := s.byName[params.Name]
	if !ok {
		s.writeError(w, req.ID, codeInvalidParams, fmt.Sprintf("unknown tool: %s", params.Name))
		return
	}

	log.Printf("MCP: Calling tool %s", params.Name)
	text, err := tool.Handler(ctx, params.Arguments)
	if err != nil {
		s.writeResult(w, req.ID, callResult{
			Content: []contentItem{{Type: "text", Text: "Error: " + err.Error()}},
			IsError: true,
		})
		return
	}
	s.writeResult(w, req.ID, callResult{
		Content: []contentItem{{Type: "text", Text: text}},
	})
}

func (s *Server) writeResult(w io.Writer, id json.RawMessage, result any) {
	s.writeResponse(w, response{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) writeError(w io.Writer, id json.RawMessage, code int, message string) {
	s.writeResponse(w, response{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: message}})
}

func (s *Server) writeResponse(w io.Writer, resp response) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	encoded, err := json.Marshal(resp)
	if err != nil {
		log.Printf("MCP: Failed to encode response: %v", err)
		return
	}
	encoded = append(encoded, '\n')
	if _, err := w.Write(encoded); err != nil {
		log.Printf("MCP: Failed to write response: %v", err)
	}
}

func nullID() json.RawMessage {
	return json.RawMessage("null")
}
