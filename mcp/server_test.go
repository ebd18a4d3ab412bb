package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	server := NewServer("test-rag", "0.0.1")
	server.RegisterTool(Tool{
		Name:        "echo",
		Description: "Echoes the text argument.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{"text": map[string]any{"type": "string"}},
			"required":   []string{"text"},
		},
		Handler: func(_ context.Context, args map[string]any) (string, error) {
			text, _ := args["text"].(string)
			if text == "" {
				return "", fmt.Errorf("'text' argument is required")
			}
			return text, nil
		},
	})
	return server
}

func serve(t *testing.T, server *Server, frames ...string) []map[string]any {
	t.Helper()
	input := strings.Join(frames, "\n") + "\n"
	var output bytes.Buffer
	require.NoError(t, server.Serve(context.Background(), strings.NewReader(input), &output))

	var responses []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(output.String()), "\n") {
		if line == "" {
			continue
		}
		var resp map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestInitialize(t *testing.T) {
	responses := serve(t, newTestServer(), `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)

	require.Len(t, responses, 1)
	result := responses[0]["result"].(map[string]any)
	assert.Equal(t, "2024-11-05", result["protocolVersion"])
	info := result["serverInfo"].(map[string]any)
	assert.Equal(t, "test-rag", info["name"])
	assert.Equal(t, "0.0.1", info["version"])
}

func TestToolsList(t *testing.T) {
	responses := serve(t, newTestServer(), `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)

	require.Len(t, responses, 1)
	result := responses[0]["result"].(map[string]any)
	tools := result["tools"].([]any)
	require.Len(t, tools, 1)
	tool := tools[0].(map[string]any)
	assert.Equal(t, "echo", tool["name"])
	assert.NotEmpty(t, tool["description"])
	assert.NotNil(t, tool["inputSchema"])
}

func TestToolsCall(t *testing.T) {
	responses := serve(t, newTestServer(),
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"echo","arguments":{"text":"hello"}}}`)

	require.Len(t, responses, 1)
	result := responses[0]["result"].(map[string]any)
	assert.Equal(t, false, result["isError"])
	content := result["content"].([]any)
	require.Len(t, content, 1)
	item := content[0].(map[string]any)
	assert.Equal(t, "text", item["type"])
	assert.Equal(t, "hello", item["text"])
}

func TestToolsCallHandlerError(t *testing.T) {
	responses := serve(t, newTestServer(),
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"echo","arguments":{}}}`)

	require.Len(t, responses, 1)
	result := responses[0]["result"].(map[string]any)
	assert.Equal(t, true, result["isError"])
	content := result["content"].([]any)
	item := content[0].(map[string]any)
	assert.Contains(t, item["text"], "Error: 'text' argument is required")
}

func TestToolsCallUnknownTool(t *testing.T) {
	responses := serve(t, newTestServer(),
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"nope","arguments":{}}}`)

	require.Len(t, responses, 1)
	rpcErr := responses[0]["error"].(map[string]any)
	assert.Equal(t, float64(-32602), rpcErr["code"])
	assert.Contains(t, rpcErr["message"], "unknown tool")
}

func TestUnknownMethod(t *testing.T) {
	responses := serve(t, newTestServer(), `{"jsonrpc":"2.0","id":6,"method":"bogus/method"}`)

	require.Len(t, responses, 1)
	rpcErr := responses[0]["error"].(map[string]any)
	assert.Equal(t, float64(-32601), rpcErr["code"])
}

func TestMalformedFrameDoesNotKillLoop(t *testing.T) {
	responses := serve(t, newTestServer(),
		`this is not json`,
		`{"jsonrpc":"2.0","id":7,"method":"ping"}`)

	require.Len(t, responses, 2)
	rpcErr := responses[0]["error"].(map[string]any)
	assert.Equal(t, float64(-32700), rpcErr["code"])
	assert.NotNil(t, responses[1]["result"])
}

func TestOversizedFrameDoesNotKillLoop(t *testing.T) {
	oversized := `{"jsonrpc":"2.0","id":10,"method":"ping","pad":"` +
		strings.Repeat("x", MaxFrameBytes) + `"}`
	responses := serve(t, newTestServer(),
		oversized,
		`{"jsonrpc":"2.0","id":11,"method":"ping"}`)

	require.Len(t, responses, 2)
	rpcErr := responses[0]["error"].(map[string]any)
	assert.Equal(t, float64(-32700), rpcErr["code"])
	assert.Contains(t, rpcErr["message"], "frame exceeds")
	assert.Equal(t, float64(11), responses[1]["id"])
	assert.NotNil(t, responses[1]["result"])
}

func TestNotificationsGetNoResponse(t *testing.T) {
	responses := serve(t, newTestServer(),
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":8,"method":"ping"}`)

	require.Len(t, responses, 1)
	assert.Equal(t, float64(8), responses[0]["id"])
}

func TestRegisterToolReplacesDuplicate(t *testing.T) {
	server := newTestServer()
	server.RegisterTool(Tool{
		Name:        "echo",
		Description: "replaced",
		Handler: func(context.Context, map[string]any) (string, error) {
			return "new", nil
		},
	})

	responses := serve(t, server, `{"jsonrpc":"2.0","id":9,"method":"tools/list"}`)
	tools := responses[0]["result"].(map[string]any)["tools"].([]any)
	require.Len(t, tools, 1)
	assert.Equal(t, "replaced", tools[0].(map[string]any)["description"])
}
