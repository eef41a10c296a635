package evalparse

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/praxisprep/medeval/kit"
)

// RegisterMCP registers evalparse tools on an MCP server.
func (p *Parser) RegisterMCP(srv *mcp.Server) {
	p.registerParseTool(srv)
	p.registerReportTool(srv)
	p.registerSectionsTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// --- parse ---

type parseReq struct {
	Text      string `json:"text"`
	ID        string `json:"id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func (p *Parser) registerParseTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "evalparse_parse",
		Description: "Parse a free-form exam evaluation text into a structured record (score, categories, strengths, gaps, priorities, next steps, resources).",
		InputSchema: inputSchema(map[string]any{
			"text":      map[string]any{"type": "string", "description": "Raw evaluation text"},
			"id":        map[string]any{"type": "string", "description": "Opaque record ID, copied into the result"},
			"timestamp": map[string]any{"type": "string", "description": "Opaque timestamp, copied into the result"},
		}, []string{"text"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*parseReq)
		return p.Parse(r.Text, r.ID, r.Timestamp), nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeParseReq)
}

// --- report ---

func (p *Parser) registerReportTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "evalparse_report",
		Description: "Parse an evaluation text and return the record plus a diagnostic report (matched synonyms, missing sections, score source).",
		InputSchema: inputSchema(map[string]any{
			"text":      map[string]any{"type": "string", "description": "Raw evaluation text"},
			"id":        map[string]any{"type": "string", "description": "Opaque record ID"},
			"timestamp": map[string]any{"type": "string", "description": "Opaque timestamp"},
		}, []string{"text"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*parseReq)
		ev, report := p.ParseWithReport(r.Text, r.ID, r.Timestamp)
		return map[string]any{"evaluation": ev, "report": report}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeParseReq)
}

// --- sections ---

func (p *Parser) registerSectionsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "evalparse_sections",
		Description: "List the logical sections and heading synonyms the parser currently recognizes.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(_ context.Context, _ any) (any, error) {
		sections := map[string][]string{}
		for _, st := range p.tables.sectionSynonyms() {
			sections[st.name] = st.synonyms
		}
		return map[string]any{"sections": sections}, nil
	}

	decode := func(_ *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

func decodeParseReq(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	var r parseReq
	if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
		return nil, err
	}
	return &kit.MCPDecodeResult{Request: &r}, nil
}
