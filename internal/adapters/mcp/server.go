// Package mcpadapter exposes hybrid retrieval as MCP tools over stdio so
// editor agents and LLM clients can query the corpus directly.
package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lexmx/legal-assistant/internal/core/domain"
	"github.com/lexmx/legal-assistant/internal/core/ports"
	"github.com/lexmx/legal-assistant/internal/core/usecase"
)

type Server struct {
	search ports.SearchService
	docs   ports.DocumentReader
	logger *slog.Logger
	srv    *server.MCPServer
}

func NewServer(search ports.SearchService, docs ports.DocumentReader, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		search: search,
		docs:   docs,
		logger: logger,
	}

	srv := server.NewMCPServer(
		"legal-assistant",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	searchTool := mcp.NewTool("buscar_legal",
		mcp.WithDescription("Hybrid keyword and semantic search over indexed Mexican legal documents. Returns ranked chunks with article metadata."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural-language question or article citation, e.g. 'artículo 123 constitucional'."),
		),
		mcp.WithNumber("top_k",
			mcp.Description("Maximum number of results to return (default 10)."),
		),
		mcp.WithString("legal_area",
			mcp.Description("Restrict results to one legal area, e.g. 'laboral' or 'fiscal'."),
		),
	)
	srv.AddTool(searchTool, s.handleSearch)

	documentTool := mcp.NewTool("consultar_documento",
		mcp.WithDescription("Fetch metadata and processing state of an uploaded legal document."),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("Identifier returned by the upload endpoint."),
		),
	)
	srv.AddTool(documentTool, s.handleGetDocument)

	s.srv = srv
	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.srv)
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	queryType := usecase.ClassifyQuery(query)
	results, err := s.search.HybridSearch(ctx, query, domain.SearchOptions{
		TopK:      req.GetInt("top_k", 0),
		QueryType: queryType,
		LegalArea: req.GetString("legal_area", ""),
	})
	if err != nil {
		s.logger.Error("mcp search failed", slog.String("error", err.Error()))
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	payload, err := json.Marshal(map[string]any{
		"query_type": queryType,
		"results":    results,
		"total":      len(results),
	})
	if err != nil {
		return nil, fmt.Errorf("encode results: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) handleGetDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get document: %v", err)), nil
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}
