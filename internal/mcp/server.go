package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/MrSnakeDoc/langdocs/internal/domain"
	"github.com/MrSnakeDoc/langdocs/internal/index"
	"github.com/MrSnakeDoc/langdocs/internal/logger"
	"github.com/MrSnakeDoc/langdocs/internal/markdown"
	"github.com/MrSnakeDoc/langdocs/internal/validate"
	"github.com/MrSnakeDoc/langdocs/internal/version"
)

//go:embed instructions.md
var instructions string

// ResourceScheme prefixes entry resource URIs: langdocs://{language}/{entry}
const ResourceScheme = "langdocs://"

type Server struct {
	mcpServer   *server.MCPServer
	index       *index.ContentIndex
	logger      logger.Logger
	searchLimit int
}

// NewServer exposes the content index over MCP
func NewServer(idx *index.ContentIndex, searchLimit int, log logger.Logger) *Server {
	s := &Server{index: idx, logger: log, searchLimit: searchLimit}

	mcpServer := server.NewMCPServer(
		"langdocs",
		version.Version,
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("list_languages",
			mcp.WithDescription("List the documented languages with their number of categories, entries and validation diagnostics."),
		),
		s.handleListLanguages,
	)

	mcpServer.AddTool(
		mcp.NewTool("get_entry",
			mcp.WithDescription("Get one documentation entry rendered as markdown, including code samples, quiz and challenge."),
			mcp.WithString("language",
				mcp.Description("Language ID (e.g., \"java\")"),
				mcp.Required(),
			),
			mcp.WithString("entry_id",
				mcp.Description("Entry ID (e.g., \"hash-map\")"),
				mcp.Required(),
			),
		),
		s.handleGetEntry,
	)

	mcpServer.AddTool(
		mcp.NewTool("search_entries",
			mcp.WithDescription("Keyword search over entry IDs, titles, tags, summaries and prose. Supports `tag:<tag>` and `level:<difficulty>` filters inside the query. Returns URIs that can be read as resources."),
			mcp.WithString("query",
				mcp.Description("Search query"),
				mcp.Required(),
			),
			mcp.WithString("language",
				mcp.Description("Optional language ID to search within"),
			),
			mcp.WithNumber("limit",
				mcp.Description(fmt.Sprintf("Maximum number of results (default %d)", s.searchLimit)),
			),
		),
		s.handleSearchEntries,
	)

	mcpServer.AddTool(
		mcp.NewTool("validate_content",
			mcp.WithDescription("Return the validation diagnostics of the loaded content, for one language or all of them."),
			mcp.WithString("language",
				mcp.Description("Optional language ID"),
			),
		),
		s.handleValidateContent,
	)
}

func (s *Server) registerResources(mcpServer *server.MCPServer) {
	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			ResourceScheme+"{language}/{entry}",
			"Documentation entry",
			mcp.WithTemplateDescription("Read one documentation entry as markdown. Search results return these URIs."),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		s.handleReadResource,
	)
}

func (s *Server) handleListLanguages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.index.Languages())
}

func (s *Server) handleGetEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	lang, _ := args["language"].(string)
	id, _ := args["entry_id"].(string)
	if lang == "" || id == "" {
		return mcp.NewToolResultError("missing required parameters: language, entry_id"), nil
	}

	ref, ok := s.index.Entry(lang, id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("entry not found: %s/%s", lang, id)), nil
	}

	return mcp.NewToolResultText(markdown.RenderEntry(lang, ref.Entry)), nil
}

type searchHit struct {
	URI string `json:"uri"`
	index.SearchResult
}

func (s *Server) handleSearchEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	raw, _ := args["query"].(string)
	query := domain.ParseQuery(raw)
	if query.IsEmpty() {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	lang, _ := args["language"].(string)
	if lang != "" {
		if _, ok := s.index.Language(lang); !ok {
			return mcp.NewToolResultError("unknown language: " + lang), nil
		}
	}

	limit := s.searchLimit
	if l, ok := args["limit"].(float64); ok && l >= 1 {
		limit = int(l)
	}

	results := s.index.Search(query, lang, limit)
	hits := make([]searchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, searchHit{URI: EntryURI(r.Language, r.EntryID), SearchResult: r})
	}

	s.logger.Debug("mcp search",
		logger.String("query", raw),
		logger.Int("results", len(hits)))

	return jsonResult(hits)
}

func (s *Server) handleValidateContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lang, _ := req.GetArguments()["language"].(string)

	if lang != "" {
		report, ok := s.index.Report(lang)
		if !ok {
			return mcp.NewToolResultError("unknown language: " + lang), nil
		}
		return jsonResult([]validate.Report{report})
	}

	return jsonResult(s.index.Reports())
}

func (s *Server) handleReadResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	lang, id, err := ParseEntryURI(uri)
	if err != nil {
		return nil, err
	}

	ref, ok := s.index.Entry(lang, id)
	if !ok {
		return nil, fmt.Errorf("entry not found: %s/%s", lang, id)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     markdown.RenderEntry(lang, ref.Entry),
		},
	}, nil
}

// EntryURI returns the resource URI of an entry
func EntryURI(lang, entryID string) string {
	return ResourceScheme + lang + "/" + entryID
}

// ParseEntryURI splits a langdocs://{language}/{entry} URI
func ParseEntryURI(uri string) (lang, entryID string, err error) {
	rest, ok := strings.CutPrefix(uri, ResourceScheme)
	if !ok {
		return "", "", fmt.Errorf("invalid resource URI: %s", uri)
	}
	lang, entryID, ok = strings.Cut(rest, "/")
	if !ok || lang == "" || entryID == "" || strings.Contains(entryID, "/") {
		return "", "", fmt.Errorf("invalid resource URI: %s", uri)
	}
	return lang, entryID, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// Run serves MCP over stdin/stdout until the input is closed
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}
