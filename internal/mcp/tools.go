package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/autodoc/internal/catalog"
	"github.com/mvp-joe/autodoc/internal/search"
)

// SearchResponse is the JSON body of autodoc_search results.
type SearchResponse struct {
	Results []SearchHit `json:"results"`
	Total   int         `json:"total"`
}

// SearchHit pairs a match with its documentation.
type SearchHit struct {
	search.Result
	Function *catalog.Function `json:"function,omitempty"`
}

// LookupResponse is the JSON body of autodoc_lookup results.
type LookupResponse struct {
	Functions []*catalog.Function `json:"functions"`
	Total     int                 `json:"total"`
}

// AddSearchTool registers the autodoc_search tool with an MCP server.
func AddSearchTool(s *server.MCPServer, searcher Searcher, cat Catalog) {
	tool := mcp.NewTool(
		"autodoc_search",
		mcp.WithDescription("Search the documented JavaScript API of this project. Matches function names, signatures, descriptions and examples, and returns each match with its full documentation."),
		mcp.WithString("query",
			mcp.Description("Keyword query. Supports field scoping (name:map, tags:public), boolean operators, phrases and wildcards. Empty lists everything.")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (1-100, default: 15)")),
		mcp.WithString("namespace",
			mcp.Description("Only functions in this namespace, e.g. 'Sequence'")),
		mcp.WithString("tag",
			mcp.Description("Only functions whose doc comment carries this tag, e.g. 'constructor'")),
		mcp.WithString("source",
			mcp.Description("Only functions from this source file, relative to the project root")),
	)

	s.AddTool(tool, createSearchHandler(searcher, cat))
}

func createSearchHandler(searcher Searcher, cat Catalog) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		query, _ := args["query"].(string)
		opts := search.Options{Limit: search.DefaultLimit}
		if limit, ok := args["limit"].(float64); ok {
			opts.Limit = int(limit)
		}
		opts.Namespace, _ = args["namespace"].(string)
		opts.Tag, _ = args["tag"].(string)
		opts.Source, _ = args["source"].(string)

		results, err := searcher.Search(ctx, query, opts)
		if err != nil {
			return nil, fmt.Errorf("search failed: %w", err)
		}

		ids := make([]int64, len(results))
		for i, r := range results {
			ids[i] = r.ID
		}
		fns, err := cat.Functions(catalog.Filter{IDs: ids})
		if err != nil {
			return nil, fmt.Errorf("failed to load functions: %w", err)
		}
		byID := make(map[int64]*catalog.Function, len(fns))
		for _, fn := range fns {
			byID[fn.ID] = fn
		}

		response := &SearchResponse{Results: make([]SearchHit, 0, len(results)), Total: len(results)}
		for _, r := range results {
			response.Results = append(response.Results, SearchHit{Result: r, Function: byID[r.ID]})
		}
		return jsonResult(response)
	}
}

// AddLookupTool registers the autodoc_lookup tool with an MCP server.
func AddLookupTool(s *server.MCPServer, cat Catalog) {
	tool := mcp.NewTool(
		"autodoc_lookup",
		mcp.WithDescription("Get the full documentation of a JavaScript function by name: signature, parameters, return type, tags and examples. Accepts qualified names (Sequence#map, Sequence.of) or short names (map)."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Qualified or short function name")),
	)

	s.AddTool(tool, createLookupHandler(cat))
}

func createLookupHandler(cat Catalog) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}
		name, ok := args["name"].(string)
		if !ok || name == "" {
			return mcp.NewToolResultError("name parameter is required"), nil
		}

		fns, err := cat.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("lookup failed: %w", err)
		}
		if len(fns) == 0 {
			return mcp.NewToolResultError(fmt.Sprintf("no documented function named %q", name)), nil
		}
		return jsonResult(&LookupResponse{Functions: fns, Total: len(fns)})
	}
}

// jsonResult returns v as a JSON text result (mcp-go convention).
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
