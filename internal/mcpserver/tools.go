package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nmehta6/finqa/internal/config"
	"github.com/nmehta6/finqa/internal/domain/docModel"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the uploaded documents"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"how many chunks to retrieve as context (default 3)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer   string   `json:"answer"`
	Sources  []string `json:"sources,omitempty"`
	ChunkIds []int    `json:"chunk_ids,omitempty"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the query to rank document chunks against"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of chunks to return (default 3)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single ranked chunk.
type SearchResultOutput struct {
	ChunkId    int     `json:"chunk_id"`
	Document   string  `json:"document"`
	Provenance string  `json:"provenance"`
	Score      float64 `json:"score"`
	Content    string  `json:"content"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question from the uploaded financial documents",
	}, s.handleAsk)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Rank document chunks against a query without generating an answer",
	}, s.handleSearch)
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = config.TopK()
	}

	answer, err := s.qa.Answer(ctx, input.Question, topK)
	if err != nil {
		if errors.Is(err, docModel.ErrEmptyCorpus) {
			return nil, AskOutput{Answer: "No documents have been processed yet."}, nil
		}
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:   answer.Text,
		Sources:  answer.Sources,
		ChunkIds: answer.ChunkIds,
	}, nil
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = config.TopK()
	}

	ranked, err := s.qa.Search(ctx, input.Query, topK)
	if err != nil {
		if errors.Is(err, docModel.ErrEmptyCorpus) {
			return nil, SearchOutput{}, nil
		}
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(ranked)),
		Count:   len(ranked),
	}
	for i := range ranked {
		output.Results[i] = SearchResultOutput{
			ChunkId:    ranked[i].Chunk.Id,
			Document:   ranked[i].Chunk.DocName,
			Provenance: ranked[i].Chunk.Provenance(),
			Score:      ranked[i].Score,
			Content:    ranked[i].Chunk.Text,
		}
	}
	return nil, output, nil
}
