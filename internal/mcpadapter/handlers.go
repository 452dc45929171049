package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/reading"
)

// ReadingInput is the MCP tool input schema (matches HTTP API field names).
type ReadingInput struct {
	Question string `json:"question" jsonschema:"user's question for the reading"`
	NumCards int    `json:"num_cards,omitempty" jsonschema:"number of cards to draw (default: 3)"`
	CallerID string `json:"caller_id,omitempty" jsonschema:"caller identifier for rate limiting"`
}

// CardInfoInput is the MCP tool input schema for a single card lookup.
type CardInfoInput struct {
	Name string `json:"name" jsonschema:"canonical card name, e.g. The Fool or Ace of Cups"`
}

// NewReadingHandler returns a tool handler that uses the given service.
// Pass the returned function to mcp.AddTool.
func NewReadingHandler(service *reading.Service) func(context.Context, *mcp.CallToolRequest, ReadingInput) (*mcp.CallToolResult, reading.ReadingResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ReadingInput) (*mcp.CallToolResult, reading.ReadingResponse, error) {
		return GetReading(ctx, service, req, input)
	}
}

// GetReading runs the full reading pipeline and returns the result.
func GetReading(
	ctx context.Context,
	service *reading.Service,
	req *mcp.CallToolRequest,
	input ReadingInput,
) (*mcp.CallToolResult, reading.ReadingResponse, error) {
	request := reading.ReadingRequest{
		Question: input.Question,
		NumCards: input.NumCards,
		CallerID: input.CallerID,
	}
	request.SetDefaults()
	if err := request.Validate(); err != nil {
		return nil, reading.ReadingResponse{}, err
	}

	session, err := service.GetReading(ctx, request.Question, request.NumCards, request.CallerID)
	if err != nil {
		return nil, reading.ReadingResponse{}, err
	}

	return nil, reading.NewReadingResponse(session), nil
}

// NewCardInfoHandler returns a tool handler for single card lookups.
// Pass the returned function to mcp.AddTool.
func NewCardInfoHandler(service *reading.Service) func(context.Context, *mcp.CallToolRequest, CardInfoInput) (*mcp.CallToolResult, reading.CardInfoResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CardInfoInput) (*mcp.CallToolResult, reading.CardInfoResponse, error) {
		entry, err := service.CardInfo(ctx, input.Name)
		if err != nil {
			return nil, reading.CardInfoResponse{}, err
		}
		return nil, reading.NewCardInfoResponse(entry), nil
	}
}
