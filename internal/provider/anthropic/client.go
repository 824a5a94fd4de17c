package anthropic

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	ai "github.com/spetersoncode/goalagent"
)

const (
	// DefaultModel is used when neither the client nor the request names a model.
	DefaultModel = "claude-sonnet-4-5"

	defaultMaxTokens = 4096
)

// Client wraps the Anthropic SDK to implement ai.ChatProvider.
type Client struct {
	client  *anthropic.Client
	model   string
	reqOpts []option.RequestOption
}

// New creates a new Anthropic client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{model: DefaultModel}
	for _, opt := range opts {
		opt(c)
	}

	// Retries are owned by the client package; SDK retries would multiply them.
	reqOpts := append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, c.reqOpts...)
	client := anthropic.NewClient(reqOpts...)
	c.client = &client
	return c
}

// ClientOption configures the Anthropic client.
type ClientOption func(*Client)

// WithModel sets the default model for requests.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.reqOpts = append(c.reqOpts, option.WithBaseURL(url))
		}
	}
}

// Chat sends a conversation and returns a complete response.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	options := ai.ApplyOptions(opts...)
	params, useJSONTool, err := c.buildParams(messages, options)
	if err != nil {
		return nil, ai.NewUserInputError(err.Error(), 0, err)
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	content := ""
	var toolCalls []ai.ToolCall
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			content += block.Text
		case "tool_use":
			if useJSONTool && block.Name == jsonResponseToolName {
				content = string(block.Input)
				continue
			}
			toolCalls = append(toolCalls, ai.ToolCall{
				ID:        block.ID,
				Name:      block.Name,
				Arguments: string(block.Input),
			})
		}
	}

	return &ai.Response{
		Content:      content,
		FinishReason: string(resp.StopReason),
		Usage: ai.Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		},
		ToolCalls: toolCalls,
	}, nil
}

// buildParams maps request options onto the Messages API. JSON mode has no
// native switch, so it is emulated by forcing a synthetic tool whose input
// is returned as the response content.
func (c *Client) buildParams(messages []ai.Message, options *ai.Options) (anthropic.MessageNewParams, bool, error) {
	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	maxTokens := int64(defaultMaxTokens)
	if options.MaxTokens > 0 {
		maxTokens = int64(options.MaxTokens)
	}

	msgs, system := convertMessages(messages)
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages:  msgs,
	}
	if len(system) > 0 {
		params.System = system
	}

	// Newer Claude models reject temperature and top_p together.
	if options.Temperature != nil {
		params.Temperature = anthropic.Float(*options.Temperature)
	} else if options.TopP != nil {
		params.TopP = anthropic.Float(*options.TopP)
	}

	tools, err := convertTools(options.Tools)
	if err != nil {
		return params, false, err
	}

	useJSONTool := options.ResponseFormat == ai.ResponseFormatJSON
	switch {
	case useJSONTool:
		jsonTool, jsonToolChoice := buildJSONTool()
		params.Tools = append(tools, jsonTool)
		params.ToolChoice = jsonToolChoice
	case len(tools) > 0:
		params.Tools = tools
		if options.ToolChoice != "" {
			params.ToolChoice = convertToolChoice(options.ToolChoice)
		}
	}
	return params, useJSONTool, nil
}

var _ ai.ChatProvider = (*Client)(nil)
