package utils

import (
	"context"
	"errors"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const DefaultOpenAIModel = openai.GPT4oMini

// OpenAIClient talks to the chat completion and Whisper endpoints.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIClient) Provider() string {
	return "openai"
}

func (c *OpenAIClient) CompleteJSON(ctx context.Context, req CompletionRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", wrapOpenAIError("chat completion", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &ProviderError{Stage: "chat completion", Message: "No response from OpenAI", Err: ErrUnexpectedBehaviorAI}
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcribe sends the media to whisper-1. Whisper accepts mp4 containers
// directly so no audio extraction happens here.
func (c *OpenAIClient) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filename,
		Reader:   audio,
		Language: "en",
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", NewTranscriptionError(apiErr.Message, err)
		}
		return "", NewTranscriptionError(err.Error(), err)
	}
	return resp.Text, nil
}

func wrapOpenAIError(stage string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{Stage: stage, Message: "OpenAI API error: " + apiErr.Message, Err: err}
	}
	return &ProviderError{Stage: stage, Message: err.Error(), Err: err}
}
