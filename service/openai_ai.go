package service

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/sashabaranov/go-openai"
)

type OpenAIService struct {
	client *openai.Client
	model  string
}

func NewOpenAIService(baseURL, apiKey, model string) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL // Set this to your local LLM server URL
	}
	client := openai.NewClientWithConfig(config)
	return &OpenAIService{
		client: client,
		model:  model,
	}
}

// Generate runs one chat completion with the rendered prompt as the sole
// user message. The prompt itself carries the analyst instructions, so no
// extra system message is added.
func (s *OpenAIService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Model: s.model,
		},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response generated")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateStream streams the completion through the handler piece by piece.
func (s *OpenAIService) GenerateStream(ctx context.Context, prompt string, streamHandler StreamHandler) error {
	stream, err := s.client.CreateChatCompletionStream(
		ctx,
		openai.ChatCompletionRequest{
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Model: s.model,
		},
	)
	if err != nil {
		return err
	}
	defer stream.Close()
	for {
		resp, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Println("Error receiving response from stream:", err)
			return err
		}
		if len(resp.Choices) > 0 {
			streamHandler(resp.Choices[0].Delta.Content)
		}
	}
}
