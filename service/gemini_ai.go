package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiService struct {
	apiKeys    []string
	currentKey int
	client     *genai.Client
	model      *genai.GenerativeModel
	modelName  string
	mu         sync.Mutex
}

func NewGeminiService(apiKeys []string, modelName string) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}

	service := &GeminiService{
		apiKeys:    apiKeys,
		currentKey: 0,
		modelName:  modelName,
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	if err := service.initClient(); err != nil {
		return nil, err
	}
	return service, nil
}

// initClient replaces client and model for the current key. Callers must
// hold mu.
func (s *GeminiService) initClient() error {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return err
	}
	s.client = client
	s.model = client.GenerativeModel(s.modelName)
	return nil
}

func (s *GeminiService) rotateAPIKey() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	if err := s.client.Close(); err != nil {
		return err
	}
	return s.initClient()
}

func (s *GeminiService) generativeModel() *genai.GenerativeModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

func (s *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.generativeModel().GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		// Try rotating API key if there's an error
		if err := s.rotateAPIKey(); err != nil {
			return "", err
		}
		resp, err = s.generativeModel().GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return "", err
		}
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("no response generated")
	}

	content := ""
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					content += string(text)
				}
			}
		}
	}
	return content, nil
}
