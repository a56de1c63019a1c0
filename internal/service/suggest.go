package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const suggestPrompt = "Create a list of three open-ended and engaging questions formatted as a single string. Each question should be separated by '||'. These questions are for an anonymous social messaging platform and should be suitable for a diverse audience. Avoid personal or sensitive topics, focus instead on universal themes that encourage friendly interaction."

// Suggester proposes candidate anonymous messages for senders. The
// completion backend is an external collaborator, only the call lives here.
type Suggester interface {
	Suggest(ctx context.Context) ([]string, error)
}

// OpenAISuggester talks to an OpenAI-compatible chat completions endpoint.
type OpenAISuggester struct {
	Client *http.Client
}

func NewOpenAISuggester() *OpenAISuggester {
	return &OpenAISuggester{
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *OpenAISuggester) Suggest(ctx context.Context) ([]string, error) {
	payload, _ := json.Marshal(chatRequest{
		Model: viper.GetString("ai.model"),
		Messages: []chatMessage{
			{Role: "user", Content: suggestPrompt},
		},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		viper.GetString("ai.base_url")+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+viper.GetString("ai.api_key"))

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completion backend returned %v", resp.Status)
	}

	var body chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if len(body.Choices) == 0 {
		return nil, errors.New("completion backend returned no choices")
	}

	return SplitSuggestions(body.Choices[0].Message.Content), nil
}

// SplitSuggestions breaks the '||'-separated completion into individual
// candidate messages, dropping empty fragments.
func SplitSuggestions(raw string) []string {
	parts := strings.Split(raw, "||")

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
