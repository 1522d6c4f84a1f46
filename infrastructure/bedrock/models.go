package bedrock

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	anthropicVersion = "bedrock-2023-05-31"
	titanTopP        = 0.9
)

type modelFamily int

const (
	familyGeneric modelFamily = iota
	familyAnthropic
	familyTitan
)

func familyOf(modelID string) modelFamily {
	switch {
	case strings.HasPrefix(modelID, "anthropic.claude"):
		return familyAnthropic
	case strings.HasPrefix(modelID, "amazon.titan"):
		return familyTitan
	default:
		return familyGeneric
	}
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float64            `json:"temperature"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

type titanConfig struct {
	MaxTokenCount int     `json:"maxTokenCount"`
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"topP"`
}

type titanRequest struct {
	InputText            string      `json:"inputText"`
	TextGenerationConfig titanConfig `json:"textGenerationConfig"`
}

type titanResponse struct {
	Results []struct {
		OutputText string `json:"outputText"`
	} `json:"results"`
}

type genericRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// requestBody shapes the InvokeModel body for the model's family
func requestBody(family modelFamily, prompt string, maxTokens int, temperature float64) ([]byte, error) {
	var body interface{}
	switch family {
	case familyAnthropic:
		body = anthropicRequest{
			AnthropicVersion: anthropicVersion,
			MaxTokens:        maxTokens,
			Temperature:      temperature,
			Messages: []anthropicMessage{{
				Role:    "user",
				Content: []anthropicContent{{Type: "text", Text: prompt}},
			}},
		}
	case familyTitan:
		body = titanRequest{
			InputText: prompt,
			TextGenerationConfig: titanConfig{
				MaxTokenCount: maxTokens,
				Temperature:   temperature,
				TopP:          titanTopP,
			},
		}
	default:
		body = genericRequest{Prompt: prompt, MaxTokens: maxTokens, Temperature: temperature}
	}
	return json.Marshal(body)
}

// responseText pulls the generated text out of an InvokeModel body. Unknown
// families get the raw body back.
func responseText(family modelFamily, body []byte) (string, error) {
	switch family {
	case familyAnthropic:
		var resp anthropicResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to decode anthropic response: %w", err)
		}
		if len(resp.Content) == 0 {
			return "", nil
		}
		return resp.Content[0].Text, nil
	case familyTitan:
		var resp titanResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to decode titan response: %w", err)
		}
		if len(resp.Results) == 0 {
			return "", nil
		}
		return resp.Results[0].OutputText, nil
	default:
		return string(body), nil
	}
}
