package openai

import (
	"context"
	"fmt"
	"strings"

	"docassist/internal/domain/entity"

	openai "github.com/sashabaranov/go-openai"
)

const ragPromptTemplate = `You are a helpful assistant that answers questions based on provided documents.

CONTEXT FROM DOCUMENTS:
%s

QUESTION: %s

INSTRUCTIONS:
- Answer the question using ONLY the information provided in the context above
- If you cannot answer based on the provided context, say "I cannot find this information in the provided documents"
- Always cite your sources by mentioning the document name
- Be precise and factual
- Do not make up information not found in the context

ANSWER:`

// GenerationClient wraps a local model server's OpenAI-compatible chat API
// with fixed sampling parameters.
type GenerationClient struct {
	client      *openai.Client
	model       string
	temperature float32
	topP        float32
	maxTokens   int
}

func NewGenerationClient(baseURL, model string, temperature, topP float32, maxTokens int) *GenerationClient {
	cfg := openai.DefaultConfig("ollama")
	cfg.BaseURL = baseURL
	return &GenerationClient{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
		topP:        topP,
		maxTokens:   maxTokens,
	}
}

func (c *GenerationClient) ModelName() string {
	return c.model
}

// TestConnection reports whether the model server is reachable and the
// configured model is installed. Communication failures yield false.
func (c *GenerationClient) TestConnection(ctx context.Context) bool {
	models, err := c.client.ListModels(ctx)
	if err != nil {
		return false
	}

	for _, m := range models.Models {
		if m.ID == c.model {
			return true
		}
	}
	return false
}

// BuildPrompt renders retrieved chunks under numbered source headers and
// embeds them, with the question, into the instruction template.
func (c *GenerationClient) BuildPrompt(question string, chunks []entity.RetrievedChunk) string {
	contextParts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		contextParts = append(contextParts, fmt.Sprintf("[SOURCE %d: %s]\n%s\n", i+1, chunk.DocumentName, chunk.ChunkText))
	}

	return fmt.Sprintf(ragPromptTemplate, strings.Join(contextParts, "\n"), question)
}

// Generate answers the question from the supplied chunks. Faults never
// escape; they come back as Success=false with the error message.
func (c *GenerationClient) Generate(ctx context.Context, question string, chunks []entity.RetrievedChunk) *entity.Answer {
	prompt := c.BuildPrompt(question, chunks)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		TopP:        c.topP,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return c.failure(err.Error())
	}
	if len(resp.Choices) == 0 {
		return c.failure("no response from model server")
	}

	return &entity.Answer{
		Answer:    strings.TrimSpace(resp.Choices[0].Message.Content),
		Sources:   distinctSources(chunks),
		ModelUsed: c.model,
		Success:   true,
	}
}

func (c *GenerationClient) failure(msg string) *entity.Answer {
	return &entity.Answer{
		Answer:       "",
		Sources:      []string{},
		ModelUsed:    c.model,
		Success:      false,
		ErrorMessage: msg,
	}
}

// distinctSources returns the set of document names cited by the chunks.
func distinctSources(chunks []entity.RetrievedChunk) []string {
	seen := make(map[string]struct{}, len(chunks))
	sources := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if _, ok := seen[chunk.DocumentName]; ok {
			continue
		}
		seen[chunk.DocumentName] = struct{}{}
		sources = append(sources, chunk.DocumentName)
	}
	return sources
}
