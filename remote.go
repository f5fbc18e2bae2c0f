package studyquiz

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// chatClient is the one method of the service client the generator
// uses, narrowed so tests can stand in for the service.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// RemoteGenerator asks the generation service for a quiz and defensively
// validates whatever comes back. Remote failures of any kind are
// invisible at this boundary: the caller always gets a full-size quiz
// built by the local fallback instead.
type RemoteGenerator struct {
	client  chatClient
	model   string
	timeout time.Duration
	maxLen  int
	logDir  string
	local   *LocalGenerator
}

// NewRemoteGenerator creates a remote generator with the given local
// fallback.
func NewRemoteGenerator(cfg Config, fallback *LocalGenerator) *RemoteGenerator {
	return &RemoteGenerator{
		client:  openai.NewClient(cfg.APIKey),
		model:   cfg.Model,
		timeout: cfg.RemoteTimeout,
		maxLen:  cfg.MaxMaterialChars,
		logDir:  cfg.TranscriptDir,
		local:   fallback,
	}
}

// Generate implements Generator. Material that is unusable even for the
// local fallback still surfaces ErrNoUsableMaterial; that check runs
// before any network call so an empty submission never burns a request.
func (g *RemoteGenerator) Generate(ctx context.Context, material string, count int) (*Quiz, error) {
	count = ClampQuestionCount(count)
	if len(ExtractWords(Normalize(material))) == 0 {
		return nil, ErrNoUsableMaterial
	}

	transcript := openTranscript(g.logDir)
	defer transcript.Close()

	questions := g.tryRemote(ctx, material, count, transcript)
	if len(questions) == 0 {
		VerboseLog("remote generation produced nothing usable, falling back to local generation")
		transcript.Note("falling back to local generation")
		return g.local.Generate(ctx, material, count)
	}

	// Pad a short remote result rather than erroring.
	for i := len(questions); i < count; i++ {
		questions = append(questions, sampleQuestion(i+1))
	}
	return &Quiz{
		ID:        uuid.NewString(),
		Questions: questions,
		CreatedAt: time.Now(),
	}, nil
}

// tryRemote performs one bounded generation call and returns the
// validated questions, or nil on any failure.
func (g *RemoteGenerator) tryRemote(ctx context.Context, material string, count int, transcript *Transcript) []Question {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := g.buildPrompt(material, count)
	transcript.Request(prompt)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert quiz question generator. Reply with strict JSON only, no surrounding prose.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		log.Printf("remote generation failed: %v", err)
		transcript.Note(fmt.Sprintf("request failed: %v", err))
		return nil
	}
	if len(resp.Choices) == 0 {
		log.Printf("remote generation returned no choices")
		return nil
	}

	raw := resp.Choices[0].Message.Content
	transcript.Response(raw)

	payload, ok := parseLoosePayload(raw)
	if !ok {
		log.Printf("remote generation reply was unparsable")
		transcript.Note("reply unparsable after all parse stages")
		return nil
	}

	var questions []Question
	for _, cand := range payload.Questions {
		if len(questions) == count {
			break
		}
		q, ok := validateCandidate(cand)
		if !ok {
			VerboseLog("dropping invalid remote candidate: %q", cand.Question)
			continue
		}
		questions = append(questions, q)
	}
	return questions
}

// validateCandidate enforces the schema on one returned question:
// non-empty prompt, exactly 4 choices, answer index coerced and clamped.
// Invalid candidates are dropped, never repaired.
func validateCandidate(cand remoteQuestion) (Question, bool) {
	prompt := strings.TrimSpace(cand.Question)
	if prompt == "" || len(cand.Choices) != 4 {
		return Question{}, false
	}
	return Question{
		Prompt:        prompt,
		Choices:       cand.Choices,
		CorrectChoice: coerceAnswerIndex(cand.AnswerIndex),
	}, true
}

func (g *RemoteGenerator) buildPrompt(material string, count int) string {
	if len(material) > g.maxLen {
		material = material[:g.maxLen]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generate exactly %d multiple choice questions from the study material below.\n\n", count))
	sb.WriteString("Study material:\n")
	sb.WriteString(material)
	sb.WriteString("\n\nRequirements:\n")
	sb.WriteString("- Each question must have exactly 4 choices\n")
	sb.WriteString("- answer_index is the 0-based index of the correct choice\n")
	sb.WriteString("- Incorrect choices should be plausible but clearly wrong\n")
	sb.WriteString("- Questions must be answerable from the material alone\n\n")
	sb.WriteString("Reply with only this JSON shape:\n")
	sb.WriteString(`{"questions": [{"question": "...", "choices": ["...", "...", "...", "..."], "answer_index": 0}]}`)
	sb.WriteString("\n")
	return sb.String()
}
