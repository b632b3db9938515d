package recipe

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"meal-scheduler/internal/llm"
	"meal-scheduler/internal/shared"
)

//go:embed instructions_prompt.md
var instructionsPrompt string

var instructionsTemplate = template.Must(template.New("instructions").Parse(instructionsPrompt))

// FormatInstructions asks the generator to rewrite the recipe instructions
// as numbered HTML steps. On error the caller should keep the original
// instructions.
func FormatInstructions(ctx context.Context, textGen llm.TextGenerator, detail Detail) (Detail, shared.AgentMeta, error) {
	if strings.TrimSpace(detail.Instructions) == "" {
		return detail, shared.AgentMeta{}, nil
	}

	start := time.Now()

	var buf bytes.Buffer
	if err := instructionsTemplate.Execute(&buf, detail); err != nil {
		return detail, shared.AgentMeta{}, fmt.Errorf("failed to render instructions prompt: %w", err)
	}

	resp, err := textGen.GenerateContent(ctx, buf.String())
	if err != nil {
		return detail, shared.AgentMeta{}, fmt.Errorf("failed to get LLM response: %w", err)
	}
	meta := shared.NewAgentMeta("InstructionFormatter", resp.Usage, start)

	formatted := stripCodeFence(resp.Content)
	if formatted == "" {
		return detail, meta, fmt.Errorf("%w: empty instructions", shared.ErrMalformedResponse)
	}

	detail.Instructions = formatted
	return detail, meta, nil
}

// stripCodeFence removes a surrounding markdown code block, which models
// add despite being asked not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
