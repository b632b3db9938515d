package schedule

import (
	"context"
	"log"
	"strings"
	"time"

	"meal-scheduler/internal/recipe"
	"meal-scheduler/internal/shared"
)

// SyntheticLabelPrefix starts the label of every filled gap.
const SyntheticLabelPrefix = "Food: "

// FillGap asks the generator for one recipe that fits the gap. On failure
// it logs and reports false; the gap stays empty.
func (e *Engine) FillGap(ctx context.Context, gap Gap, ingredients, candidates []string) (Entry, bool) {
	start := time.Now()

	prompt, err := render(gapFillTemplate, gapFillData{Gap: gap, Ingredients: ingredients, Candidates: candidates})
	if err != nil {
		log.Printf("gap %s: %v", gap.Key(), err)
		return Entry{}, false
	}

	resp, err := e.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		log.Printf("gap %s: suggestion failed: %v", gap.Key(), err)
		return Entry{}, false
	}
	e.recordMeta(ctx, shared.NewAgentMeta("GapFiller", resp.Usage, start))

	name := firstLine(resp.Content)
	if name == "" {
		log.Printf("gap %s: %v: empty suggestion", gap.Key(), shared.ErrMalformedResponse)
		return Entry{}, false
	}

	return Entry{
		ID:        "synthetic:" + gap.Key(),
		Label:     SyntheticLabelPrefix + name,
		Day:       gap.Day,
		Start:     gap.Before.End,
		End:       gap.After.Start,
		Synthetic: true,
	}, true
}

// SuggestRecipeForBudget returns the generator's reply verbatim, or an
// empty string when the call fails.
func (e *Engine) SuggestRecipeForBudget(ctx context.Context, minutes int, ingredients []string) string {
	start := time.Now()

	prompt, err := render(budgetTemplate, budgetData{Minutes: minutes, Ingredients: ingredients})
	if err != nil {
		log.Printf("budget suggestion: %v", err)
		return ""
	}

	resp, err := e.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		log.Printf("budget suggestion failed: %v", err)
		return ""
	}
	e.recordMeta(ctx, shared.NewAgentMeta("BudgetSuggester", resp.Usage, start))
	return resp.Content
}

// SuggestMeals proposes four meal times for day that avoid its classes.
// The reply is reduced to plain text; failures yield an empty string.
func (e *Engine) SuggestMeals(ctx context.Context, day Day, ingredients []string) string {
	start := time.Now()

	e.mu.RLock()
	entries := filterDay(e.view, day)
	e.mu.RUnlock()

	prompt, err := render(mealsTemplate, mealsData{Day: day, Entries: entries, Ingredients: ingredients})
	if err != nil {
		log.Printf("meal suggestion: %v", err)
		return ""
	}

	resp, err := e.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		log.Printf("meal suggestion for %s failed: %v", day, err)
		return ""
	}
	e.recordMeta(ctx, shared.NewAgentMeta("MealSuggester", resp.Usage, start))
	return recipe.PlainText(resp.Content)
}

// firstLine returns the first non-empty line of s without list markers or
// surrounding quotes.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•# ")
		line = strings.Trim(line, "\"'`* ")
		if line != "" {
			return line
		}
	}
	return ""
}

