package schedule

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

var (
	//go:embed gap_fill_prompt.md
	gapFillPrompt string

	//go:embed budget_prompt.md
	budgetPrompt string

	//go:embed meals_prompt.md
	mealsPrompt string
)

var promptFuncs = template.FuncMap{"join": strings.Join}

var (
	gapFillTemplate = template.Must(template.New("gap_fill").Funcs(promptFuncs).Parse(gapFillPrompt))
	budgetTemplate  = template.Must(template.New("budget").Funcs(promptFuncs).Parse(budgetPrompt))
	mealsTemplate   = template.Must(template.New("meals").Funcs(promptFuncs).Parse(mealsPrompt))
)

type gapFillData struct {
	Gap         Gap
	Ingredients []string
	Candidates  []string
}

type budgetData struct {
	Minutes     int
	Ingredients []string
}

type mealsData struct {
	Day         Day
	Entries     []Entry
	Ingredients []string
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
