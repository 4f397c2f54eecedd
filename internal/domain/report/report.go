// Package report assembles and renders the weekly and monthly team report.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/teamboard/core/internal/domain/aggregate"
	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/domain/period"
)

// Report is everything a period report shows.
type Report struct {
	Team       string                     `json:"team"`
	Kind       period.Kind                `json:"kind"`
	Period     period.Range               `json:"period"`
	Tasks      aggregate.StatusCounts     `json:"tasks"`
	Members    []aggregate.MemberStats    `json:"members"`
	Quarter    entities.Quarter           `json:"quarter"`
	Year       int                        `json:"year"`
	KPIs       aggregate.KPISummary       `json:"kpis"`
	Overdue    []entities.Task            `json:"overdue"`
	Engagement aggregate.EngagementTotals `json:"engagement"`
}

const textTemplate = `=== {{.Team}} {{title .Kind}} Report ===
Period: {{.Period.Start}} ~ {{.Period.End}}

[Tasks] Total {{.Tasks.Total}} / Done {{.Tasks.Done}} / In progress {{.Tasks.InProgress}} / To do {{.Tasks.Todo}} / Overdue {{.Tasks.Overdue}}

{{range .Members}}{{.Name}}: Total {{.Total}} / Done {{.Done}} / In progress {{.InProgress}} / Overdue {{.Overdue}}
{{end}}`

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"title": func(k period.Kind) string {
		s := string(k)
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}).Parse(textTemplate))

// RenderText produces the plain-text summary meant to be pasted into chat.
func RenderText(r Report) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}
