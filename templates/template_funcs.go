package templates

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"nfl-rankings-go/models"
)

// GetTemplateFuncs returns the template function map for HTML templates
func GetTemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"add":   func(a, b int) int { return a + b },
		"minus": func(a, b int) int { return a - b },

		"seq": func(start, end int) []int {
			if end < start {
				return nil
			}
			result := make([]int, end-start+1)
			for i := range result {
				result[i] = start + i
			}
			return result
		},

		"lower": strings.ToLower,
		"contains": func(list []string, value string) bool {
			for _, item := range list {
				if item == value {
					return true
				}
			}
			return false
		},

		"toJSON": func(v interface{}) template.JS {
			data, _ := json.Marshal(v)
			return template.JS(data)
		},

		// stageAction maps a bracket stage to its selection endpoint
		"stageAction": func(stage models.BracketStage) string {
			switch stage {
			case models.StageDivisionWinners:
				return "/simulator/division-winner"
			case models.StageWildCards:
				return "/simulator/wildcards"
			case models.StageWildCardRound, models.StageDivisionalRound:
				return "/simulator/round-winners"
			case models.StageConferenceChampions:
				return "/simulator/conference-champion"
			default:
				return "/simulator/super-bowl"
			}
		},

		// stageScopeField renders the hidden form fields identifying the
		// stage scope (division or conference, plus the round name for the
		// shared round-winners endpoint)
		"stageScopeField": func(stage models.BracketStage, scope string) template.HTML {
			var fields string
			switch stage {
			case models.StageDivisionWinners:
				fields = fmt.Sprintf(`<input type="hidden" name="division" value="%s">`, template.HTMLEscapeString(scope))
			case models.StageWildCards, models.StageConferenceChampions:
				fields = fmt.Sprintf(`<input type="hidden" name="conference" value="%s">`, template.HTMLEscapeString(scope))
			case models.StageWildCardRound:
				fields = fmt.Sprintf(`<input type="hidden" name="conference" value="%s"><input type="hidden" name="stage" value="wildcard">`, template.HTMLEscapeString(scope))
			case models.StageDivisionalRound:
				fields = fmt.Sprintf(`<input type="hidden" name="conference" value="%s"><input type="hidden" name="stage" value="divisional">`, template.HTMLEscapeString(scope))
			}
			return template.HTML(fields)
		},
	}
}
