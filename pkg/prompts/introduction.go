// Package prompts builds the text prompts sent to the summarizer model.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dash-inc/dash-engine/pkg/search"
)

// maxPromptRecords caps how many sampled records are serialized into the
// prompt so the context stays small for local models.
const maxPromptRecords = 5

// IntroductionSystemMessage frames the summarizer's role for entity
// introduction requests.
const IntroductionSystemMessage = "You are a helpful assistant that introduces people and organizations based on database records. Be conversational and informative."

// BuildIntroductionPrompt creates the prompt asking the model to introduce
// the entity described by the aggregated search evidence. The prompt
// carries the original question, the tables the evidence came from, a
// bounded JSON sample of records, and the total match count.
func BuildIntroductionPrompt(question string, result *search.AggregateResult) string {
	tableNames := make([]string, len(result.Matches))
	for i, m := range result.Matches {
		tableNames[i] = m.TableName
	}

	records := result.Records()
	if len(records) > maxPromptRecords {
		records = records[:maxPromptRecords]
	}
	recordsJSON, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		// Records are plain maps of driver values; marshaling only fails on
		// exotic types, in which case the sample is omitted from the prompt.
		recordsJSON = []byte("[]")
	}

	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("Based on database searches across %d tables, introduce this person professionally:\n\n", len(result.Matches)))
	prompt.WriteString(fmt.Sprintf("Question: %s\n\n", question))
	prompt.WriteString(fmt.Sprintf("Found in tables: %s\n\n", strings.Join(tableNames, ", ")))
	prompt.WriteString("Sample records:\n")
	prompt.Write(recordsJSON)
	prompt.WriteString(fmt.Sprintf("\n\nTotal records: %d\n\n", result.TotalCount()))
	prompt.WriteString(`Create a comprehensive 2-3 sentence introduction that explains:
1. Who they are (name, title from most detailed record)
2. Their role/position
3. How they relate to the company (customer contact, vendor, etc)
4. Key contact information (email, phone from any table)
5. Any other relevant details found across tables

Be conversational and informative. Mention that information was found across multiple systems/tables.`)

	return prompt.String()
}
