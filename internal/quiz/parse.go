package quiz

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schemas for the two payload shapes the model is instructed to produce.
// Validation here is deliberate: the prompt imposes structure, the schema
// checks that the model actually followed it before anything is decoded.
const topicsSchemaJSON = `{
	"type": "object",
	"required": ["topics"],
	"properties": {
		"topics": {
			"type": "array",
			"items": {"type": "string", "minLength": 1}
		}
	}
}`

const questionSchemaJSON = `{
	"type": "object",
	"required": ["question", "options", "answer"],
	"properties": {
		"question": {"type": "string", "minLength": 1},
		"options": {
			"type": "array",
			"items": {"type": "string"},
			"minItems": 4,
			"maxItems": 4
		},
		"answer": {"type": "string", "minLength": 1}
	}
}`

var (
	topicsSchema   = mustCompileSchema("topics", topicsSchemaJSON)
	questionSchema = mustCompileSchema("question", questionSchemaJSON)
)

func mustCompileSchema(name, definition string) *jsonschema.Schema {
	var parsed any
	if err := json.Unmarshal([]byte(definition), &parsed); err != nil {
		panic(fmt.Sprintf("parse %s schema: %v", name, err))
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, parsed); err != nil {
		panic(fmt.Sprintf("add %s schema resource: %v", name, err))
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		panic(fmt.Sprintf("compile %s schema: %v", name, err))
	}
	return compiled
}

// stripFences removes optional markdown code-fence wrapping around a model
// response, tolerant of a language tag on the opening fence.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 && !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, "[") {
		// Drop the language tag line (e.g. "json").
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// decodeValidated strips fences, checks the payload against schema, and
// decodes it into out. A single error covers every way the model can deviate.
func decodeValidated(raw string, schema *jsonschema.Schema, out any) error {
	cleaned := stripFences(raw)

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return json.Unmarshal([]byte(cleaned), out)
}

type topicsPayload struct {
	Topics []string `json:"topics"`
}

type questionPayload struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}
