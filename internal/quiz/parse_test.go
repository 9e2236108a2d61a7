package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"topics":[]}`, `{"topics":[]}`},
		{"fenced with tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no tag", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fence hugging brace", "```{\"a\":1}```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n[1,2]\n```\n ", `[1,2]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripFences(tc.in))
		})
	}
}

func TestDecodeValidatedTopics(t *testing.T) {
	var payload topicsPayload
	err := decodeValidated("```json\n{\"topics\":[\"Algebra\",\"Geometry\"]}\n```", topicsSchema, &payload)
	require.NoError(t, err)
	assert.Equal(t, []string{"Algebra", "Geometry"}, payload.Topics)
}

func TestDecodeValidatedRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "I cannot answer that."},
		{"missing topics key", `{"labels":["x"]}`},
		{"topics not strings", `{"topics":[1,2]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var payload topicsPayload
			assert.Error(t, decodeValidated(tc.raw, topicsSchema, &payload))
		})
	}
}

func TestQuestionSchemaRequiresFourOptions(t *testing.T) {
	var payload questionPayload

	threeOpts := `{"question":"q","options":["a","b","c"],"answer":"a"}`
	assert.Error(t, decodeValidated(threeOpts, questionSchema, &payload))

	fourOpts := `{"question":"q","options":["a","b","c","d"],"answer":"a"}`
	require.NoError(t, decodeValidated(fourOpts, questionSchema, &payload))
	assert.Equal(t, "q", payload.Question)
	assert.Len(t, payload.Options, 4)
}
