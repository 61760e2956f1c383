package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "tags": {"type": "array", "items": {"type": "string"}}
  }
}`

func TestValidateJSON(t *testing.T) {
	s := MustCompile("person.schema.json", []byte(personSchema))

	res, err := s.ValidateJSON([]byte(`{"name": "ada", "tags": ["x"]}`))
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Issues)

	res, err = s.ValidateJSON([]byte(`{"name": "", "tags": [1]}`))
	require.NoError(t, err)
	assert.False(t, res.Valid)
	var paths []string
	for _, issue := range res.Issues {
		paths = append(paths, issue.Path)
	}
	assert.Contains(t, paths, "/name")
	assert.Contains(t, paths, "/tags/0")
}

func TestValidateJSONMalformed(t *testing.T) {
	s := MustCompile("person.schema.json", []byte(personSchema))

	_, err := s.ValidateJSON([]byte(`{"name":`))
	assert.Error(t, err)
}

func TestValidateValueMissingRequired(t *testing.T) {
	s := MustCompile("person.schema.json", []byte(personSchema))

	res, err := s.ValidateValue(map[string]interface{}{"tags": []string{}})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.NotEmpty(t, res.Issues)
	assert.Equal(t, "required", res.Issues[0].Keyword)
}

func TestCompileInvalidSchema(t *testing.T) {
	_, err := Compile("bad.json", []byte(`{"type": 12}`))
	assert.Error(t, err)
	assert.Panics(t, func() { MustCompile("bad.json", []byte(`not json`)) })
}

func TestIssueString(t *testing.T) {
	assert.Equal(t, "/a: boom", Issue{Path: "/a", Message: "boom"}.String())
	assert.Equal(t, "boom", Issue{Message: "boom"}.String())
}
