package store

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schemas for the persisted primary record. Unknown properties are
// allowed so records written by newer versions still load.
const (
	semestersSchemaJSON = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "title", "questions"],
		"properties": {
			"id": {"type": "string"},
			"title": {"type": "string"},
			"questions": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["id", "number", "subQuestions"],
					"properties": {
						"id": {"type": "string"},
						"number": {"type": "string"},
						"subQuestions": {
							"type": "array",
							"items": {
								"type": "object",
								"required": ["id"],
								"properties": {
									"id": {"type": "string", "minLength": 1},
									"label": {"type": "string"},
									"text": {"type": "string"},
									"marks": {"type": "string"},
									"isDone": {"type": "boolean"}
								}
							}
						}
					}
				}
			}
		}
	}
}`

	linksSchemaJSON = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "from", "to", "sync"],
		"properties": {
			"id": {"type": "string"},
			"from": {"type": "string"},
			"to": {"type": "string"},
			"sync": {"type": "boolean"},
			"visual": {
				"type": "object",
				"properties": {
					"style": {"enum": ["solid", "dotted"]},
					"color": {"type": "string"}
				}
			}
		}
	}
}`
)

var (
	semestersSchema = mustCompile("semesters", semestersSchemaJSON)
	linksSchema     = mustCompile("links", linksSchemaJSON)
)

func mustCompile(name, doc string) *jsonschema.Schema {
	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(doc))
	if err != nil {
		panic(err)
	}
	c := jsonschema.NewCompiler()
	url := "schema://pyqtrack/" + name + ".json"
	if err := c.AddResource(url, parsed); err != nil {
		panic(err)
	}
	return c.MustCompile(url)
}
