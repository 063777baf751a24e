package quizgen

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const itemSchemaURL = "schema://mcqgen/question-item.json"

// itemSchemaJSON is the base contract every generated element must meet.
// Content rules (distinct options, option count, membership) live in the
// Validator chain so their limits can follow Config.
const itemSchemaJSON = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"question":      {"type": "string"},
		"options":       {"type": "array", "items": {"type": "string"}},
		"correctAnswer": {"type": "string"},
		"explanation":   {"type": "string"}
	},
	"required": ["question", "options", "correctAnswer"]
}`

var (
	itemSchemaOnce sync.Once
	itemSchema     *jsonschema.Schema
	itemSchemaErr  error
)

// compiledItemSchema compiles itemSchemaJSON once.
func compiledItemSchema() (*jsonschema.Schema, error) {
	itemSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(itemSchemaJSON))
		if err != nil {
			itemSchemaErr = fmt.Errorf("parse item schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(itemSchemaURL, doc); err != nil {
			itemSchemaErr = fmt.Errorf("add item schema: %w", err)
			return
		}
		itemSchema, itemSchemaErr = c.Compile(itemSchemaURL)
	})
	return itemSchema, itemSchemaErr
}

// StructuralValidator checks a raw decoded element against the item
// schema before it is converted to a Question.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

// ValidateRaw checks a single decoded JSON element.
func (v *StructuralValidator) ValidateRaw(item any) *ValidationError {
	sch, err := compiledItemSchema()
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	if err := sch.Validate(item); err != nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "each item must have question:string, options:string[], correctAnswer:string",
		}
	}
	return nil
}
