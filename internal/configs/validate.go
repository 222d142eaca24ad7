package configs

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ziadkadry99/toldyou-button/internal/button"
)

//go:embed schema.json
var submissionSchema []byte

const schemaURL = "submission.json"

// Validator checks submissions against the JSON schema and the
// configuration invariants.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the submission schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, bytes.NewReader(submissionSchema)); err != nil {
		return nil, fmt.Errorf("configs: load schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("configs: compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Decode parses and validates a raw request body. Every problem found is
// reported in a single *ValidationError.
func (v *Validator) Decode(body []byte) (Submission, error) {
	var sub Submission

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return sub, &ValidationError{Problems: []string{"request body must be a JSON object"}}
	}

	var problems []string
	schemaErr := v.schema.Validate(doc)
	if schemaErr != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(schemaErr, &ve) {
			return sub, fmt.Errorf("configs: validating submission: %w", schemaErr)
		}
		problems = append(problems, schemaProblems(ve)...)
	}

	if err := json.Unmarshal(body, &sub); err != nil {
		if len(problems) == 0 {
			problems = append(problems, "request body has the wrong shape")
		}
		return sub, &ValidationError{Problems: problems}
	}
	sub.Email = strings.TrimSpace(sub.Email)

	for _, err := range unjoin(sub.Config.Validate()) {
		// The schema already reports a bad position with its location.
		if schemaErr != nil && errors.Is(err, button.ErrInvalidPosition) {
			continue
		}
		problems = append(problems, "configJson: "+err.Error())
	}

	if len(problems) > 0 {
		return sub, &ValidationError{Problems: problems}
	}
	return sub, nil
}

// schemaProblems flattens the validation tree into one line per failing
// leaf, sorted for stable output.
func schemaProblems(ve *jsonschema.ValidationError) []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := strings.TrimPrefix(e.InstanceLocation, "/")
			if loc == "" {
				loc = "body"
			}
			msg := loc + ": " + e.Message
			if !seen[msg] {
				seen[msg] = true
				out = append(out, msg)
			}
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	sort.Strings(out)
	return out
}

func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
