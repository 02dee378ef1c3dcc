package store

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"tableflip.dev/mytodo/pkg/task"
)

//go:embed tasks.schema.json
var tasksSchema string

const schemaURL = "tasks.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, strings.NewReader(tasksSchema)); err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = compiler.Compile(schemaURL)
	})
	return compiled, compileErr
}

// SchemaError lists every violation found in a blob.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "invalid task data: " + strings.Join(e.Problems, "; ")
}

// Validate checks data against the task array schema.
func Validate(data []byte) error {
	sch, err := schema()
	if err != nil {
		return fmt.Errorf("store: compile schema: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		se := &SchemaError{}
		collectSchemaErrors(se, ve)
		return se
	}
	return nil
}

func collectSchemaErrors(se *SchemaError, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		se.Problems = append(se.Problems, fmt.Sprintf("%s: %s", loc, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(se, cause)
	}
}

// Decode validates and unmarshals a stored blob.
func Decode(data []byte) ([]*task.Task, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var tasks []*task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			return nil, &SchemaError{Problems: []string{fmt.Sprintf("duplicate id %q", t.ID)}}
		}
		seen[t.ID] = true
	}
	return tasks, nil
}

// Encode marshals the full collection. A nil slice encodes as [].
func Encode(tasks []*task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []*task.Task{}
	}
	return json.Marshal(tasks)
}
