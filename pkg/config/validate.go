package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

//go:embed schema/dependencies.schema.json
var dependenciesSchemaBytes []byte

//go:embed schema/sourceconfig.schema.json
var sourceConfigSchemaBytes []byte

var (
	compileOnce  sync.Once
	compileErr   error
	depsSchema   *jsonschema.Schema
	sourceSchema *jsonschema.Schema
)

// ValidationIssue is one schema violation found in a config file.
type ValidationIssue struct {
	Path    string // instance location, e.g. "/cursor/rules/react"
	Message string
}

// compileSchemas compiles the embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for name, raw := range map[string][]byte{
			"dependencies.schema.json": dependenciesSchemaBytes,
			"sourceconfig.schema.json": sourceConfigSchemaBytes,
		} {
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				compileErr = fmt.Errorf("unmarshaling %s: %w", name, err)
				return
			}
			if err := c.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("adding %s: %w", name, err)
				return
			}
		}
		if depsSchema, compileErr = c.Compile("dependencies.schema.json"); compileErr != nil {
			return
		}
		sourceSchema, compileErr = c.Compile("sourceconfig.schema.json")
	})
	return compileErr
}

// ValidateDependencies checks raw manifest JSON against the dependency
// schema. The error return is for compilation or malformed JSON; schema
// violations come back as issues.
func ValidateDependencies(data []byte) ([]ValidationIssue, error) {
	if err := compileSchemas(); err != nil {
		return nil, err
	}
	return validate(depsSchema, data)
}

// ValidateSourceConfig checks raw repository config JSON against the
// source-config schema.
func ValidateSourceConfig(data []byte) ([]ValidationIssue, error) {
	if err := compileSchemas(); err != nil {
		return nil, err
	}
	return validate(sourceSchema, data)
}

func validate(schema *jsonschema.Schema, data []byte) ([]ValidationIssue, error) {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	err = schema.Validate(instance)
	if err == nil {
		return nil, nil
	}
	var validationErr *jsonschema.ValidationError
	if ok := asValidationError(err, &validationErr); !ok {
		return nil, err
	}
	var issues []ValidationIssue
	collectIssues(validationErr, &issues)
	return issues, nil
}

func asValidationError(err error, target **jsonschema.ValidationError) bool {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return false
	}
	*target = ve
	return true
}

// collectIssues flattens the validation error tree into leaf issues.
func collectIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := ""
		for _, seg := range ve.InstanceLocation {
			path += "/" + seg
		}
		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: ve.ErrorKind.LocalizedString(printer),
		})
		return
	}
	for _, cause := range ve.Causes {
		collectIssues(cause, issues)
	}
}
