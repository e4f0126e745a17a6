// Package model reads explicit game graphs from YAML files and encodes them
// into symbolic graphs.
package model

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	yamlv3 "gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Document is the file form of an explicit game graph.
//
//	states:
//	  - name: a
//	    owner: odd
//	    initial: true
//	    priority: 1
//	transitions:
//	  - from: a
//	    action: left
//	    to: [b, c]
type Document struct {
	// States lists every node of the graph. Names must be unique.
	States []State `yaml:"states" validate:"required,min=1,unique=Name,dive"`

	// Transitions lists the edges. Each entry adds one edge per target.
	Transitions []Transition `yaml:"transitions" validate:"dive"`
}

// State is a single node of a Document.
type State struct {
	Name string `yaml:"name" validate:"required"`

	// Owner is one of even, odd, stochastic or mixed. It defaults to even.
	Owner string `yaml:"owner" validate:"omitempty,oneof=even odd stochastic mixed protagonist adversary random nondeterministic"`

	Initial  bool `yaml:"initial"`
	Priority int  `yaml:"priority" validate:"gte=0"`
}

// Transition is a set of edges sharing a source and an action. For stochastic
// and mixed nodes the targets are the support of the outcome distribution.
type Transition struct {
	From   string   `yaml:"from" validate:"required"`
	Action string   `yaml:"action"`
	To     []string `yaml:"to" validate:"required,min=1,dive,required"`
}

// Load reads and validates the model file at path.
func Load(path string) (*Document, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(contents)
	if err != nil {
		return nil, fmt.Errorf("error when parsing model file %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates a model document. Unknown keys are rejected.
func Parse(contents []byte) (*Document, error) {
	decoder := yamlv3.NewDecoder(bytes.NewReader(contents))
	decoder.KnownFields(true)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("model document is empty")
		}
		return nil, err
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, describeValidationError(err)
	}
	return &doc, nil
}

func describeValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	problems := make([]string, 0, len(verrs))
	for _, ferr := range verrs {
		field := strings.TrimPrefix(ferr.Namespace(), "Document.")
		if ferr.Param() != "" {
			problems = append(problems, fmt.Sprintf("%s fails %s=%s", field, ferr.Tag(), ferr.Param()))
		} else {
			problems = append(problems, fmt.Sprintf("%s fails %s", field, ferr.Tag()))
		}
	}
	return fmt.Errorf("invalid model: %s", strings.Join(problems, "; "))
}
