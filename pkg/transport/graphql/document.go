package graphql

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/saturnines/project-gateway/pkg/errors"
)

// Operation is a parsed, named GraphQL document holding exactly one operation.
type Operation struct {
	Name  string
	Type  ast.Operation
	Query string

	declared map[string]struct{}
}

// ParseOperation checks the document syntax and extracts its single operation.
// The schema is owned by the server, so only syntax and shape are checked here.
func ParseOperation(query string) (*Operation, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrValidation, "parse GraphQL document")
	}

	if len(doc.Operations) != 1 {
		return nil, errors.WrapError(
			fmt.Errorf("expected 1 operation, found %d", len(doc.Operations)),
			errors.ErrValidation,
			"parse GraphQL document",
		)
	}

	op := doc.Operations[0]
	if op.Name == "" {
		return nil, errors.WrapError(
			fmt.Errorf("operation must be named"),
			errors.ErrValidation,
			"parse GraphQL document",
		)
	}

	declared := make(map[string]struct{}, len(op.VariableDefinitions))
	for _, v := range op.VariableDefinitions {
		declared[v.Variable] = struct{}{}
	}

	return &Operation{
		Name:     op.Name,
		Type:     op.Operation,
		Query:    query,
		declared: declared,
	}, nil
}

// MustParseOperation is ParseOperation for package-level documents.
func MustParseOperation(query string) *Operation {
	op, err := ParseOperation(query)
	if err != nil {
		panic(err)
	}
	return op
}

// CheckVariables rejects variables the operation does not declare.
func (o *Operation) CheckVariables(vars map[string]interface{}) error {
	for name := range vars {
		if _, ok := o.declared[name]; !ok {
			return errors.WrapError(
				fmt.Errorf("variable $%s is not declared by %s", name, o.Name),
				errors.ErrValidation,
				"check GraphQL variables",
			)
		}
	}
	return nil
}
