package autodoc

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/autodoc/internal/jsdoc"
)

// TypeFormatError is returned when a type expression has a kind the
// formatter cannot render. It aborts the whole parse.
type TypeFormatError struct {
	Type *jsdoc.Type
}

func (e *TypeFormatError) Error() string {
	return fmt.Sprintf("unable to format type %s", e.Type)
}

// FormatType renders a type expression for display, e.g.
// "Array.<string|number>" or "function(Object, *):boolean".
func FormatType(t *jsdoc.Type) (string, error) {
	if t == nil {
		return "", nil
	}

	switch t.Kind {
	case jsdoc.NameExpression:
		return t.Name, nil

	case jsdoc.AllLiteral:
		return "*", nil

	case jsdoc.TypeApplication:
		container, err := FormatType(t.Expression)
		if err != nil {
			return "", err
		}
		apps, err := formatEach(t.Applications)
		if err != nil {
			return "", err
		}
		return container + ".<" + strings.Join(apps, "|") + ">", nil

	case jsdoc.RecordType:
		fields := make([]string, 0, len(t.Fields))
		for _, field := range t.Fields {
			value, err := FormatType(field.Value)
			if err != nil {
				return "", err
			}
			if field.Value == nil {
				fields = append(fields, field.Key)
				continue
			}
			fields = append(fields, field.Key+":"+value)
		}
		return "{" + strings.Join(fields, ", ") + "}", nil

	case jsdoc.OptionalType:
		inner, err := FormatType(t.Expression)
		if err != nil {
			return "", err
		}
		return inner + "?", nil

	case jsdoc.UnionType:
		elements, err := formatEach(t.Elements)
		if err != nil {
			return "", err
		}
		return strings.Join(elements, "|"), nil

	case jsdoc.RestType:
		inner, err := FormatType(t.Expression)
		if err != nil {
			return "", err
		}
		return "..." + inner, nil

	case jsdoc.FunctionType:
		params, err := formatEach(t.Params)
		if err != nil {
			return "", err
		}
		sig := "function(" + strings.Join(params, ", ") + ")"
		if t.Result == nil {
			return sig, nil
		}
		result, err := FormatType(t.Result)
		if err != nil {
			return "", err
		}
		return sig + ":" + result, nil
	}

	return "", &TypeFormatError{Type: t}
}

func formatEach(types []*jsdoc.Type) ([]string, error) {
	out := make([]string, 0, len(types))
	for _, t := range types {
		s, err := FormatType(t)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
