package autodoc

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mvp-joe/autodoc/internal/ast"
	"github.com/mvp-joe/autodoc/internal/jsdoc"
)

// associate pairs each comment with the function starting on the line after
// it ends and builds a FunctionInfo for every pair that survives the filters.
func (p *Parser) associate(program *ast.Program) ([]*FunctionInfo, error) {
	functions := locateFunctions(program)
	ids := &counters{}
	docs := []*FunctionInfo{}

	for _, comment := range program.Comments {
		bucket := functions[comment.EndLine+1]
		if len(bucket) == 0 {
			continue
		}

		doclet, err := p.opts.CommentParser.Parse(comment.Text, true)
		if err != nil {
			continue
		}
		if !p.keep(doclet) {
			continue
		}

		// Several functions can start on one line; the first in walk order wins.
		node := bucket[0]
		name, ok := identifierName(node)
		if !ok {
			continue
		}

		info, err := p.buildFunction(node, name, doclet, ids)
		if err != nil {
			return nil, fmt.Errorf("%s (line %d): %w", name, node.Pos().StartLine, err)
		}
		docs = append(docs, info)
	}
	return docs, nil
}

// keep applies the description policy and the tag filter.
func (p *Parser) keep(doclet *jsdoc.Doclet) bool {
	if doclet.Description == "" {
		if p.opts.RequireDescription {
			return false
		}
		if _, pairs := splitPairs(tagText(doclet, "examples")); len(pairs) == 0 {
			return false
		}
	}
	if len(p.opts.Tags) == 0 {
		return true
	}
	for _, title := range p.opts.Tags {
		if doclet.HasTag(title) {
			return true
		}
	}
	return false
}

func (p *Parser) buildFunction(node ast.Node, name string, doclet *jsdoc.Doclet, ids *counters) (*FunctionInfo, error) {
	info := &FunctionInfo{
		NameInfo:      ParseName(name),
		Line:          node.Pos().StartLine,
		Description:   p.renderMarkdown(doclet.Description),
		Params:        []ParameterInfo{},
		IsConstructor: doclet.HasTag("constructor") || doclet.HasTag("class"),
		IsStatic:      !strings.Contains(name, "#"),
		Tags:          doclet.Titles(),
	}

	for _, tag := range doclet.TagsByTitle("param") {
		typ, err := FormatType(tag.Type)
		if err != nil {
			return nil, err
		}
		info.Params = append(info.Params, ParameterInfo{
			Name:        tag.Name,
			Type:        typ,
			Description: p.renderMarkdown(tag.Description),
			Optional:    tag.Optional,
			Default:     tag.Default,
		})
	}

	if tag, ok := doclet.Tag("returns"); ok {
		typ, err := FormatType(tag.Type)
		if err != nil {
			return nil, err
		}
		info.Returns = &ReturnInfo{Type: typ, Description: p.renderMarkdown(tag.Description)}
	}

	info.Signature = signature(info, node)
	info.Examples = ids.examples(doclet, p.opts.ExampleHandlers)
	info.Benchmarks = ids.benchmarks(doclet)
	return info, nil
}

// signature renders "function name(a, b)" for static bindings and
// "ns.name = function(a, b)" for instance members. Parameter names come from
// the @param tags, or from the source when there are none.
func signature(info *FunctionInfo, node ast.Node) string {
	names := make([]string, 0, len(info.Params))
	for _, param := range info.Params {
		if param.Name != "" && !strings.Contains(param.Name, ".") {
			names = append(names, param.Name)
		}
	}
	if len(info.Params) == 0 {
		params, _ := functionParams(node)
		names = slices.Clone(params)
	}

	args := strings.Join(names, ", ")
	if info.IsStatic || info.Namespace == "" {
		return "function " + info.ShortName + "(" + args + ")"
	}
	return info.Namespace + "." + info.ShortName + " = function(" + args + ")"
}
