package input

import (
	"io/ioutil"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// fileRoot is the top level of a request file:
//
//	request {
//	  method = "POST"
//	  url    = "example.com/api"
//	  body   = { name = "alice" }
//
//	  header "X-Foo" { value = "bar" }
//	  param "q" { value = "hello" }
//	}
type fileRoot struct {
	Request *requestBlock `hcl:"request,block"`
}

type requestBlock struct {
	URL     *string        `hcl:"url,optional"`
	Method  *string        `hcl:"method,optional"`
	Body    hcl.Expression `hcl:"body,optional"`
	Headers []namedValue   `hcl:"header,block"`
	Params  []namedValue   `hcl:"param,block"`
}

type namedValue struct {
	Name  string `hcl:"name,label"`
	Value string `hcl:"value"`
}

// LoadFile reads a request description from an HCL file. Unlike ParseArgs,
// url and method are optional here; their absence is left to the caller.
func LoadFile(path string) (*Input, error) {
	src, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading request file %s", path)
	}
	return decodeFile(src, path)
}

func decodeFile(src []byte, filename string) (*Input, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "parsing request file %s", filename)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, errors.Wrapf(diags, "decoding request file %s", filename)
	}
	if root.Request == nil {
		return nil, errors.Errorf("request file %s has no request block", filename)
	}
	block := root.Request

	in := Input{}
	if block.URL != nil {
		u, err := parseURL(*block.URL)
		if err != nil {
			return nil, err
		}
		in.URL = u
	}
	if block.Method != nil {
		method, err := parseMethod(*block.Method)
		if err != nil {
			return nil, err
		}
		in.Method = method
	}
	for _, h := range block.Headers {
		if !isValidHeaderFieldName(h.Name) {
			return nil, errors.Errorf("invalid header field name: %s", h.Name)
		}
		in.Header.Fields = append(in.Header.Fields, Field{Name: h.Name, Value: h.Value})
	}
	for _, p := range block.Params {
		in.Parameters = append(in.Parameters, Field{Name: p.Name, Value: p.Value})
	}

	body, err := decodeBody(block.Body)
	if err != nil {
		return nil, err
	}
	in.Body = body
	return &in, nil
}

// decodeBody keeps a string body as is and encodes any other value as JSON.
func decodeBody(expr hcl.Expression) (Body, error) {
	if expr == nil {
		return Body{}, nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return Body{}, errors.Wrap(diags, "evaluating body")
	}
	if v.IsNull() {
		return Body{}, nil
	}
	if v.Type() == cty.String {
		return Body{BodyType: RawBody, Raw: []byte(v.AsString())}, nil
	}
	raw, err := ctyjson.SimpleJSONValue{Value: v}.MarshalJSON()
	if err != nil {
		return Body{}, errors.Wrap(err, "encoding body as JSON")
	}
	return Body{BodyType: RawBody, Raw: raw, RawType: "application/json"}, nil
}
