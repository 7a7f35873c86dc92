package request

import (
	"fmt"

	"github.com/pkg/errors"
)

// BuildError identifies the mandatory field that Validated.Build found missing.
type BuildError int

const (
	MissingURL BuildError = iota + 1
	MissingMethod
)

func (e BuildError) Error() string {
	switch e {
	case MissingURL:
		return "url is missing"
	case MissingMethod:
		return "method is missing"
	default:
		return fmt.Sprintf("unknown build error: %d", int(e))
	}
}

// Validated accumulates request fields whose presence is only known at run
// time, e.g. values read from the command line or a file. Build reports the
// first missing mandatory field.
type Validated struct {
	url     *string
	method  *string
	body    *string
	headers []Header
}

func NewValidated() *Validated {
	return &Validated{}
}

func (v *Validated) URL(url string) *Validated {
	v.url = &url
	return v
}

func (v *Validated) Method(method string) *Validated {
	v.method = &method
	return v
}

func (v *Validated) Body(body string) *Validated {
	v.body = &body
	return v
}

func (v *Validated) Header(name, value string) *Validated {
	v.headers = append(v.headers, Header{Name: name, Value: value})
	return v
}

// Build checks the url first and the method second. Use errors.Cause to get
// the BuildError.
func (v *Validated) Build() (Request, error) {
	if v.url == nil {
		return Request{}, errors.WithStack(MissingURL)
	}
	if v.method == nil {
		return Request{}, errors.WithStack(MissingMethod)
	}

	b := New().URL(*v.url).Method(*v.method)
	if v.body != nil {
		b = b.Body(*v.body)
	}
	for _, h := range v.headers {
		b = b.Header(h.Name, h.Value)
	}
	return Seal(b).Build(), nil
}
