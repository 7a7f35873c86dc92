package input

import "net/url"

// Input is a request description as given by the user. URL and Method may be
// unset when the description comes from a request file.
type Input struct {
	Method     Method
	URL        *url.URL
	Parameters []Field
	Header     Header
	Body       Body
}

type Method string

type Header struct {
	Fields []Field
}

type BodyType int

const (
	EmptyBody BodyType = iota
	JSONBody
	FormBody
	RawBody
)

type Body struct {
	BodyType      BodyType
	Fields        []Field
	RawJSONFields []Field // used only when BodyType == JSONBody
	Files         []Field // used only when BodyType == FormBody
	Raw           []byte  // used only when BodyType == RawBody
	RawType       string  // content type of Raw; empty means JSON
}

type Field struct {
	Name   string
	Value  string
	IsFile bool
}
