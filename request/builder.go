package request

// NoURL marks a builder whose url has not been set yet.
type NoURL struct{}

// HasURL marks a builder whose url has been set. It carries the url.
type HasURL struct {
	value string
}

// NoMethod marks a builder whose method has not been set yet.
type NoMethod struct{}

// HasMethod marks a builder whose method has been set. It carries the method.
type HasMethod struct {
	value string
}

type urlState interface {
	NoURL | HasURL
}

type methodState interface {
	NoMethod | HasMethod
}

// Builder is an unsealed request under construction. U and M record, in the
// type, whether the url and the method have been supplied.
//
// Every method returns a new Builder and leaves the receiver untouched, so an
// intermediate value can be reused without affecting builders derived from it.
// Only Builder[HasURL, HasMethod] can be passed to Seal.
type Builder[U urlState, M methodState] struct {
	url     U
	method  M
	body    string
	hasBody bool
	headers []Header
}

// New returns an empty builder with neither url nor method.
func New() Builder[NoURL, NoMethod] {
	return Builder[NoURL, NoMethod]{}
}

// URL sets the url, replacing any previous one.
func (b Builder[U, M]) URL(url string) Builder[HasURL, M] {
	return Builder[HasURL, M]{
		url:     HasURL{value: url},
		method:  b.method,
		body:    b.body,
		hasBody: b.hasBody,
		headers: b.headers,
	}
}

// Method sets the method, replacing any previous one.
func (b Builder[U, M]) Method(method string) Builder[U, HasMethod] {
	return Builder[U, HasMethod]{
		url:     b.url,
		method:  HasMethod{value: method},
		body:    b.body,
		hasBody: b.hasBody,
		headers: b.headers,
	}
}

// Body sets the body, replacing any previous one.
func (b Builder[U, M]) Body(body string) Builder[U, M] {
	b.body = body
	b.hasBody = true
	return b
}

// Header appends a header. Duplicate names are allowed.
func (b Builder[U, M]) Header(name, value string) Builder[U, M] {
	// copy on append
	n := len(b.headers)
	b.headers = append(b.headers[:n:n], Header{Name: name, Value: value})
	return b
}

// Sealed is a builder with both url and method set that accepts no further
// changes. Build is defined only on Sealed.
type Sealed struct {
	url     HasURL
	method  HasMethod
	body    string
	hasBody bool
	headers []Header
}

// Seal freezes a complete builder. Passing a builder that lacks the url or
// the method does not compile.
func Seal(b Builder[HasURL, HasMethod]) Sealed {
	return Sealed{
		url:     b.url,
		method:  b.method,
		body:    b.body,
		hasBody: b.hasBody,
		headers: b.headers,
	}
}

// Build returns the finalized request.
func (s Sealed) Build() Request {
	var headers []Header
	if len(s.headers) > 0 {
		headers = make([]Header, len(s.headers))
		copy(headers, s.headers)
	}
	return Request{
		url:     s.url.value,
		method:  s.method.value,
		body:    s.body,
		hasBody: s.hasBody,
		headers: headers,
	}
}
