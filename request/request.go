package request

// Header is a single header field. A Request may carry several headers with
// the same name; they are kept in the order they were added.
type Header struct {
	Name  string
	Value string
}

// Request is a finalized request description. It is obtained only from
// Sealed.Build and cannot be modified afterwards.
type Request struct {
	url     string
	method  string
	body    string
	hasBody bool
	headers []Header
}

// URL returns the request url.
func (r Request) URL() string {
	return r.url
}

// Method returns the request method.
func (r Request) Method() string {
	return r.method
}

// Body returns the request body and whether one was set.
func (r Request) Body() (string, bool) {
	return r.body, r.hasBody
}

// Headers returns a copy of the header list in insertion order.
func (r Request) Headers() []Header {
	if r.headers == nil {
		return nil
	}
	headers := make([]Header, len(r.headers))
	copy(headers, r.headers)
	return headers
}
