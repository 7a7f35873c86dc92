package exchange

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io/ioutil"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/nojima/reqbuild/input"
	"github.com/nojima/reqbuild/request"
	"github.com/nojima/reqbuild/version"
	"github.com/pkg/errors"
)

// BuildRequest turns the user's input into a finalized request. Whether the
// input carries a url and a method is only known at run time, so a missing
// one is reported as a request.BuildError.
func BuildRequest(in *input.Input, options *Options) (request.Request, error) {
	b := request.NewValidated()

	if in.URL != nil {
		u, err := buildURL(in)
		if err != nil {
			return request.Request{}, err
		}
		b.URL(u.String())
	}
	if in.Method != "" {
		b.Method(string(in.Method))
	}

	headers, err := buildHeaders(in)
	if err != nil {
		return request.Request{}, err
	}

	body, err := buildBody(in)
	if err != nil {
		return request.Request{}, err
	}

	if !hasHeader(headers, "Content-Type") && body.contentType != "" {
		headers = append(headers, request.Header{Name: "Content-Type", Value: body.contentType})
	}
	if !hasHeader(headers, "User-Agent") {
		headers = append(headers, request.Header{Name: "User-Agent", Value: "reqbuild/" + version.Current().String()})
	}
	if options.Auth.Enabled && !hasHeader(headers, "Authorization") {
		headers = append(headers, request.Header{Name: "Authorization", Value: basicAuth(options.Auth)})
	}

	for _, h := range headers {
		b.Header(h.Name, h.Value)
	}
	if body.present {
		b.Body(body.content)
	}
	return b.Build()
}

func buildURL(in *input.Input) (*url.URL, error) {
	q, err := url.ParseQuery(in.URL.RawQuery)
	if err != nil {
		return nil, errors.Wrap(err, "parsing query string")
	}
	for _, field := range in.Parameters {
		value, err := resolveFieldValue(field)
		if err != nil {
			return nil, err
		}
		q.Add(field.Name, value)
	}

	u := *in.URL
	u.RawQuery = q.Encode()
	return &u, nil
}

func buildHeaders(in *input.Input) ([]request.Header, error) {
	var headers []request.Header
	for _, field := range in.Header.Fields {
		value, err := resolveFieldValue(field)
		if err != nil {
			return nil, err
		}
		headers = append(headers, request.Header{Name: field.Name, Value: value})
	}
	return headers, nil
}

func hasHeader(headers []request.Header, name string) bool {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return true
		}
	}
	return false
}

func basicAuth(auth AuthOptions) string {
	credential := auth.UserName + ":" + auth.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credential))
}

type bodyTuple struct {
	content     string
	present     bool
	contentType string
}

func buildBody(in *input.Input) (bodyTuple, error) {
	switch in.Body.BodyType {
	case input.EmptyBody:
		return bodyTuple{}, nil
	case input.JSONBody:
		return buildJSONBody(in)
	case input.FormBody:
		if len(in.Body.Files) > 0 {
			return buildMultipartBody(in)
		}
		return buildURLEncodedBody(in)
	case input.RawBody:
		return buildRawBody(in)
	default:
		return bodyTuple{}, errors.Errorf("unknown body type: %v", in.Body.BodyType)
	}
}

func buildJSONBody(in *input.Input) (bodyTuple, error) {
	obj := map[string]interface{}{}
	for _, field := range in.Body.Fields {
		value, err := resolveFieldValue(field)
		if err != nil {
			return bodyTuple{}, err
		}
		obj[field.Name] = value
	}
	for _, field := range in.Body.RawJSONFields {
		value, err := resolveFieldValue(field)
		if err != nil {
			return bodyTuple{}, err
		}
		var v interface{}
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			return bodyTuple{}, errors.Wrapf(err, "parsing JSON value of '%s'", field.Name)
		}
		obj[field.Name] = v
	}
	body, err := json.Marshal(obj)
	if err != nil {
		return bodyTuple{}, errors.Wrap(err, "marshaling JSON of HTTP body")
	}
	return bodyTuple{
		content:     string(body),
		present:     true,
		contentType: "application/json",
	}, nil
}

func buildURLEncodedBody(in *input.Input) (bodyTuple, error) {
	form := url.Values{}
	for _, field := range in.Body.Fields {
		value, err := resolveFieldValue(field)
		if err != nil {
			return bodyTuple{}, err
		}
		form.Add(field.Name, value)
	}
	return bodyTuple{
		content:     form.Encode(),
		present:     true,
		contentType: "application/x-www-form-urlencoded; charset=utf-8",
	}, nil
}

func buildMultipartBody(in *input.Input) (bodyTuple, error) {
	var buffer bytes.Buffer
	multipartWriter := multipart.NewWriter(&buffer)

	for _, field := range in.Body.Fields {
		value, err := resolveFieldValue(field)
		if err != nil {
			return bodyTuple{}, err
		}
		if err := multipartWriter.WriteField(field.Name, value); err != nil {
			return bodyTuple{}, errors.Wrap(err, "writing multipart form field")
		}
	}
	for _, field := range in.Body.Files {
		if err := writeFilePart(multipartWriter, field); err != nil {
			return bodyTuple{}, err
		}
	}
	if err := multipartWriter.Close(); err != nil {
		return bodyTuple{}, errors.Wrap(err, "closing multipart writer")
	}

	return bodyTuple{
		content:     buffer.String(),
		present:     true,
		contentType: multipartWriter.FormDataContentType(),
	}, nil
}

func writeFilePart(multipartWriter *multipart.Writer, field input.Field) error {
	header := make(textproto.MIMEHeader)
	disposition := `form-data; name="` + escapeQuotes(field.Name) + `"`
	if field.IsFile {
		disposition += `; filename="` + escapeQuotes(filepath.Base(field.Value)) + `"`
	}
	header.Set("Content-Disposition", disposition)
	header.Set("Content-Type", "application/octet-stream")

	value, err := resolveFieldValue(field)
	if err != nil {
		return err
	}
	part, err := multipartWriter.CreatePart(header)
	if err != nil {
		return errors.Wrapf(err, "creating multipart part for '%s'", field.Name)
	}
	if _, err := part.Write([]byte(value)); err != nil {
		return errors.Wrapf(err, "writing multipart part for '%s'", field.Name)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func buildRawBody(in *input.Input) (bodyTuple, error) {
	contentType := in.Body.RawType
	if contentType == "" {
		contentType = "application/json"
	}
	return bodyTuple{
		content:     string(in.Body.Raw),
		present:     true,
		contentType: contentType,
	}, nil
}

func resolveFieldValue(field input.Field) (string, error) {
	if !field.IsFile {
		return field.Value, nil
	}
	data, err := ioutil.ReadFile(field.Value)
	if err != nil {
		return "", errors.Wrapf(err, "reading field value of '%s'", field.Name)
	}
	return string(data), nil
}
