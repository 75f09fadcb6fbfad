package golang

const fileTemplate = `// Code generated by swagen. DO NOT EDIT.
{{- if .Title}}
// Source: {{.Title}}{{if .Version}} {{.Version}}{{end}}
{{- end}}

package {{.Package}}

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// BaseURL is the service address declared by the API document.
const BaseURL = {{quote .BaseURL}}
{{range .Enums}}
{{- $enum := .Name}}
type {{$enum}} string

const (
{{- range .Members}}
	{{$enum}}{{.Name}} {{$enum}} = {{quote .Value}}
{{- end}}
)
{{end}}
{{- range .Models}}
type {{.Name}} struct {
{{- range .Properties}}
	{{.Name}} {{fieldType .}} ` + "`" + `json:"{{.WireName}}{{if not .Required}},omitempty{{end}}"` + "`" + `
{{- end}}
}
{{end}}
// APIError is returned for responses outside the 2xx range.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}
{{range .Services}}
{{- $client := printf "%sClient" .Name}}
// {{$client}} calls the {{.Name}} operations.
type {{$client}} struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New{{$client}} returns a client for baseURL. Empty values fall back to
// BaseURL and http.DefaultClient.
func New{{$client}}(baseURL string, httpClient *http.Client) *{{$client}} {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &{{$client}}{BaseURL: baseURL, HTTPClient: httpClient}
}
{{range .Operations}}
{{- with comment .Name .Description .Description2}}
{{.}}
{{- end}}
{{- if .Deprecated}}
//
// Deprecated: this operation is deprecated by the API.
{{- end}}
func (c *{{$client}}) {{.Name}}(ctx context.Context{{range .Params}}, {{.Name}} {{paramType .}}{{end}}) ({{if .Result}}result {{resultType .}}, {{end}}err error) {
	reqPath := {{quote .Path}}
{{- range .PathParams}}
	reqPath = strings.ReplaceAll(reqPath, {{printf "{%s}" .WireName | quote}}, url.PathEscape(fmt.Sprint({{.Name}})))
{{- end}}
	reqQuery := url.Values{}
{{- range .QueryParams}}
	{{setValues "reqQuery" .}}
{{- end}}
	reqHeader := http.Header{}
	reqHeader.Set("Accept", "application/json")
{{- range .HeaderParams}}
	{{setValues "reqHeader" .}}
{{- end}}
{{- if .Body}}
	reqBody, err := jsonBody({{.Body.Name}})
	if err != nil {
		return
	}
	reqHeader.Set("Content-Type", "application/json")
{{- else if .FormParams}}
	form := url.Values{}
{{- range .FormParams}}
	{{setValues "form" .}}
{{- end}}
	reqBody := strings.NewReader(form.Encode())
	reqHeader.Set("Content-Type", "application/x-www-form-urlencoded")
{{- else}}
	var reqBody io.Reader
{{- end}}
{{- if .Result}}
	err = doRequest(ctx, c.HTTPClient, c.BaseURL, {{quote .Method}}, reqPath, reqQuery, reqHeader, reqBody, &result)
{{- else}}
	err = doRequest(ctx, c.HTTPClient, c.BaseURL, {{quote .Method}}, reqPath, reqQuery, reqHeader, reqBody, nil)
{{- end}}
	return
}
{{end}}
{{- end}}
func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

func doRequest(ctx context.Context, client *http.Client, baseURL, method, reqPath string, query url.Values, header http.Header, body io.Reader, out any) error {
	if client == nil {
		client = http.DefaultClient
	}
	u := strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(reqPath, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header = header
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
`
