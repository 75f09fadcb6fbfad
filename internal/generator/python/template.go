package python

const moduleTemplate = `# Generated by swagen. Do not edit.
{{- if .Title}}
# {{.Title}}{{if .Version}} {{.Version}}{{end}}
{{- end}}
from __future__ import annotations

import dataclasses
from enum import Enum
from typing import Any, Dict, List, Optional, Union, get_args, get_origin, get_type_hints
from urllib.parse import quote

import requests

BASE_URL = {{pyquote .BaseURL}}


class ApiError(Exception):
    def __init__(self, status: int, body: str) -> None:
        super().__init__("Request failed with status %d" % status)
        self.status = status
        self.body = body
{{- range .Enums}}


class {{.Name}}(str, Enum):
{{- range .Members}}
    {{.Name}} = {{pyquote .Value}}
{{- else}}
    pass
{{- end}}
{{- end}}
{{- range .Models}}


@dataclasses.dataclass
class {{.Name}}:
{{- range .Properties}}
{{- if .Required}}
    {{.Name}}: {{.Type}} = dataclasses.field(metadata={"wire": {{pyquote .WireName}}})
{{- else}}
    {{.Name}}: Optional[{{.Type}}] = dataclasses.field(default=None, metadata={"wire": {{pyquote .WireName}}})
{{- end}}
{{- else}}
    pass
{{- end}}
{{- end}}
{{- $suffix := .ClientSuffix}}
{{- range .Services}}


class {{.Name}}{{$suffix}}:
    def __init__(self, base_url: str = BASE_URL, session: Optional[requests.Session] = None) -> None:
        self.base_url = base_url.rstrip("/")
        self.session = session or requests.Session()
{{- range .Operations}}

    def {{.Name}}({{params .}}) -> {{if .Result}}{{.Result}}{{else}}None{{end}}:
{{docstring "        " .Description .Description2}}
{{- if .Deprecated}}        # deprecated
{{end}}        path = {{pyquote .Path}}
{{- range .PathParams}}
        path = path.replace({{printf "{%s}" .WireName | pyquote}}, quote(str(_encode({{.Name}})), safe=""))
{{- end}}
        query: Dict[str, Any] = {}
{{- range .QueryParams}}
        if {{.Name}} is not None:
            query[{{pyquote .WireName}}] = _encode({{.Name}})
{{- end}}
        headers: Dict[str, str] = {"Accept": "application/json"}
{{- range .HeaderParams}}
        if {{.Name}} is not None:
            headers[{{pyquote .WireName}}] = str(_encode({{.Name}}))
{{- end}}
{{- if .Body}}
        payload = _encode({{.Body.Name}})
{{- else}}
        payload = None
{{- end}}
        data: Dict[str, Any] = {}
        files: Dict[str, Any] = {}
{{- range .FormParams}}
        if {{.Name}} is not None:
{{- if isFile .}}
            files[{{pyquote .WireName}}] = {{.Name}}
{{- else}}
            data[{{pyquote .WireName}}] = _encode({{.Name}})
{{- end}}
{{- end}}
        result = _send(self.session, {{pyquote .Method}}, self.base_url + path, query, headers, payload, data, files)
{{- if .Result}}
        return _decode({{.Result}}, result)
{{- end}}
{{- end}}
{{- end}}


def _encode(value: Any) -> Any:
    if dataclasses.is_dataclass(value) and not isinstance(value, type):
        out = {}
        for f in dataclasses.fields(value):
            item = getattr(value, f.name)
            if item is not None:
                out[f.metadata.get("wire", f.name)] = _encode(item)
        return out
    if isinstance(value, Enum):
        return value.value
    if isinstance(value, list):
        return [_encode(item) for item in value]
    if isinstance(value, dict):
        return {key: _encode(item) for key, item in value.items()}
    return value


def _decode(tp: Any, value: Any) -> Any:
    if value is None:
        return None
    origin = get_origin(tp)
    if origin is Union:
        args = [arg for arg in get_args(tp) if arg is not type(None)]
        return _decode(args[0], value) if args else value
    if origin is list:
        args = get_args(tp)
        return [_decode(args[0] if args else Any, item) for item in value]
    if isinstance(tp, type) and dataclasses.is_dataclass(tp):
        hints = get_type_hints(tp)
        kwargs = {}
        for f in dataclasses.fields(tp):
            wire = f.metadata.get("wire", f.name)
            if wire in value:
                kwargs[f.name] = _decode(hints[f.name], value[wire])
        return tp(**kwargs)
    if isinstance(tp, type) and issubclass(tp, Enum):
        return tp(value)
    return value


def _send(
    session: requests.Session,
    method: str,
    url: str,
    query: Dict[str, Any],
    headers: Dict[str, str],
    payload: Any,
    data: Dict[str, Any],
    files: Dict[str, Any],
) -> Any:
    response = session.request(
        method,
        url,
        params=query or None,
        headers=headers,
        json=payload,
        data=data or None,
        files=files or None,
    )
    if not response.ok:
        raise ApiError(response.status_code, response.text)
    if not response.text.strip():
        return None
    return response.json()
`
