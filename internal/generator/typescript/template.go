package typescript

const moduleTemplate = `// Generated by swagen. Do not edit.
{{- if .Title}}
// {{.Title}}{{if .Version}} {{.Version}}{{end}}
{{- end}}

export const BASE_URL = {{squote .BaseURL}};

export class ApiError extends Error {
    constructor(public readonly status: number, public readonly body: string) {
        super('Request failed with status ' + status);
        this.name = 'ApiError';
    }
}
{{- $suffix := .ClientSuffix}}
{{- range .Services}}

export class {{.Name}}{{$suffix}} {
    constructor(
        private readonly baseUrl: string = BASE_URL,
        private readonly fetchImpl: typeof fetch = fetch,
    ) {}
{{- range .Operations}}

    /**
{{- range lines .Description}}
     * {{.}}
{{- else}}
     * {{.Method}} {{.Path}}
{{- end}}
{{- range lines .Description2}}
     * {{.}}
{{- end}}
{{- if .Deprecated}}
     * @deprecated
{{- end}}
     */
    async {{.Name}}({{params .}}): Promise<{{if .Result}}{{.Result}}{{else}}void{{end}}> {
        const query = new URLSearchParams();
{{- range .QueryParams}}
        appendAll(query, {{squote .WireName}}, {{.Name}});
{{- end}}
        const headers: Record<string, string> = { Accept: 'application/json' };
{{- range .HeaderParams}}
        if ({{.Name}} !== undefined && {{.Name}} !== null) {
            headers[{{squote .WireName}}] = String({{.Name}});
        }
{{- end}}
{{- if .Body}}
        headers['Content-Type'] = 'application/json';
        const body = JSON.stringify({{.Body.Name}});
{{- else if .FormParams}}
        const body = new FormData();
{{- range .FormParams}}
        appendAll(body, {{squote .WireName}}, {{.Name}});
{{- end}}
{{- else}}
        const body = undefined;
{{- end}}
        const url = buildUrl(this.baseUrl, {{pathExpr .}}, query);
        {{if .Result}}return (await send(this.fetchImpl, {{squote .Method}}, url, headers, body)) as {{.Result}};{{else}}await send(this.fetchImpl, {{squote .Method}}, url, headers, body);{{end}}
    }
{{- end}}
}
{{- end}}
{{- range .Models}}

export interface {{.Name}} {
{{- range .Properties}}
    {{.Name}}{{if not .Required}}?{{end}}: {{.Type}};
{{- end}}
}
{{- end}}
{{- range .Enums}}

export type {{.Name}} = {{range $i, $m := .Members}}{{if $i}} | {{end}}{{squote $m.Value}}{{end}};
{{- end}}

function buildUrl(baseUrl: string, path: string, query: URLSearchParams): string {
    let url = baseUrl.endsWith('/') ? baseUrl.slice(0, -1) : baseUrl;
    url += path.startsWith('/') ? path : '/' + path;
    const qs = query.toString();
    return qs ? url + '?' + qs : url;
}

function appendAll(target: URLSearchParams | FormData, name: string, value: unknown): void {
    if (value === undefined || value === null) {
        return;
    }
    for (const item of Array.isArray(value) ? value : [value]) {
        if (target instanceof FormData && item instanceof Blob) {
            target.append(name, item);
        } else {
            target.append(name, String(item));
        }
    }
}

async function send(
    fetchImpl: typeof fetch,
    method: string,
    url: string,
    headers: Record<string, string>,
    body?: BodyInit,
): Promise<unknown> {
    const response = await fetchImpl(url, { method, headers, body });
    const text = await response.text();
    if (!response.ok) {
        throw new ApiError(response.status, text);
    }
    return text ? JSON.parse(text) : undefined;
}
`
