package requestgen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/thorn-jmh/errorst"
)

const DefaultNamespace = `App\Http\Requests`

// LaravelEmitter renders a PHP FormRequest class.
type LaravelEmitter struct {
	Namespace string
}

func (e *LaravelEmitter) Name() string      { return "laravel" }
func (e *LaravelEmitter) Extension() string { return "php" }

var laravelTemplate = template.Must(template.New("request.php").Funcs(template.FuncMap{
	"php":     phpString,
	"phpList": phpList,
}).Parse(`<?php

// {{ .Header }}

namespace {{ .Namespace }};

use Illuminate\Foundation\Http\FormRequest;

class {{ .Name }} extends FormRequest
{
    public function authorize()
    {
        return true;
    }

    public function rules()
    {
        return [
{{- range .Rules }}
            {{ php .Field }} => [{{ phpList .Rules }}],
{{- end }}
        ];
    }

    public function messages()
    {
        return [
{{- range .Messages }}
            {{ php .Key }} => {{ php .Text }},
{{- end }}
        ];
    }

    protected function prepareForValidation()
    {
{{- range .Statements }}
        {{ . }}
{{- end }}
    }
}
`))

type laravelView struct {
	Header     string
	Namespace  string
	*GeneratedRequest
	Messages   []Message
	Statements []string
}

func (e *LaravelEmitter) Emit(req *GeneratedRequest) ([]byte, error) {
	ns := strings.Trim(e.Namespace, `\ `)
	if ns == "" {
		ns = DefaultNamespace
	}

	view := laravelView{
		Header:           generatedHeader,
		Namespace:        ns,
		GeneratedRequest: req,
		Messages:         req.OrderedMessages(),
	}
	for _, n := range req.Normalizers {
		if stmt := phpStatement(n); stmt != "" {
			view.Statements = append(view.Statements, stmt)
		}
	}

	buf := &bytes.Buffer{}
	if err := laravelTemplate.Execute(buf, view); err != nil {
		return nil, errorst.Wrap(ErrEmitFailure, "php source of %s: %v", req.Name, err)
	}
	return buf.Bytes(), nil
}

// phpStatement renders n as one line of prepareForValidation. Null input
// is never touched and values that cannot be coerced are kept for the
// rules to reject.
func phpStatement(n Normalizer) string {
	in := fmt.Sprintf("$this->input(%s)", phpString(n.Field))
	merge := func(expr string) string {
		return fmt.Sprintf("$this->merge([%s => %s]);", phpString(n.Field), expr)
	}

	switch n.Kind {
	case NormalizeTrim:
		return fmt.Sprintf("if (is_string(%s)) { %s }", in, merge("trim("+in+")"))
	case NormalizeInt:
		return fmt.Sprintf("if (is_numeric(%s)) { %s }", in, merge("(int) "+in))
	case NormalizeFloat:
		return fmt.Sprintf("if (is_numeric(%s)) { %s }", in, merge("(float) "+in))
	case NormalizeBool:
		return fmt.Sprintf("if (%s !== null) { %s }", in,
			merge("filter_var("+in+", FILTER_VALIDATE_BOOLEAN, FILTER_NULL_ON_FAILURE) ?? "+in))
	case NormalizeDate:
		return phpReformat(in, merge, "Y-m-d")
	case NormalizeDateTime:
		return phpReformat(in, merge, dateTimeFormat)
	default:
		return ""
	}
}

func phpReformat(in string, merge func(string) string, layout string) string {
	return fmt.Sprintf("if (%s !== null && strtotime(%s) !== false) { %s }",
		in, in, merge(fmt.Sprintf("date(%s, strtotime(%s))", phpString(layout), in)))
}

var phpEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// phpString quotes s as a PHP single quoted string.
func phpString(s string) string {
	return "'" + phpEscaper.Replace(s) + "'"
}

func phpList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = phpString(item)
	}
	return strings.Join(quoted, ", ")
}
