package hover

import (
	"strings"

	"github.com/Naninovel/Language/internal/metadata"
	"github.com/iancoleman/strcase"
)

func commandMarkdown(cmd metadata.Command) string {
	var sections []string
	if cmd.Summary != "" {
		sections = append(sections, "## Summary\n"+cmd.Summary)
	}
	if cmd.Remarks != "" {
		sections = append(sections, "## Remarks\n"+cmd.Remarks)
	}
	if cmd.Examples != "" {
		sections = append(sections, "## Examples\n```nani\n"+cmd.Examples+"\n```")
	}
	if len(cmd.Parameters) > 0 {
		sections = append(sections, parametersTable(cmd.Parameters))
	}
	return strings.Join(sections, "\n\n")
}

func parametersTable(params []metadata.Parameter) string {
	var b strings.Builder
	b.WriteString("## Parameters\nName | Type | Summary\n:--- | :--- | :---\n")
	for _, param := range params {
		b.WriteString(parameterName(param))
		b.WriteString(" | ")
		b.WriteString(strings.ToLower(param.TypeLabel))
		b.WriteString(" | ")
		b.WriteString(param.Summary)
		b.WriteString("\n")
	}
	return b.String()
}

// parameterName renders `**name**` for required and `~name~` for nameless
// parameters.
func parameterName(param metadata.Parameter) string {
	name := param.ID
	if param.Alias != "" {
		name = param.Alias
	}
	name = strcase.ToLowerCamel(name)
	if param.Required {
		name = "**" + name + "**"
	}
	if param.Nameless {
		name = "~" + name + "~"
	}
	return name
}
