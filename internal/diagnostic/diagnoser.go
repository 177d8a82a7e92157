// Package diagnostic validates documents against the command schema and
// publishes the resulting diagnostics.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/Naninovel/Language/internal/document"
	"github.com/Naninovel/Language/internal/metadata"
	"github.com/Naninovel/Language/internal/script"
	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var log = commonlog.GetLogger("naninovel.diagnostic")

const source = "naninovel"

// PublishFunc receives the complete diagnostic batch of one document.
// The slice is never nil.
type PublishFunc func(uri string, diagnostics []protocol.Diagnostic)

type Diagnoser struct {
	registry *document.Registry
	provider *metadata.Provider
	publish  PublishFunc
}

func NewDiagnoser(registry *document.Registry, provider *metadata.Provider, publish PublishFunc) *Diagnoser {
	return &Diagnoser{registry: registry, provider: provider, publish: publish}
}

// Diagnose validates the document registered under uri and publishes the
// result exactly once, even when nothing was found.
func (d *Diagnoser) Diagnose(uri string) error {
	doc, err := d.registry.Get(uri)
	if err != nil {
		return err
	}
	diagnostics := Collect(doc, d.provider)
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)
	d.publish(uri, diagnostics)
	return nil
}

// Collect returns the diagnostics of doc in line order.
func Collect(doc *document.Document, provider *metadata.Provider) []protocol.Diagnostic {
	c := &collector{provider: provider, diagnostics: []protocol.Diagnostic{}}
	for i, line := range doc.Lines() {
		c.line = uint32(i)
		c.diagnoseLine(line)
	}
	return c.diagnostics
}

type collector struct {
	provider    *metadata.Provider
	diagnostics []protocol.Diagnostic
	line        uint32
}

func (c *collector) diagnoseLine(line document.Line) {
	for _, err := range line.Errors {
		c.add(script.Span{Start: err.StartIndex, End: err.EndIndex + 1}, err.Message)
	}
	switch tree := line.Script.(type) {
	case *script.CommandLine:
		c.diagnoseCommand(tree.Command)
	case *script.GenericTextLine:
		for _, cmd := range tree.Commands() {
			c.diagnoseCommand(cmd)
		}
	}
}

func (c *collector) diagnoseCommand(cmd *script.Command) {
	if cmd.Identifier.Text == "" {
		return
	}
	meta, ok := c.provider.FindCommand(cmd.Identifier.Text)
	if !ok {
		c.add(cmd.Identifier.Span, fmt.Sprintf("Command '%s' is unknown.", cmd.Identifier.Text))
		return
	}
	for _, param := range meta.Parameters {
		if param.Required && !isDefined(param, cmd) {
			c.add(cmd.Span, fmt.Sprintf("Required parameter '%s' is missing.", param.Label))
		}
	}
	for _, param := range cmd.Parameters {
		c.diagnoseParameter(param, meta)
	}
}

func (c *collector) diagnoseParameter(param *script.Parameter, cmd metadata.Command) {
	if param.Identifier != nil && param.Identifier.Text == "" {
		return
	}
	meta, ok := c.provider.FindParameter(cmd.ID, param.ID())
	switch {
	case !ok && param.Nameless():
		c.add(param.Span, fmt.Sprintf("Command '%s' doesn't have a nameless parameter.", cmd.Label))
	case !ok:
		c.add(param.Span, fmt.Sprintf("Command '%s' doesn't have '%s' parameter.", cmd.Label, param.ID()))
	case param.Value.Empty() || param.Value.Dynamic():
	case !isValid(param.Value.Text, meta):
		c.add(param.Value.Span, fmt.Sprintf("Invalid value: '%s' is not a %s.", param.Value, meta.TypeLabel))
	}
}

func (c *collector) add(span script.Span, message string) {
	severity := protocol.DiagnosticSeverityError
	src := source
	c.diagnostics = append(c.diagnostics, protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: c.line, Character: uint32(span.Start)},
			End:   protocol.Position{Line: c.line, Character: uint32(span.End)},
		},
		Severity: &severity,
		Source:   &src,
		Message:  message,
	})
}

// isDefined reports whether cmd supplies the parameter, by id or alias,
// or positionally when the parameter is nameless.
func isDefined(meta metadata.Parameter, cmd *script.Command) bool {
	for _, param := range cmd.Parameters {
		if param.Nameless() {
			if meta.Nameless {
				return true
			}
			continue
		}
		id := param.ID()
		if strings.EqualFold(id, meta.ID) || (meta.Alias != "" && strings.EqualFold(id, meta.Alias)) {
			return true
		}
	}
	return false
}
