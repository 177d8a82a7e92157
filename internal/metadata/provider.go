package metadata

import (
	"strings"
	"sync"
)

// Provider resolves commands and parameters by identifier or alias,
// ignoring case. It is safe for concurrent use; Update swaps the whole
// schema at once.
type Provider struct {
	mu       sync.RWMutex
	commands map[string]*Command
	count    int
}

func NewProvider(project Project) *Provider {
	p := &Provider{}
	p.Update(project)
	return p
}

// Update replaces the schema with the given project.
func (p *Provider) Update(project Project) {
	commands := make(map[string]*Command, len(project.Commands)*2)
	for i := range project.Commands {
		cmd := project.Commands[i]
		cmd.Parameters = append([]Parameter(nil), cmd.Parameters...)
		cmd.normalize()
		if cmd.Alias != "" {
			commands[strings.ToLower(cmd.Alias)] = &cmd
		}
		commands[strings.ToLower(cmd.ID)] = &cmd
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.commands = commands
	p.count = len(project.Commands)
}

// Len returns the number of commands in the schema.
func (p *Provider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.count
}

// FindCommand looks a command up by identifier or alias.
func (p *Provider) FindCommand(id string) (Command, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cmd, ok := p.commands[strings.ToLower(id)]
	if !ok {
		return Command{}, false
	}
	return *cmd, true
}

// FindParameter looks a parameter of the command up by identifier or
// alias. An empty paramID resolves the command's nameless parameter.
func (p *Provider) FindParameter(commandID, paramID string) (Parameter, bool) {
	cmd, ok := p.FindCommand(commandID)
	if !ok {
		return Parameter{}, false
	}
	for _, param := range cmd.Parameters {
		if paramID == "" {
			if param.Nameless {
				return param, true
			}
			continue
		}
		if strings.EqualFold(param.ID, paramID) || (param.Alias != "" && strings.EqualFold(param.Alias, paramID)) {
			return param, true
		}
	}
	return Parameter{}, false
}
