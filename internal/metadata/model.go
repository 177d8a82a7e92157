// Package metadata describes the commands and parameters known to the
// scripting runtime and resolves them by identifier or alias.
package metadata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type ValueType int

const (
	String ValueType = iota
	Integer
	Decimal
	Boolean
)

type ValueContainerType int

const (
	Single ValueContainerType = iota
	List
	Named
	NamedList
)

// Project is the complete schema of one scripting project.
type Project struct {
	Commands []Command `json:"commands" yaml:"commands" toml:"commands"`
}

type Command struct {
	ID         string      `json:"id"         yaml:"id"         toml:"id"`
	Alias      string      `json:"alias"      yaml:"alias"      toml:"alias"`
	Label      string      `json:"label"      yaml:"label"      toml:"label"`
	Summary    string      `json:"summary"    yaml:"summary"    toml:"summary"`
	Remarks    string      `json:"remarks"    yaml:"remarks"    toml:"remarks"`
	Examples   string      `json:"examples"   yaml:"examples"   toml:"examples"`
	Parameters []Parameter `json:"parameters" yaml:"parameters" toml:"parameters"`
}

type Parameter struct {
	ID                 string             `json:"id"                 yaml:"id"                 toml:"id"`
	Alias              string             `json:"alias"              yaml:"alias"              toml:"alias"`
	Label              string             `json:"label"              yaml:"label"              toml:"label"`
	Required           bool               `json:"required"           yaml:"required"           toml:"required"`
	Nameless           bool               `json:"nameless"           yaml:"nameless"           toml:"nameless"`
	Summary            string             `json:"summary"            yaml:"summary"            toml:"summary"`
	ValueType          ValueType          `json:"valueType"          yaml:"valueType"          toml:"valueType"`
	ValueContainerType ValueContainerType `json:"valueContainerType" yaml:"valueContainerType" toml:"valueContainerType"`
	TypeLabel          string             `json:"typeLabel"          yaml:"typeLabel"          toml:"typeLabel"`
}

func (t ValueType) String() string {
	switch t {
	case Integer:
		return "Integer"
	case Decimal:
		return "Decimal"
	case Boolean:
		return "Boolean"
	default:
		return "String"
	}
}

func (t ValueType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ValueType) UnmarshalText(data []byte) error {
	switch strings.ToLower(string(data)) {
	case "", "string":
		*t = String
	case "integer":
		*t = Integer
	case "decimal":
		*t = Decimal
	case "boolean":
		*t = Boolean
	default:
		ordinal, err := strconv.Atoi(string(data))
		if err != nil {
			return fmt.Errorf("unknown value type %q", data)
		}
		*t = ValueType(ordinal)
	}
	return nil
}

// UnmarshalJSON accepts both the enum name and its ordinal.
func (t *ValueType) UnmarshalJSON(data []byte) error {
	var ordinal int
	if err := json.Unmarshal(data, &ordinal); err == nil {
		*t = ValueType(ordinal)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	return t.UnmarshalText([]byte(name))
}

func (t ValueContainerType) String() string {
	switch t {
	case List:
		return "List"
	case Named:
		return "Named"
	case NamedList:
		return "NamedList"
	default:
		return "Single"
	}
}

func (t ValueContainerType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ValueContainerType) UnmarshalText(data []byte) error {
	switch strings.ToLower(string(data)) {
	case "", "single":
		*t = Single
	case "list":
		*t = List
	case "named":
		*t = Named
	case "namedlist":
		*t = NamedList
	default:
		ordinal, err := strconv.Atoi(string(data))
		if err != nil {
			return fmt.Errorf("unknown value container type %q", data)
		}
		*t = ValueContainerType(ordinal)
	}
	return nil
}

func (t *ValueContainerType) UnmarshalJSON(data []byte) error {
	var ordinal int
	if err := json.Unmarshal(data, &ordinal); err == nil {
		*t = ValueContainerType(ordinal)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	return t.UnmarshalText([]byte(name))
}

// normalize fills labels left empty by the schema author.
func (c *Command) normalize() {
	if c.Label == "" {
		c.Label = c.ID
	}
	for i := range c.Parameters {
		param := &c.Parameters[i]
		if param.Label == "" {
			param.Label = param.ID
		}
		if param.TypeLabel == "" {
			param.TypeLabel = typeLabel(param.ValueType, param.ValueContainerType)
		}
	}
}

func typeLabel(valueType ValueType, container ValueContainerType) string {
	switch container {
	case List:
		return "List<" + valueType.String() + ">"
	case Named:
		return "Named<" + valueType.String() + ">"
	case NamedList:
		return "List<Named<" + valueType.String() + ">>"
	default:
		return valueType.String()
	}
}
