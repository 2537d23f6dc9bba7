package command

import (
	"fmt"

	"github.com/curatorsigma/blazing-agi/agiparse"
)

// SetVariable issues SET VARIABLE, assigning value to a channel
// variable.
type SetVariable struct {
	VarName string
	Value   string
}

// NewSetVariable constructs a SetVariable command.
func NewSetVariable(varName, value string) SetVariable {
	return SetVariable{VarName: varName, Value: value}
}

func (s SetVariable) String() string {
	return fmt.Sprintf("SET VARIABLE %s %s\n", quote(s.VarName), quote(s.Value))
}

// SetVariableResponse is the (empty) outcome of a successful
// SetVariable command; the only acceptable reply is result=1.
type SetVariableResponse struct{}

func (s SetVariable) ParseReply(status agiparse.Status) (SetVariableResponse, error) {
	if status.Result == 1 {
		return SetVariableResponse{}, nil
	}
	return SetVariableResponse{}, &StatusParseError{Result: status.Result, OperationalData: status.OperationalData, ResponseToCommand: "SET VARIABLE"}
}
