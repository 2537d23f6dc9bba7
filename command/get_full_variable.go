package command

import (
	"fmt"

	"github.com/curatorsigma/blazing-agi/agiparse"
)

// GetFullVariable issues GET FULL VARIABLE, evaluating an expression
// against a channel. Channel defaults to the connection's own channel;
// WithChannel targets a different one.
//
// The original typestate split (ThisChannel/OtherChannel structs
// selected at compile time) doesn't carry over cleanly to Go generics
// without a free function per transition; a plain optional field with
// the same builder call shape reads more naturally here.
type GetFullVariable struct {
	Expression string
	Channel    string
}

// NewGetFullVariable constructs a GetFullVariable targeting the
// connection's own channel.
func NewGetFullVariable(expression string) GetFullVariable {
	return GetFullVariable{Expression: expression}
}

// WithChannel returns a copy of g targeting channel instead of the
// connection's own channel.
func (g GetFullVariable) WithChannel(channel string) GetFullVariable {
	g.Channel = channel
	return g
}

func (g GetFullVariable) String() string {
	if g.Channel == "" {
		return fmt.Sprintf("GET FULL VARIABLE %s\n", quote(g.Expression))
	}
	return fmt.Sprintf("GET FULL VARIABLE %s %s\n", quote(g.Expression), quote(g.Channel))
}

// GetFullVariableResponse is the outcome of a successful
// GetFullVariable command. Value is nil when the expression evaluated
// to nothing (result=0); otherwise it holds the evaluated text.
type GetFullVariableResponse struct {
	Value *string
}

func (g GetFullVariable) ParseReply(status agiparse.Status) (GetFullVariableResponse, error) {
	switch status.Result {
	case 1:
		if status.OperationalData == nil {
			return GetFullVariableResponse{}, &StatusParseError{Result: status.Result, OperationalData: nil, ResponseToCommand: "GET FULL VARIABLE"}
		}
		return GetFullVariableResponse{Value: opData(status)}, nil
	case 0:
		return GetFullVariableResponse{Value: nil}, nil
	default:
		return GetFullVariableResponse{}, &StatusParseError{Result: status.Result, OperationalData: status.OperationalData, ResponseToCommand: "GET FULL VARIABLE"}
	}
}
