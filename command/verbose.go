package command

import (
	"fmt"

	"github.com/curatorsigma/blazing-agi/agiparse"
)

// Verbose issues VERBOSE, sending a message to Asterisk's debug
// output.
type Verbose struct {
	Message string
}

// NewVerbose constructs a Verbose command carrying message.
func NewVerbose(message string) Verbose {
	return Verbose{Message: message}
}

func (v Verbose) String() string {
	return fmt.Sprintf("VERBOSE %s\n", quote(v.Message))
}

// VerboseResponse is the (empty) outcome of a successful Verbose
// command; there is nothing to report beyond the 200/result=1 reply.
type VerboseResponse struct{}

func (v Verbose) ParseReply(status agiparse.Status) (VerboseResponse, error) {
	if status.Result == 1 {
		return VerboseResponse{}, nil
	}
	return VerboseResponse{}, &StatusParseError{Result: status.Result, OperationalData: status.OperationalData, ResponseToCommand: "VERBOSE"}
}
