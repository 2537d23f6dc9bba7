package command

import (
	"fmt"

	"github.com/curatorsigma/blazing-agi/agiparse"
)

// RawCommand issues an arbitrary AGI command line verbatim. Use it
// only for commands not yet given their own type; a trailing LF is
// added, but nothing else is interpolated.
type RawCommand struct {
	Text string
}

// NewRawCommand constructs a RawCommand sending text as-is.
func NewRawCommand(text string) RawCommand {
	return RawCommand{Text: text}
}

func (r RawCommand) String() string {
	return fmt.Sprintf("%s\n", r.Text)
}

// RawCommandResponse destructures a 200 reply without interpreting it:
// Result and OperationalData are handed back exactly as received.
type RawCommandResponse struct {
	Result          int
	OperationalData *string
}

func (r RawCommand) ParseReply(status agiparse.Status) (RawCommandResponse, error) {
	return RawCommandResponse{Result: status.Result, OperationalData: status.OperationalData}, nil
}
