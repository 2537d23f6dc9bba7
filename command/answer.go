package command

import "github.com/curatorsigma/blazing-agi/agiparse"

// Answer issues ANSWER, telling Asterisk to answer the current
// channel.
type Answer struct{}

// NewAnswer constructs the Answer command.
func NewAnswer() Answer { return Answer{} }

func (Answer) String() string { return "ANSWER\n" }

// AnswerResponse is the outcome of an Answer command that got a 200
// reply.
type AnswerResponse int

const (
	// AnswerSuccess means the channel was answered.
	AnswerSuccess AnswerResponse = iota
	// AnswerFailure means Asterisk failed to answer, independent of AGI.
	AnswerFailure
)

func (a Answer) ParseReply(status agiparse.Status) (AnswerResponse, error) {
	switch status.Result {
	case 0:
		return AnswerSuccess, nil
	case -1:
		return AnswerFailure, nil
	default:
		return 0, &StatusParseError{Result: status.Result, OperationalData: status.OperationalData, ResponseToCommand: "ANSWER"}
	}
}
