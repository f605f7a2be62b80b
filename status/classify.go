package status

import "fmt"

// Category is the outcome label attached to a status code.
type Category int

const (
	Success Category = iota
	Redirect
	Failure
)

// String returns the lowercase category name.
func (c Category) String() string {
	switch c {
	case Success:
		return "success"
	case Redirect:
		return "redirect"
	case Failure:
		return "failure"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Outcome is the result of classifying a status code. It is a label, not an error.
type Outcome struct {
	Category Category
	Message  string
}

// IsSuccess reports whether the outcome allows decoding the body.
func (o Outcome) IsSuccess() bool {
	return o.Category == Success
}

type rule struct {
	category Category
	response Response
}

// classification is the allow-list consulted by Classify. Codes missing from
// it are failures with a synthesized message.
var classification = map[int]rule{
	100: {Success, Continue},
	101: {Success, SwitchingProtocols},
	102: {Success, Processing},
	103: {Success, EarlyHints},
	200: {Success, OK},
	201: {Success, Created},
	204: {Success, NoContent},
	304: {Redirect, NotModified},
	400: {Failure, BadRequest},
	401: {Failure, Unauthorized},
	403: {Failure, Forbidden},
	404: {Failure, NotFound},
	409: {Failure, Conflict},
	500: {Failure, InternalServerError},
}

// Classify maps a status code to its outcome. It is total and has no state.
func Classify(code int) Outcome {
	if r, ok := classification[code]; ok {
		return Outcome{Category: r.category, Message: r.response.Message()}
	}
	return Outcome{
		Category: Failure,
		Message:  fmt.Sprintf("Undefined response which the status code is %d", code),
	}
}
