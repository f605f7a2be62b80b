package endpoint

// Task selects how parameters are encoded into a request. The set of variants
// is closed: Plain, TypedBody, Params and ParamsWithHeaders.
type Task interface {
	task()
}

// Plain sends no parameters.
type Plain struct{}

// TypedBody encodes Body as JSON using its own marshalling, then applies
// Query when non-nil and merges Headers over the static headers.
type TypedBody struct {
	Body    any
	Query   Parameters
	Headers Header
}

// Params encodes each present member of the parameter set.
type Params struct {
	Parameters ParameterSet
}

// ParamsWithHeaders is Params followed by an extra header merge.
type ParamsWithHeaders struct {
	Parameters ParameterSet
	Headers    Header
}

func (Plain) task()             {}
func (TypedBody) task()         {}
func (Params) task()            {}
func (ParamsWithHeaders) task() {}

// ParameterSet holds the optional parameter maps of a request, one per
// encoding. A nil member is absent. When both JSON and Form are present the
// JSON body replaces the form body; Query is always applied independently.
type ParameterSet struct {
	JSON  Parameters
	Query Parameters
	Form  Parameters
}

// Empty reports whether no member is present.
func (s ParameterSet) Empty() bool {
	return s.JSON == nil && s.Query == nil && s.Form == nil
}
