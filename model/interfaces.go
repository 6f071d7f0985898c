package model

// ResponseBody is a JSON-shaped response payload under construction
type ResponseBody map[string]interface{}

// ResponseBodyCreator is an interface for data that can convert itself
// into a JSON response body
type ResponseBodyCreator interface {
	ResponseBody() (ResponseBody, error)
}

// ResponseMixin is an interface for data that can be used to augment an
// existing response body
type ResponseMixin interface {
	Apply(ResponseBody) error
}
