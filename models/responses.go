package models

// Response statuses used in the JSON envelope.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Response is the JSON envelope returned by every API endpoint.
//
// Status is "success" for 2xx responses, "fail" for operational 4xx errors
// and "error" for everything else.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`

	// Token is set by endpoints that log the user in.
	Token string `json:"token,omitempty"`

	// Results is the number of items in Data for list endpoints.
	Results *int `json:"results,omitempty"`

	Data any `json:"data,omitempty"`

	// Detail carries internal error information and is only filled in
	// development mode.
	Detail string `json:"error,omitempty"`
}

// NewListResponse wraps a slice of items into a success envelope keyed by
// name.
func NewListResponse[T any](name string, items []T) Response {
	n := len(items)
	return Response{
		Status:  StatusSuccess,
		Results: &n,
		Data:    map[string]any{name: items},
	}
}

// NewDataResponse wraps a single item into a success envelope keyed by name.
func NewDataResponse(name string, item any) Response {
	return Response{
		Status: StatusSuccess,
		Data:   map[string]any{name: item},
	}
}
