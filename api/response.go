package api

// mutationResponse carries the changed row and the list re-fetched after the change.
type mutationResponse[T any] struct {
	Item  *T  `json:"item,omitempty"`
	Items []T `json:"items"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
}
