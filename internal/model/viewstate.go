package model

// ViewState is the main view's search text and status filter, restored on
// the next launch. It never holds alarm rows.
type ViewState struct {
	Key    string       `json:"key"`
	Search string       `json:"search"`
	Status StatusFilter `json:"status"`
}

// SetKey sets the database key for this view state.
func (v *ViewState) SetKey(key string) {
	v.Key = key
}

// GetKey returns the database key for this view state.
func (v *ViewState) GetKey() string {
	return v.Key
}

// NewViewState returns the default view: no search, all alarms.
func NewViewState() *ViewState {
	return &ViewState{
		Key:    KeyViewState,
		Status: StatusAll,
	}
}
