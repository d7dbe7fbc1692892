package core

// User carries the caller-owned identity and free-form persisted attributes
// for the person behind a conversation. The orchestrator treats it as
// read-mostly context and echoes it back unchanged unless a flow explicitly
// updates it.
type User struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

// NewUser creates a user with an empty attribute map.
func NewUser(id string) User {
	return User{ID: id, Data: map[string]any{}}
}

// Clone returns a shallow-value copy with an independent attribute map.
func (u User) Clone() User {
	clone := User{ID: u.ID, Data: make(map[string]any, len(u.Data))}
	for k, v := range u.Data {
		clone.Data[k] = v
	}
	return clone
}
