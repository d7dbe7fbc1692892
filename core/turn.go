package core

// TurnResult is the single atomic artifact produced by one orchestration
// call: the assistant reply, the classified intent, and the new session and
// user values the caller either fully persists or discards. No partial
// session update is ever returned.
type TurnResult struct {
	Reply   Message `json:"reply"`
	Intent  string  `json:"intent"`
	Session Session `json:"session"`
	User    User    `json:"user"`
}
