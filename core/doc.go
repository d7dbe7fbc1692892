// Package core contains the domain types and contracts shared by every other
// povo package: messages, users, sessions with flow-scoped slot state, the
// classification result produced by the NLU boundary, and the Classifier /
// Generator / SessionStore interfaces that external collaborators implement.
//
// Centralizing the contracts here keeps higher level packages (router, flow,
// orchestrator) free of dependencies on concrete providers or storage.
package core
