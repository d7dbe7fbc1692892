// Package genai implements the generation boundary: adapters that turn a
// system instruction plus conversation history into the assistant's reply
// text. OpenAI and Anthropic backed generators are provided; both are
// interchangeable behind core.Generator.
package genai
