// Package nlu implements the classification boundary: adapters that turn raw
// user text into an intent label plus extracted entities. The shipped
// classifier prompts an OpenAI chat model with a system prompt built from a
// declarative intent model (intents, example phrases, entity types) loaded
// from YAML. The same intent model declares the intent-to-flow routing
// applied to the router at startup.
package nlu
