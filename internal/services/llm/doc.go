// Package llm provides a chat completions client for OpenAI-compatible
// endpoints.
//
// The client sends one POST per call with a bearer token and a JSON body of
// {model, messages}. It never retries. A response without choices yields a
// *services.EmptyResponseError carrying the raw body; transport failures,
// non-2xx statuses, and undecodable payloads yield ordinary errors wrapped
// with services.ErrTransient or services.ErrExternalTool.
//
// # Entry Points
//
// NewClient: construct a client from Config.
// Client.Complete: send system/user prompts, receive the first choice content.
package llm
