// Package ai defines the transport-free contract of the Skilled.U AI gateway:
// the request and message types, the error taxonomy, and the two pure
// functions every transport wraps.
//
// [BuildChatPayload] validates a [ChatRequest] and normalizes it into the
// wire [ChatPayload], applying the precedence rule that a non-empty Messages
// list replaces the flat message/system/user/assistant fields.
// [DecodeChatEnvelope] and [DecodeModelsEnvelope] turn a 2xx response body
// into a result or one of the typed errors in errors.go.
//
// The HTTP implementation of [Provider] lives in the gateway sub-package.
package ai
