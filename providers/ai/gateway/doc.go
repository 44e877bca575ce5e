// Package gateway implements [ai.Provider] over HTTP for the Skilled.U AI
// gateway (ai_gateway.php).
//
// A [Client] is bound to one base URL at construction and is safe for
// concurrent use. Every call is a single request bounded by its own deadline:
//
//	c, err := gateway.New("https://api.skilledu.in/api/ai_gateway.php")
//	models, err := c.ListModels(ctx, 0)
//	reply, err := c.Chat(ctx, ai.ChatRequest{Message: "Hello!"})
//
// Errors follow the taxonomy in package ai: invalid input, non-2xx status,
// malformed body, gateway-reported failure, timeout and network failure.
package gateway
