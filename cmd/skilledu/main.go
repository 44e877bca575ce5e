// Command skilledu is a command line client for the Skilled.U AI gateway.
//
//	skilledu models --output yaml
//	skilledu chat --system "You are helpful." --user "Who are you?"
//	skilledu demo
//
// Settings come from flags, SKILLEDU_* environment variables (a .env file in
// the working directory is loaded first) and an optional YAML config file.
package main

import _ "github.com/joho/godotenv/autoload"

func main() {
	Execute()
}
