package main

import (
	"github.com/hackforge/policy-chatbot-be/cmd"
	"github.com/joho/godotenv"
)

func main() {
	cmd.Execute()
}

func init() {
	// .env is optional; all settings can come from config.yaml or the
	// environment directly.
	_ = godotenv.Load()
}
