package main

import (
	"gradecalc/cmd/gradecalc/commands"
	"gradecalc/lib/serviceutil"
)

func main() {
	err := serviceutil.LoadEnv()
	if err != nil {
		serviceutil.Fatal("failed to load .env", err)
	}
	commands.ExecuteContext(serviceutil.SignalContext())
}
