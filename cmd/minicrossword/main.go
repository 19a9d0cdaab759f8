package main

import (
	"context"
	"minicrossword/cmd/minicrossword/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
