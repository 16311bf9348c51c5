package main

import "github.com/draftpad/draftpad-go/internal/cli"

func main() {
	cli.Execute()
}
