package main

import "github.com/ChrisBushman/tiger-claude/cmd"

func main() {
	cmd.Execute()
}
