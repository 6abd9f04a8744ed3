package main

import "github.com/PredicateSystems/secureclaw/cmd"

func main() {
	cmd.Execute()
}
