package main

import "github.com/selimozcann/PhishGuard/cmd"

func main() {
	cmd.Execute()
}
