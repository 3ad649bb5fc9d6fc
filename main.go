package main

import "github.com/user/countdown-timer-cli/cmd"

func main() {
	cmd.Execute()
}
