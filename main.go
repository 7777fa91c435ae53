package main

import "github.com/Tiliavir/trivial-pomodoro-timer/cmd"

func main() {
	cmd.Execute()
}
