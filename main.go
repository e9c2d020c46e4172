package main

import "taskboard.com/taskboard/cmd"

func main() {
	cmd.Execute()
}
