package main

import "github.com/edenhq/meeting-api/cmd"

func main() {
	cmd.Execute()
}
