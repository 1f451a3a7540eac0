package main

import (
	"groovefm/cmd"
)

func main() {
	cmd.Execute()
}
