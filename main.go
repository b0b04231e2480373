package main

import "github.com/dataqc/dataqc/cmd"

func main() {
	cmd.Execute()
}
