package main

import "github.com/KaramelBytes/datavis-cli/cmd"

func main() {
	cmd.Execute()
}
