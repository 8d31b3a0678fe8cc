package main

import "github.com/emstudio/emsync/cmd"

func main() {
	cmd.Execute()
}
