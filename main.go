package main

import "github.com/tabletools/tablepad/cmd"

func main() {
	cmd.Execute()
}
