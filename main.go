package main

import "github.com/Tiliavir/focuslog/cmd"

func main() {
	cmd.Execute()
}
