package main

import "github.com/kavitarao/studyhall/cmd"

func main() {
	cmd.Execute()
}
