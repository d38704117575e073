package main

import "ttab/cmd"

func main() {
	cmd.Execute()
}
