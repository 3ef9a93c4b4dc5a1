package main

import "github.com/KaramelBytes/uniqcols/cmd"

func main() {
	cmd.Execute()
}
