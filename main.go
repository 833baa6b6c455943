package main

import "github.com/emrgen/article/cmd"

func main() {
	cmd.Execute()
}
