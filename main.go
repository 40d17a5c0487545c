package main

import "github.com/inovacc/kboard/cmd"

func main() {
	cmd.Execute()
}
