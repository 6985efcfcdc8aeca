package main

import "github.com/isdelr/auction-lab/cmd"

func main() {
	cmd.Execute()
}
