package main

import "github.com/nfrund/myprofile/cmd/profilectl/cmd"

func main() {
	cmd.Execute()
}
