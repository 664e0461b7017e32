package main

import "github.com/prosegate/prosegate/internal/cmd"

func main() {
	cmd.Execute()
}
