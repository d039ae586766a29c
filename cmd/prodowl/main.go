package main

import "github.com/nhle/prodowl/cmd/prodowl/root"

func main() {
	root.Execute()
}
