package main

import (
	"fmt"
	"os"
)

func helper() {
	os.Exit(2)
}

func main() {
	fmt.Println("starting")
	defer func() {
		os.Exit(3)
	}()
	if len(os.Args) > 5 {
		helper()
	}
	os.Exit(1) // want `os.Exit call is forbidden in main function: os.Exit\(1\)`
}
