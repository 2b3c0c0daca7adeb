package main

import (
	"log"

	"github.com/rubenv/countryraster/cmd"
)

func main() {
	err := cmd.Run()
	if err != nil {
		log.Fatal(err.Error())
	}
}
