package main

import (
	"log"
)

func main() {
	err := NewApp(parseArgs()).Run()
	if err != nil {
		log.Fatal(err)
	}
}
