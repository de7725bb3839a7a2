package main

import (
	"log"

	"github.com/masar-app/recommender/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
