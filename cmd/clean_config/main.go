package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/phravins/gptflow/internal/config"
)

// Points gptflow back at the hosted generator after local experiments.
func main() {
	path := pflag.String("config", "", "config file (default ~/.gptflow.yaml)")
	pflag.Parse()

	if _, err := config.LoadConfigFile(*path); err != nil {
		fmt.Printf("Error reading config: %v\n", err)
		return
	}
	config.Set("endpoint_url", config.DefaultEndpointURL)
	config.Set("generator_backend", "remote")

	if err := config.Write(); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
	} else {
		fmt.Println("Successfully reset endpoint_url and generator_backend")
	}
}
