package main

import "github.com/SodiqOgundairo/condolence-backend/internal/cli"

func main() {
	cli.Execute()
}
