package main

import (
	"github.com/dafibh/gofinance/gofinance-backend/internal/cli"
)

func main() {
	cli.Execute()
}
