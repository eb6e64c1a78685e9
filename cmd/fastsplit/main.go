package main

import (
	"fastsplit/internal/app"
	"fastsplit/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
