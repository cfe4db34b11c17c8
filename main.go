package main

import "github.com/EO-DataHub/eodhp-admin-console/cmd"

func main() {
	cmd.Execute()
}
