// Command crudable inspects the entity declarations of the config domain.
package main

import "github.com/mesh-intelligence/crudable/internal/cli"

func main() {
	cli.Execute()
}
