package main

import (
	"github.com/manifest-network/hashchain/cmd/hashchain"
)

func main() {
	hashchain.Execute()
}
