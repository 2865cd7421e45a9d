// Command mallocsh is a small host harness for package alloc: it replays a
// text trace of allocate/free/reallocate operations against a Heap and
// reports statistics.
package main

import "os"

func main() {
	if err := execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}
