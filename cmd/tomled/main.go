// Command tomled reads, edits and checks TOML files while preserving
// their formatting.
package main

func main() {
	Execute()
}
