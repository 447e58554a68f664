package main

import "github.com/mattmelloy/simplecalorie/cmd/simplecalorie"

func main() {
	simplecalorie.Execute()
}
