/*
JavaScript Deobfuscator (Entry Point)

This tool reads an obfuscated JavaScript file, undoes a known family of
obfuscation idioms (assignments hidden in call arguments, meaningless
parameter defaults, dispatcher marker calls and empty placeholder functions)
and writes readable JavaScript.
*/
package main

import (
	"github.com/whit3rabbit/jsunmixer/cmd/go-js-deobfuscator/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
