package api_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/whit3rabbit/jsunmixer/internal/config"
	"github.com/whit3rabbit/jsunmixer/pkg/api"
)

// Example shows basic usage of the deobfuscator library.
func Example() {
	d, err := api.NewDeobfuscator(api.Options{Silent: true})
	if err != nil {
		log.Fatalf("Failed to create deobfuscator: %v", err)
	}

	code, err := d.DeobfuscateCode("function f(x){ console.log((y = x+1), y); }")
	if err != nil {
		log.Fatalf("Failed to deobfuscate code: %v", err)
	}
	fmt.Println(code)

	// Output:
	// function f(x) {
	//   y = x + 1;
	//   console.log(y, y);
	// }
}

// ExampleDeobfuscator_DeobfuscateFileToFile reads a script and writes the
// cleaned version next to it.
func ExampleDeobfuscator_DeobfuscateFileToFile() {
	prev := config.Testing
	config.Testing = true
	defer func() { config.Testing = prev }()

	dir, err := os.MkdirTemp("", "deobfuscator-example-*")
	if err != nil {
		log.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "input.js")
	if err := os.WriteFile(input, []byte("function g(){ } var h = g(); g(a=1,b=2);"), 0644); err != nil {
		log.Fatalf("Failed to write input: %v", err)
	}

	d, err := api.NewDeobfuscator(api.Options{Silent: true})
	if err != nil {
		log.Fatalf("Failed to create deobfuscator: %v", err)
	}
	output := filepath.Join(dir, "clean.js")
	if err := d.DeobfuscateFileToFile(input, output); err != nil {
		log.Fatalf("Failed to deobfuscate file: %v", err)
	}

	content, _ := os.ReadFile(output)
	fmt.Print(string(content))

	// Output:
	// function g() {}
	// var h = g();
	// param1 = a = 1;
	// param2 = b = 2;
}

// ExampleNewDeobfuscator_rules restricts the pipeline to a chosen set of rules.
func ExampleNewDeobfuscator_rules() {
	d, err := api.NewDeobfuscator(api.Options{
		Silent: true,
		Rules:  []string{"strip-param-defaults"},
	})
	if err != nil {
		log.Fatalf("Failed to create deobfuscator: %v", err)
	}

	for _, r := range d.AvailableRules() {
		fmt.Printf("%-32s %v\n", r.Name, r.Enabled)
	}

	// Output:
	// strip-param-defaults             true
	// unwrap-marker-calls              false
	// inline-empty-callees             false
	// hoist-call-assignments           false
	// eliminate-pure-assignment-calls  false
	// strip-declarations               false
}
