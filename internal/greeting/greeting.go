// Package greeting holds the two greeting operations: the fixed hello line
// and the named greeter.
package greeting

import (
	"fmt"
	"io"
)

// HelloMessage is the fixed line written by HelloWorld.
const HelloMessage = "Hello from 4coder!"

// DefaultName is the name greeted by Run when nothing else is configured.
const DefaultName = "4coder"

// HelloWorld writes HelloMessage followed by a newline to w.
func HelloWorld(w io.Writer) error {
	_, err := io.WriteString(w, HelloMessage+"\n")
	return err
}

// Greeter greets a single stored name.
type Greeter struct {
	Name string
}

// New returns a Greeter for name. The name is kept verbatim; empty is fine.
func New(name string) *Greeter {
	return &Greeter{Name: name}
}

// Greet returns "Hello, <name>!".
func (g *Greeter) Greet() string {
	return "Hello, " + g.Name + "!"
}

// Run writes the hello line and then the greeting for name, one per line.
func Run(w io.Writer, name string) error {
	if err := HelloWorld(w); err != nil {
		return fmt.Errorf("hello: %w", err)
	}
	if _, err := fmt.Fprintln(w, New(name).Greet()); err != nil {
		return fmt.Errorf("greet %q: %w", name, err)
	}
	return nil
}
