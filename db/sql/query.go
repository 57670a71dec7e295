package sql

import (
	"fmt"
	"strings"
)

type (
	// Command is a db Query of parameterized SQL.
	Command struct {
		cmd       string
		arguments []interface{}
	}

	// QueryFunction is a db Query that reads data by calling a SQL function.
	QueryFunction struct {
		name      string
		cols      []string
		arguments []interface{}
	}

	// ExecFunction is a db Query that changes data by calling a SQL function.
	// Each ExecFunction must update exactly one row.
	ExecFunction struct {
		name      string
		arguments []interface{}
	}

	// RawQuery is a db Query that changes data and has no arguments.
	RawQuery string
)

// NewCommand creates a Query of parameterized SQL.
func NewCommand(cmd string, args ...interface{}) Command {
	c := Command{
		cmd:       cmd,
		arguments: args,
	}
	return c
}

// NewQueryFunction creates a Query to call a query function.
func NewQueryFunction(name string, cols []string, args ...interface{}) QueryFunction {
	q := QueryFunction{
		name:      name,
		cols:      cols,
		arguments: args,
	}
	return q
}

// NewExecFunction creates a Query to call an exec function.
func NewExecFunction(name string, args ...interface{}) ExecFunction {
	e := ExecFunction{
		name:      name,
		arguments: args,
	}
	return e
}

// Cmd returns the parameterized SQL.
func (c Command) Cmd() string {
	return c.cmd
}

// Cmd returns a SQL string to execute the function with arguments.
func (q QueryFunction) Cmd() string {
	argIndexes := make([]string, len(q.arguments))
	for i := range argIndexes {
		argIndexes[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("SELECT %s FROM %s(%s)", strings.Join(q.cols, ", "), q.name, strings.Join(argIndexes, ", "))
}

// Cmd returns a SQL string to execute the function with arguments.
func (e ExecFunction) Cmd() string {
	argIndexes := make([]string, len(e.arguments))
	for i := range argIndexes {
		argIndexes[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("SELECT %s(%s)", e.name, strings.Join(argIndexes, ", "))
}

// Cmd returns the raw SQL query.
func (r RawQuery) Cmd() string {
	return string(r)
}

// Args returns the arguments for the command.
func (c Command) Args() []interface{} {
	return c.arguments
}

// Args returns the arguments for the query function.
func (q QueryFunction) Args() []interface{} {
	return q.arguments
}

// Args returns the arguments for the exec function.
func (e ExecFunction) Args() []interface{} {
	return e.arguments
}

// Args returns nil for the raw SQL query.
func (RawQuery) Args() []interface{} {
	return nil
}
