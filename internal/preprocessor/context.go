package preprocessor

import (
	"github.com/cprep/cprep/internal/cpptoken"
	"github.com/cprep/cprep/internal/cursor"
	"github.com/cprep/cprep/internal/definitions"
	"github.com/cprep/cprep/internal/includes"
)

// Context holds everything shared between D, E and F across one
// preprocessing run, in the shape of this codebase's ancestry's
// PipelineContext: the state every stage reads or writes, with no global
// variables anywhere in the package. A Context is not safe for concurrent
// use by multiple goroutines.
type Context struct {
	Cursor   *cursor.Cursor
	Defs     *definitions.Table
	Includes *includes.Registry
	Host     Host
	Output   []cpptoken.Token
}

// NewContext builds a Context ready to preprocess tokens. defs and includes
// may be nil, in which case fresh empty tables are created; host defaults
// to a StderrHost.
func NewContext(tokens []cpptoken.Token, defs *definitions.Table, reg *includes.Registry, host Host) *Context {
	if defs == nil {
		defs = definitions.NewTable()
	}
	if reg == nil {
		reg = includes.NewRegistry()
	}
	if host == nil {
		host = NewStderrHost()
	}
	return &Context{
		Cursor:   cursor.New(tokens),
		Defs:     defs,
		Includes: reg,
		Host:     host,
	}
}

// emit appends tok to the output token vector.
func (ctx *Context) emit(tok cpptoken.Token) {
	ctx.Output = append(ctx.Output, tok)
}
