package diag

import (
	"fmt"
)

// Code identifies one diagnostic condition. Every condition is
// recoverable: a scan never aborts because of a single bad directive,
// so there is no fatal class here.
type Code uint16

const (
	UnknownCode Code = 0

	// Language / extraction (1000-1999)
	LangInfo                Code = 1000
	LangUnsupported         Code = 1001
	LangFallback            Code = 1002
	LangUnterminatedComment Code = 1003

	// Directive parsing (2000-2999)
	DirInfo            Code = 2000
	DirSyntax          Code = 2001
	DirUnbalancedBlock Code = 2002
	DirInvalidTrust    Code = 2003
	DirUnmatchedEnd    Code = 2004

	// Scope detection (3000-3999)
	ScopeInfo    Code = 3000
	ScopeNoMatch Code = 3001

	// Region resolution (4000-4999)
	ResolveInfo    Code = 4000
	ResolveOverlap Code = 4001

	// I/O (5000-5999)
	IOLoadFileError Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LangInfo:                "Language information",
	LangUnsupported:         "Unsupported language",
	LangFallback:            "Generic comment scanning used",
	LangUnterminatedComment: "Unterminated block comment",
	DirInfo:                 "Directive information",
	DirSyntax:               "Malformed directive",
	DirUnbalancedBlock:      "Unbalanced directive block",
	DirInvalidTrust:         "Invalid trust value",
	DirUnmatchedEnd:         "Unmatched block end",
	ScopeInfo:               "Scope information",
	ScopeNoMatch:            "Scope detection failed",
	ResolveInfo:             "Resolution information",
	ResolveOverlap:          "Overlapping scopes do not nest",
	IOLoadFileError:         "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LNG%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DIR%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SCP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
