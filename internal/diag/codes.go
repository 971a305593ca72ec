package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// script syntax
	ScrInfo           Code = 1000
	ScrUnknownCommand Code = 1001
	ScrArgCount       Code = 1002
	ScrBadNumber      Code = 1003
	ScrBadFlag        Code = 1004
	ScrUnterminated   Code = 1005

	// table operations
	TblInfo         Code = 2000
	TblNameTooLong  Code = 2001
	TblTypeTooLong  Code = 2002
	TblValueTooLong Code = 2003
	TblInvalidValue Code = 2004
	TblInvalidName  Code = 2005
	TblInvalidScope Code = 2006
	TblAllocation   Code = 2007
	TblDuplicate    Code = 2008
	TblShadow       Code = 2009

	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:       "Unknown error",
	ScrInfo:           "Script information",
	ScrUnknownCommand: "Unknown command",
	ScrArgCount:       "Wrong number of arguments",
	ScrBadNumber:      "Malformed number",
	ScrBadFlag:        "Unknown flag",
	ScrUnterminated:   "Unterminated quote or bracket",
	TblInfo:           "Table information",
	TblNameTooLong:    "Name too long",
	TblTypeTooLong:    "Type too long",
	TblValueTooLong:   "Value too long",
	TblInvalidValue:   "Invalid value format",
	TblInvalidName:    "Invalid name",
	TblInvalidScope:   "Invalid scope level",
	TblAllocation:     "Table allocation failed",
	TblDuplicate:      "Duplicate declaration in scope",
	TblShadow:         "Declaration shadows outer binding",
	IOLoadFileError:   "Failed to load file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SCR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("TBL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
