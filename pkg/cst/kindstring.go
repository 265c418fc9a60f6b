package cst

var kindNames = map[NodeKind]string{
	KindDocument:      "KindDocument",
	KindParagraph:     "KindParagraph",
	KindHeading:       "KindHeading",
	KindFencedCode:    "KindFencedCode",
	KindIndentedCode:  "KindIndentedCode",
	KindThematicBreak: "KindThematicBreak",
	KindBlockQuote:    "KindBlockQuote",
	KindList:          "KindList",
	KindListItem:      "KindListItem",
	KindHTMLBlock:     "KindHTMLBlock",
	KindLinkRefDef:    "KindLinkRefDef",
	KindTable:         "KindTable",
	KindTableRow:      "KindTableRow",
	KindTableCell:     "KindTableCell",
	KindFootnoteDef:   "KindFootnoteDef",
	KindBlankLines:    "KindBlankLines",
	KindText:          "KindText",
	KindSoftBreak:     "KindSoftBreak",
	KindHardBreak:     "KindHardBreak",
	KindCodeSpan:      "KindCodeSpan",
	KindEmphasis:      "KindEmphasis",
	KindStrong:        "KindStrong",
	KindStrikethrough: "KindStrikethrough",
	KindLink:          "KindLink",
	KindImage:         "KindImage",
	KindRefLink:       "KindRefLink",
	KindRefImage:      "KindRefImage",
	KindAutolink:      "KindAutolink",
	KindHTMLInline:    "KindHTMLInline",
	KindFootnoteRef:   "KindFootnoteRef",
}

// String returns the kind's constant name.
func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "KindUnknown"
}
