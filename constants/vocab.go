package constants

// BrandPrefixes mark a heading line as a product name. Matched
// case-insensitively at the start of a line.
var BrandPrefixes = []string{
	"valvoline",
}

// ApprovalTokens are standards-body and OEM abbreviations. A candidate line
// qualifies as an approval/specification claim only if it contains at least
// one of these as a whole word.
var ApprovalTokens = []string{
	"API", "ACEA", "ILSAC", "JASO",
	"VW", "MB", "BMW", "FORD", "GM", "DEXOS",
	"PSA", "FIAT", "RENAULT", "VOLVO", "MAN", "CUMMINS", "ALLISON",
}

// PropertyNames is the vocabulary of typical-property labels the table
// parser recognizes at the start of a line. Longer labels come before their
// prefixes so alternation picks the most specific one.
var PropertyNames = []string{
	"viscosity index",
	"viscosity",
	"total base number",
	"tbn",
	"pour point",
	"flash point",
	"density",
	"specific gravity",
	"colour",
	"color",
	"sulphated ash",
	"sulfated ash",
	"noack",
	"cold cranking",
	"hths",
}

// TestMethodBodies are the standards bodies recognized in test-method
// designations such as "ASTM D-445" or "ISO 3104".
var TestMethodBodies = []string{
	"ASTM", "DIN", "EN", "ISO", "IP", "JIS",
}
