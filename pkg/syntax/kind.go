package syntax

import (
	"strconv"
	"strings"
)

// Family classifies a node into one of a closed set of syntax categories.
// Detectors switch on families; the grammar-specific name lives in Kind.Variant.
type Family uint8

// Syntax families. FamilyOther covers every named grammar node the core
// does not react to.
const (
	FamilyOther Family = iota
	FamilyRoot
	FamilyEndOfFile
	FamilyComment
	FamilyToken // anonymous keywords and punctuation
	FamilyIdentifier
	FamilyExport
	FamilyImport
	FamilyFunction
	FamilyArrowFunction
	FamilyVariableStatement
	FamilyVariableDeclarator
	FamilyReturn
	FamilyMarkupElement
	FamilyMarkupSelfClosing
	FamilyMarkupOpening
	FamilyMarkupClosing
	FamilyString
	FamilyError
)

//nolint:gochecknoglobals // Read-only lookup table.
var familyNames = [...]string{
	FamilyOther:              "Other",
	FamilyRoot:               "Root",
	FamilyEndOfFile:          "EndOfFile",
	FamilyComment:            "Comment",
	FamilyToken:              "Token",
	FamilyIdentifier:         "Identifier",
	FamilyExport:             "Export",
	FamilyImport:             "Import",
	FamilyFunction:           "Function",
	FamilyArrowFunction:      "ArrowFunction",
	FamilyVariableStatement:  "VariableStatement",
	FamilyVariableDeclarator: "VariableDeclarator",
	FamilyReturn:             "Return",
	FamilyMarkupElement:      "MarkupElement",
	FamilyMarkupSelfClosing:  "MarkupSelfClosing",
	FamilyMarkupOpening:      "MarkupOpening",
	FamilyMarkupClosing:      "MarkupClosing",
	FamilyString:             "String",
	FamilyError:              "Error",
}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return "Family(" + strconv.Itoa(int(f)) + ")"
}

// Comment variants. Tree-sitter reports every comment as "comment"; the
// variant records which lexical form it took.
const (
	VariantLineComment  = "line_comment"
	VariantBlockComment = "block_comment"
	VariantDocComment   = "doc_comment"
	VariantEndOfFile    = "end_of_file"
)

// Kind is a syntax category: a family tag plus the grammar variant.
type Kind struct {
	Family  Family
	Variant string
}

// String returns the variant when set, otherwise the family name.
func (k Kind) String() string {
	if k.Variant != "" {
		return k.Variant
	}
	return k.Family.String()
}

// MarshalText renders the kind by name so records serialize as plain strings.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsDoc reports whether the kind is a detached documentation block. Its
// internal structure is opaque to the linearizer.
func (k Kind) IsDoc() bool {
	return k.Family == FamilyComment && k.Variant == VariantDocComment
}

// IsComment reports whether the kind is any comment variant.
func (k Kind) IsComment() bool {
	return k.Family == FamilyComment
}

// Match selects kinds by family and, optionally, a single variant.
// An empty Variant matches every member of the family.
type Match struct {
	Family  Family
	Variant string
}

// Is returns a Match for a whole family.
func Is(f Family) Match {
	return Match{Family: f}
}

// Matches reports whether k belongs to the selected family (and variant).
func (m Match) Matches(k Kind) bool {
	if k.Family != m.Family {
		return false
	}
	return m.Variant == "" || m.Variant == k.Variant
}

func (m Match) String() string {
	if m.Variant != "" {
		return m.Family.String() + "/" + m.Variant
	}
	return m.Family.String()
}

// namedFamilies maps named grammar node types to their family.
//
//nolint:gochecknoglobals // Read-only lookup table.
var namedFamilies = map[string]Family{
	"program":                        FamilyRoot,
	"comment":                        FamilyComment,
	"identifier":                     FamilyIdentifier,
	"export_statement":               FamilyExport,
	"import_statement":               FamilyImport,
	"function_declaration":           FamilyFunction,
	"generator_function_declaration": FamilyFunction,
	"arrow_function":                 FamilyArrowFunction,
	"lexical_declaration":            FamilyVariableStatement,
	"variable_declaration":           FamilyVariableStatement,
	"variable_declarator":            FamilyVariableDeclarator,
	"return_statement":               FamilyReturn,
	"jsx_element":                    FamilyMarkupElement,
	"jsx_self_closing_element":       FamilyMarkupSelfClosing,
	"jsx_opening_element":            FamilyMarkupOpening,
	"jsx_closing_element":            FamilyMarkupClosing,
	"string":                         FamilyString,
	"ERROR":                          FamilyError,
}

// Classify maps a grammar node type to a Kind. Anonymous nodes are tokens
// regardless of their text, since keywords such as "string" collide with
// named node types.
func Classify(nodeType string, named bool) Kind {
	if !named {
		return Kind{Family: FamilyToken, Variant: nodeType}
	}
	family, ok := namedFamilies[nodeType]
	if !ok {
		return Kind{Family: FamilyOther, Variant: nodeType}
	}
	return Kind{Family: family, Variant: nodeType}
}

// ClassifyComment picks the comment variant from the comment's source text.
func ClassifyComment(text string) Kind {
	switch {
	case strings.HasPrefix(text, "/**") && text != "/**/":
		return Kind{Family: FamilyComment, Variant: VariantDocComment}
	case strings.HasPrefix(text, "/*"):
		return Kind{Family: FamilyComment, Variant: VariantBlockComment}
	default:
		return Kind{Family: FamilyComment, Variant: VariantLineComment}
	}
}

// EndOfFileKind is the kind of the zero-width token that closes every tree.
func EndOfFileKind() Kind {
	return Kind{Family: FamilyEndOfFile, Variant: VariantEndOfFile}
}
