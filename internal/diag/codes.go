package diag

import "fmt"

// Code identifies a diagnostic category. Semantic codes live in the 3xxx
// range; 1xxx/2xxx are reserved for the external lexer and parser tools so
// their diagnostics can share the same rendering pipeline.
type Code uint16

const (
	UnknownCode Code = 0

	// Semantic analysis (3000-)
	SemaInfo                Code = 3000
	SemaInternal            Code = 3001
	SemaInvalidExpression   Code = 3002
	SemaTypeMismatch        Code = 3003
	SemaTypeInferenceFailed Code = 3004
	SemaInvalidType         Code = 3005
	SemaUndeclaredName      Code = 3006
	SemaRedeclaration       Code = 3007
	SemaImmutableAssign     Code = 3008
	SemaVisibility          Code = 3009
	SemaMissingAnnotation   Code = 3010
	SemaArityMismatch       Code = 3011
	SemaFFIIncompatible     Code = 3012
	SemaUnsupportedDecl     Code = 3013
	SemaUnsupportedStmt     Code = 3014
	SemaUnsupportedExpr     Code = 3015
	SemaInvalidBinaryOp     Code = 3016
	SemaInvalidUnaryOp      Code = 3017
	SemaInvalidCast         Code = 3018
	SemaInvalidLiteral      Code = 3019
	SemaConstNotConstant    Code = 3020
	SemaConstCycle          Code = 3021
	SemaConstOverflow       Code = 3022
	SemaInvalidArraySize    Code = 3023
	SemaUnknownField        Code = 3024
	SemaDuplicateField      Code = 3025
	SemaMissingField        Code = 3026
	SemaUnknownVariant      Code = 3027
	SemaNotCallable         Code = 3028
	SemaNotIndexable        Code = 3029
	SemaBreakOutsideLoop    Code = 3030
	SemaMissingReturn       Code = 3031
	SemaUnsafeRequired      Code = 3032
	SemaMixedSignedness     Code = 3033
	SemaShadowedName        Code = 3034
	SemaUnusedSymbol        Code = 3035
	SemaInvalidPattern      Code = 3036
	SemaAwaitNotHandle      Code = 3037
	SemaModuleNotFound      Code = 3038
	SemaCharNeedsContext    Code = 3039
	SemaTupleArity          Code = 3040
	SemaGenericArity        Code = 3041

	// Driver and tooling (9000-)
	IOLoadFile Code = 9001
	ObsTimings Code = 9002
)

var codeLabels = map[Code]string{
	UnknownCode:             "unknown",
	SemaInfo:                "info",
	SemaInternal:            "internal",
	SemaInvalidExpression:   "invalid-expression",
	SemaTypeMismatch:        "type-mismatch",
	SemaTypeInferenceFailed: "type-inference-failed",
	SemaInvalidType:         "invalid-type",
	SemaUndeclaredName:      "undeclared-identifier",
	SemaRedeclaration:       "redeclaration",
	SemaImmutableAssign:     "immutability-violation",
	SemaVisibility:          "visibility-violation",
	SemaMissingAnnotation:   "missing-annotation",
	SemaArityMismatch:       "arity-mismatch",
	SemaFFIIncompatible:     "ffi-incompatible-type",
	SemaUnsupportedDecl:     "unsupported-declaration",
	SemaUnsupportedStmt:     "unsupported-statement",
	SemaUnsupportedExpr:     "unsupported-expression",
	SemaInvalidBinaryOp:     "invalid-binary-operands",
	SemaInvalidUnaryOp:      "invalid-unary-operand",
	SemaInvalidCast:         "invalid-cast",
	SemaInvalidLiteral:      "invalid-literal",
	SemaConstNotConstant:    "const-not-constant",
	SemaConstCycle:          "const-cycle",
	SemaConstOverflow:       "const-overflow",
	SemaInvalidArraySize:    "invalid-array-size",
	SemaUnknownField:        "unknown-field",
	SemaDuplicateField:      "duplicate-field",
	SemaMissingField:        "missing-field",
	SemaUnknownVariant:      "unknown-variant",
	SemaNotCallable:         "not-callable",
	SemaNotIndexable:        "not-indexable",
	SemaBreakOutsideLoop:    "break-outside-loop",
	SemaMissingReturn:       "missing-return",
	SemaUnsafeRequired:      "unsafe-required",
	SemaMixedSignedness:     "mixed-signedness",
	SemaShadowedName:        "shadowed-name",
	SemaUnusedSymbol:        "unused-symbol",
	SemaInvalidPattern:      "invalid-pattern",
	SemaAwaitNotHandle:      "await-not-handle",
	SemaModuleNotFound:      "module-not-found",
	SemaCharNeedsContext:    "char-needs-context",
	SemaTupleArity:          "tuple-arity",
	SemaGenericArity:        "generic-arity",
	IOLoadFile:              "io-load-file",
	ObsTimings:              "timings",
}

func (c Code) String() string {
	if label, ok := codeLabels[c]; ok {
		return fmt.Sprintf("VG%04d(%s)", uint16(c), label)
	}
	return fmt.Sprintf("VG%04d", uint16(c))
}

// ID returns the bare machine-readable identifier, e.g. "VG3003".
func (c Code) ID() string {
	return fmt.Sprintf("VG%04d", uint16(c))
}

// Label returns the short taxonomy name without the numeric prefix.
func (c Code) Label() string {
	if label, ok := codeLabels[c]; ok {
		return label
	}
	return "unknown"
}
