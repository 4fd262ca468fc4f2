package types

import (
	"fmt"
	"strings"
)

// Label renders a type the way diagnostics spell it.
func (in *Interner) Label(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch tt.Kind {
	case KindInt:
		return fmt.Sprintf("i%d", tt.Width)
	case KindUint:
		return fmt.Sprintf("u%d", tt.Width)
	case KindIsize:
		return "isize"
	case KindUsize:
		return "usize"
	case KindFloat:
		return fmt.Sprintf("f%d", tt.Width)
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindVoid:
		return "void"
	case KindNever:
		return "Never"
	case KindUnit:
		return "()"
	case KindStruct:
		if info := in.structInfo(id); info != nil && info.Name != "" {
			return info.Name
		}
		return "<struct>"
	case KindEnum:
		if info := in.enumInfo(id); info != nil && info.Name != "" {
			return info.Name
		}
		return "<enum>"
	case KindSlice:
		if tt.Mutable {
			return "[]mut " + in.Label(tt.Elem)
		}
		return "[]" + in.Label(tt.Elem)
	case KindArray:
		return fmt.Sprintf("[%s; %d]", in.Label(tt.Elem), tt.Count)
	case KindPointer:
		return "*" + in.Label(tt.Elem)
	case KindFunction:
		info, ok := in.FunctionInfo(id)
		if !ok {
			return "fn(?)"
		}
		params := make([]string, len(info.Params))
		for i, p := range info.Params {
			params[i] = in.Label(p)
		}
		return fmt.Sprintf("fn(%s) -> %s", strings.Join(params, ", "), in.Label(info.Return))
	case KindTuple:
		info, ok := in.TupleInfo(id)
		if !ok {
			return "(?)"
		}
		elems := make([]string, len(info.Elems))
		for i, e := range info.Elems {
			elems[i] = in.Label(e)
		}
		return "(" + strings.Join(elems, ", ") + ")"
	case KindOption:
		return "Option<" + in.Label(tt.Elem) + ">"
	case KindResult:
		return fmt.Sprintf("Result<%s, %s>", in.Label(tt.Elem), in.Label(tt.Elem2))
	case KindGenericInstance:
		info, ok := in.GenericInfo(id)
		if !ok {
			return "<generic>"
		}
		args := make([]string, len(info.Args))
		for i, a := range info.Args {
			args[i] = in.Label(a)
		}
		return in.Label(info.Base) + "<" + strings.Join(args, ", ") + ">"
	case KindTypeParam:
		if info, ok := in.TypeParamInfo(id); ok && info.Name != "" {
			return info.Name
		}
		return "<type-param>"
	case KindTaskHandle:
		return "TaskHandle<" + in.Label(tt.Elem) + ">"
	default:
		return "<invalid>"
	}
}
