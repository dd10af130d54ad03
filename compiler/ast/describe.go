package ast

// Describe renders an AST node as a JSON-friendly generic value: a nested
// map keyed by field name plus a "node" discriminator naming the concrete
// Go type. It exists purely for tooling (the `moonlang parse` command and
// the HTTP playground) to print a tree without hand-writing a MarshalJSON
// method on every one of the closed sum's variants.
func Describe(n Node) map[string]interface{} {
	if n == nil {
		return nil
	}

	loc := map[string]int{"line": n.Location().Line, "column": n.Location().Column}

	switch v := n.(type) {
	case *Program:
		return map[string]interface{}{"node": "Program", "statements": describeStmts(v.Statements)}

	// Expressions
	case *IntegerLit:
		return map[string]interface{}{"node": "IntegerLit", "loc": loc, "value": v.Value}
	case *FloatLit:
		return map[string]interface{}{"node": "FloatLit", "loc": loc, "value": v.Value}
	case *StringLit:
		return map[string]interface{}{"node": "StringLit", "loc": loc, "value": v.Value}
	case *BoolLit:
		return map[string]interface{}{"node": "BoolLit", "loc": loc, "value": v.Value}
	case *NullLit:
		return map[string]interface{}{"node": "NullLit", "loc": loc}
	case *Identifier:
		return map[string]interface{}{"node": "Identifier", "loc": loc, "name": v.Name}
	case *Binary:
		return map[string]interface{}{"node": "Binary", "loc": loc, "op": v.Op, "left": Describe(v.Left), "right": Describe(v.Right)}
	case *Unary:
		return map[string]interface{}{"node": "Unary", "loc": loc, "op": v.Op, "operand": Describe(v.Operand)}
	case *Call:
		return map[string]interface{}{"node": "Call", "loc": loc, "callee": Describe(v.Callee), "args": describeExprs(v.Args)}
	case *Index:
		return map[string]interface{}{"node": "Index", "loc": loc, "object": Describe(v.Object), "index": Describe(v.Index)}
	case *Member:
		return map[string]interface{}{"node": "Member", "loc": loc, "object": Describe(v.Object), "name": v.Name}
	case *List:
		return map[string]interface{}{"node": "List", "loc": loc, "elements": describeExprs(v.Elements)}
	case *Dict:
		entries := make([]map[string]interface{}, len(v.Entries))
		for i, e := range v.Entries {
			entries[i] = map[string]interface{}{"key": Describe(e.Key), "value": Describe(e.Value)}
		}
		return map[string]interface{}{"node": "Dict", "loc": loc, "entries": entries}
	case *Lambda:
		body := interface{}(nil)
		if v.IsBlockBody() {
			body = describeStmts(v.BlockBody)
		} else {
			body = Describe(v.Body)
		}
		return map[string]interface{}{"node": "Lambda", "loc": loc, "params": describeParams(v.Params), "blockBody": v.IsBlockBody(), "body": body}
	case *New:
		return map[string]interface{}{"node": "New", "loc": loc, "class": v.ClassName, "args": describeExprs(v.Args)}
	case *Self:
		return map[string]interface{}{"node": "Self", "loc": loc}
	case *Super:
		return map[string]interface{}{"node": "Super", "loc": loc, "method": v.Method, "args": describeExprs(v.Args)}
	case *ChanRecv:
		return map[string]interface{}{"node": "ChanRecv", "loc": loc, "channel": Describe(v.Channel)}

	// Statements
	case *ExprStmt:
		return map[string]interface{}{"node": "ExprStmt", "loc": loc, "expr": Describe(v.X)}
	case *Assign:
		return map[string]interface{}{"node": "Assign", "loc": loc, "target": Describe(v.Target), "value": Describe(v.Value)}
	case *If:
		elifs := make([]map[string]interface{}, len(v.Elifs))
		for i, e := range v.Elifs {
			elifs[i] = map[string]interface{}{"cond": Describe(e.Cond), "body": describeStmts(e.Body)}
		}
		return map[string]interface{}{
			"node": "If", "loc": loc,
			"cond": Describe(v.Cond), "then": describeStmts(v.Then),
			"elifs": elifs, "else": describeStmts(v.Else),
		}
	case *While:
		return map[string]interface{}{"node": "While", "loc": loc, "cond": Describe(v.Cond), "body": describeStmts(v.Body)}
	case *ForIn:
		return map[string]interface{}{"node": "ForIn", "loc": loc, "var": v.Var, "iterable": Describe(v.Iterable), "body": describeStmts(v.Body)}
	case *ForRange:
		return map[string]interface{}{"node": "ForRange", "loc": loc, "var": v.Var, "start": Describe(v.Start), "end": Describe(v.End), "body": describeStmts(v.Body)}
	case *FuncDecl:
		return map[string]interface{}{"node": "FuncDecl", "loc": loc, "name": v.Name, "exported": v.Exported, "params": describeParams(v.Params), "body": describeStmts(v.Body)}
	case *Return:
		var value interface{}
		if v.Value != nil {
			value = Describe(v.Value)
		}
		return map[string]interface{}{"node": "Return", "loc": loc, "value": value}
	case *Break:
		return map[string]interface{}{"node": "Break", "loc": loc}
	case *Continue:
		return map[string]interface{}{"node": "Continue", "loc": loc}
	case *Try:
		return map[string]interface{}{"node": "Try", "loc": loc, "tryBody": describeStmts(v.TryBody), "errVar": v.ErrVar, "catchBody": describeStmts(v.CatchBody)}
	case *Throw:
		return map[string]interface{}{"node": "Throw", "loc": loc, "value": Describe(v.Value)}
	case *Switch:
		cases := make([]map[string]interface{}, len(v.Cases))
		for i, c := range v.Cases {
			cases[i] = map[string]interface{}{"values": describeExprs(c.Values), "body": describeStmts(c.Body)}
		}
		return map[string]interface{}{"node": "Switch", "loc": loc, "value": Describe(v.Value), "cases": cases, "default": describeStmts(v.Default)}
	case *ClassDecl:
		methods := make([]map[string]interface{}, len(v.Methods))
		for i, m := range v.Methods {
			methods[i] = map[string]interface{}{"name": m.Name, "static": m.IsStatic, "params": describeParams(m.Params), "body": describeStmts(m.Body)}
		}
		return map[string]interface{}{"node": "ClassDecl", "loc": loc, "name": v.Name, "parent": v.Parent, "methods": methods}
	case *Import:
		return map[string]interface{}{"node": "Import", "loc": loc, "path": v.Path, "alias": v.Alias}
	case *FromImport:
		names := make([]map[string]string, len(v.Names))
		for i, n := range v.Names {
			names[i] = map[string]string{"name": n.Name, "alias": n.Alias}
		}
		return map[string]interface{}{"node": "FromImport", "loc": loc, "path": v.Path, "names": names}
	case *Moon:
		return map[string]interface{}{"node": "Moon", "loc": loc, "call": Describe(v.Call)}
	case *ChanSend:
		return map[string]interface{}{"node": "ChanSend", "loc": loc, "channel": Describe(v.Channel), "value": Describe(v.Value)}
	case *Global:
		return map[string]interface{}{"node": "Global", "loc": loc, "names": v.Names}

	default:
		return map[string]interface{}{"node": "Unknown"}
	}
}

func describeStmts(stmts []Stmt) []map[string]interface{} {
	out := make([]map[string]interface{}, len(stmts))
	for i, s := range stmts {
		out[i] = Describe(s)
	}
	return out
}

func describeExprs(exprs []Expr) []map[string]interface{} {
	out := make([]map[string]interface{}, len(exprs))
	for i, e := range exprs {
		out[i] = Describe(e)
	}
	return out
}

func describeParams(params []*Parameter) []map[string]interface{} {
	out := make([]map[string]interface{}, len(params))
	for i, p := range params {
		entry := map[string]interface{}{"name": p.Name}
		if p.Default != nil {
			entry["default"] = Describe(p.Default)
		}
		out[i] = entry
	}
	return out
}
