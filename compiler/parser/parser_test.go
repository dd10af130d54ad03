package parser

import (
	"testing"

	"github.com/parhelia512/moonlang-sub000/compiler/ast"
	"github.com/parhelia512/moonlang-sub000/compiler/lexer"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	tokens, err := lexer.New(source).Tokenize()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := New(tokens).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return prog
}

func mustParseErr(t *testing.T, source string) error {
	t.Helper()
	tokens, err := lexer.New(source).Tokenize()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	_, err = New(tokens).Parse()
	if err == nil {
		t.Fatalf("expected parse error, got none")
	}
	return err
}

func singleStmt(t *testing.T, prog *ast.Program) ast.Stmt {
	t.Helper()
	if len(prog.Statements) != 1 {
		t.Fatalf("expected exactly 1 statement, got %d", len(prog.Statements))
	}
	return prog.Statements[0]
}

func TestIfElifElse(t *testing.T) {
	prog := mustParse(t, `
if x > 0:
  y = 1
elif x < 0:
  y = -1
else:
  y = 0
end
`)
	stmt := singleStmt(t, prog)
	ifStmt, ok := stmt.(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", stmt)
	}
	if len(ifStmt.Then) != 1 {
		t.Fatalf("expected 1 then stmt, got %d", len(ifStmt.Then))
	}
	if len(ifStmt.Elifs) != 1 {
		t.Fatalf("expected 1 elif, got %d", len(ifStmt.Elifs))
	}
	if len(ifStmt.Else) != 1 {
		t.Fatalf("expected 1 else stmt, got %d", len(ifStmt.Else))
	}
}

func TestIfBraceStyle(t *testing.T) {
	prog := mustParse(t, `
if x > 0 {
  y = 1
} else {
  y = 0
}
`)
	stmt := singleStmt(t, prog)
	if _, ok := stmt.(*ast.If); !ok {
		t.Fatalf("expected *ast.If, got %T", stmt)
	}
}

func TestMixedBlockStylesRejected(t *testing.T) {
	err := mustParseErr(t, `
if x > 0:
  y = 1
end
if y > 0 {
  z = 1
}
`)
	if _, ok := err.(ParseError); !ok {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
}

func TestWhile(t *testing.T) {
	prog := mustParse(t, `
while x < 10:
  x += 1
end
`)
	stmt := singleStmt(t, prog)
	w, ok := stmt.(*ast.While)
	if !ok {
		t.Fatalf("expected *ast.While, got %T", stmt)
	}
	if len(w.Body) != 1 {
		t.Fatalf("expected 1 body stmt, got %d", len(w.Body))
	}
}

func TestForIn(t *testing.T) {
	prog := mustParse(t, `
for item in items:
  total += item
end
`)
	stmt := singleStmt(t, prog)
	f, ok := stmt.(*ast.ForIn)
	if !ok {
		t.Fatalf("expected *ast.ForIn, got %T", stmt)
	}
	if f.Var != "item" {
		t.Fatalf("expected var 'item', got %q", f.Var)
	}
}

func TestForRange(t *testing.T) {
	prog := mustParse(t, `
for i = 0 to 10:
  total += i
end
`)
	stmt := singleStmt(t, prog)
	f, ok := stmt.(*ast.ForRange)
	if !ok {
		t.Fatalf("expected *ast.ForRange, got %T", stmt)
	}
	if f.Var != "i" {
		t.Fatalf("expected var 'i', got %q", f.Var)
	}
	if _, ok := f.Start.(*ast.IntegerLit); !ok {
		t.Fatalf("expected start to be IntegerLit, got %T", f.Start)
	}
	if _, ok := f.End.(*ast.IntegerLit); !ok {
		t.Fatalf("expected end to be IntegerLit, got %T", f.End)
	}
}

func TestFuncDecl(t *testing.T) {
	prog := mustParse(t, `
func add(a, b):
  return a + b
end
`)
	stmt := singleStmt(t, prog)
	fn, ok := stmt.(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected *ast.FuncDecl, got %T", stmt)
	}
	if fn.Name != "add" {
		t.Fatalf("expected name 'add', got %q", fn.Name)
	}
	if fn.Exported {
		t.Fatalf("expected not exported")
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
}

func TestExportFuncAndFunctionKeyword(t *testing.T) {
	prog := mustParse(t, `
export function greet(name):
  return "hi " + name
end
`)
	stmt := singleStmt(t, prog)
	fn, ok := stmt.(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected *ast.FuncDecl, got %T", stmt)
	}
	if !fn.Exported {
		t.Fatalf("expected exported")
	}
}

func TestParamDefaults(t *testing.T) {
	prog := mustParse(t, `
func greet(name, greeting = "hi"):
  return greeting + name
end
`)
	fn := singleStmt(t, prog).(*ast.FuncDecl)
	if fn.Params[0].Default != nil {
		t.Fatalf("expected first param to have no default")
	}
	if fn.Params[1].Default == nil {
		t.Fatalf("expected second param to have a default")
	}
}

func TestParamDefaultOrderingViolation(t *testing.T) {
	mustParseErr(t, `
func bad(a = 1, b)
end
`)
}

func TestReturnBareAndValue(t *testing.T) {
	prog := mustParse(t, `
func noop():
  return
end
`)
	fn := singleStmt(t, prog).(*ast.FuncDecl)
	ret, ok := fn.Body[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected *ast.Return, got %T", fn.Body[0])
	}
	if ret.Value != nil {
		t.Fatalf("expected nil value on bare return")
	}

	prog2 := mustParse(t, `
func one():
  return 1
end
`)
	fn2 := prog2.Statements[0].(*ast.FuncDecl)
	ret2 := fn2.Body[0].(*ast.Return)
	if ret2.Value == nil {
		t.Fatalf("expected non-nil value")
	}
}

func TestBreakContinue(t *testing.T) {
	prog := mustParse(t, `
while true:
  if x:
    break
  end
  continue
end
`)
	w := singleStmt(t, prog).(*ast.While)
	if _, ok := w.Body[0].(*ast.If); !ok {
		t.Fatalf("expected If first, got %T", w.Body[0])
	}
	if _, ok := w.Body[1].(*ast.Continue); !ok {
		t.Fatalf("expected Continue second, got %T", w.Body[1])
	}
}

func TestTryCatch(t *testing.T) {
	prog := mustParse(t, `
try:
  risky()
catch err:
  throw err
end
`)
	tr, ok := singleStmt(t, prog).(*ast.Try)
	if !ok {
		t.Fatalf("expected *ast.Try, got %T", singleStmt(t, prog))
	}
	if tr.ErrVar != "err" {
		t.Fatalf("expected err var 'err', got %q", tr.ErrVar)
	}
	if len(tr.CatchBody) != 1 {
		t.Fatalf("expected 1 catch stmt, got %d", len(tr.CatchBody))
	}
	if _, ok := tr.CatchBody[0].(*ast.Throw); !ok {
		t.Fatalf("expected Throw in catch body, got %T", tr.CatchBody[0])
	}
}

func TestSwitchCaseDefault(t *testing.T) {
	prog := mustParse(t, `
switch x:
case 1, 2:
  y = "low"
case 3:
  y = "mid"
default:
  y = "high"
end
`)
	sw, ok := singleStmt(t, prog).(*ast.Switch)
	if !ok {
		t.Fatalf("expected *ast.Switch, got %T", singleStmt(t, prog))
	}
	if len(sw.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(sw.Cases))
	}
	if len(sw.Cases[0].Values) != 2 {
		t.Fatalf("expected 2 values in first case, got %d", len(sw.Cases[0].Values))
	}
	if sw.Default == nil {
		t.Fatalf("expected a default clause")
	}
}

func TestSwitchIgnoresCommittedBraceStyle(t *testing.T) {
	prog := mustParse(t, `
if x {
  y = 1
}
switch x:
case 1:
  y = 2
end
`)
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	if _, ok := prog.Statements[1].(*ast.Switch); !ok {
		t.Fatalf("expected second statement to be *ast.Switch, got %T", prog.Statements[1])
	}
}

func TestClassExtendsAndStaticMethods(t *testing.T) {
	prog := mustParse(t, `
class Dog extends Animal:
  static func create(name):
    return new Dog(name)
  end

  func bark():
    return "woof"
  end
end
`)
	cls, ok := singleStmt(t, prog).(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected *ast.ClassDecl, got %T", singleStmt(t, prog))
	}
	if cls.Name != "Dog" {
		t.Fatalf("expected name 'Dog', got %q", cls.Name)
	}
	if cls.Parent != "Animal" {
		t.Fatalf("expected parent 'Animal', got %q", cls.Parent)
	}
	if len(cls.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(cls.Methods))
	}
	if !cls.Methods[0].IsStatic {
		t.Fatalf("expected first method static")
	}
	if cls.Methods[1].IsStatic {
		t.Fatalf("expected second method not static")
	}
}

func TestClassWithoutExtends(t *testing.T) {
	prog := mustParse(t, `
class Animal:
  func speak():
    return ""
  end
end
`)
	cls := singleStmt(t, prog).(*ast.ClassDecl)
	if cls.Parent != "" {
		t.Fatalf("expected empty parent, got %q", cls.Parent)
	}
}

func TestImportPlain(t *testing.T) {
	prog := mustParse(t, `import strings as str`)
	imp, ok := singleStmt(t, prog).(*ast.Import)
	if !ok {
		t.Fatalf("expected *ast.Import, got %T", singleStmt(t, prog))
	}
	if imp.Path != "strings" {
		t.Fatalf("expected path 'strings', got %q", imp.Path)
	}
	if imp.Alias != "str" {
		t.Fatalf("expected alias 'str', got %q", imp.Alias)
	}
}

func TestImportDottedPath(t *testing.T) {
	prog := mustParse(t, `import net.http`)
	imp := singleStmt(t, prog).(*ast.Import)
	if imp.Path != "net.http" {
		t.Fatalf("expected path 'net.http', got %q", imp.Path)
	}
}

func TestFromImport(t *testing.T) {
	prog := mustParse(t, `from strings import join as j, split`)
	fi, ok := singleStmt(t, prog).(*ast.FromImport)
	if !ok {
		t.Fatalf("expected *ast.FromImport, got %T", singleStmt(t, prog))
	}
	if fi.Path != "strings" {
		t.Fatalf("expected path 'strings', got %q", fi.Path)
	}
	if len(fi.Names) != 2 {
		t.Fatalf("expected 2 names, got %d", len(fi.Names))
	}
	if fi.Names[0].Name != "join" || fi.Names[0].Alias != "j" {
		t.Fatalf("unexpected first name: %+v", fi.Names[0])
	}
	if fi.Names[1].Name != "split" || fi.Names[1].Alias != "" {
		t.Fatalf("unexpected second name: %+v", fi.Names[1])
	}
}

func TestMoonWrapsBareCall(t *testing.T) {
	prog := mustParse(t, `moon fetch_data()`)
	m, ok := singleStmt(t, prog).(*ast.Moon)
	if !ok {
		t.Fatalf("expected *ast.Moon, got %T", singleStmt(t, prog))
	}
	if m.Call == nil {
		t.Fatalf("expected non-nil call")
	}
}

func TestMoonWrapsBareLambdaIntoZeroArgCall(t *testing.T) {
	prog := mustParse(t, `moon () => do_thing()`)
	m, ok := singleStmt(t, prog).(*ast.Moon)
	if !ok {
		t.Fatalf("expected *ast.Moon, got %T", singleStmt(t, prog))
	}
	if _, ok := m.Call.Callee.(*ast.Lambda); !ok {
		t.Fatalf("expected call callee to be *ast.Lambda, got %T", m.Call.Callee)
	}
	if len(m.Call.Args) != 0 {
		t.Fatalf("expected zero args, got %d", len(m.Call.Args))
	}
}

func TestGlobal(t *testing.T) {
	prog := mustParse(t, `global counter, total`)
	g, ok := singleStmt(t, prog).(*ast.Global)
	if !ok {
		t.Fatalf("expected *ast.Global, got %T", singleStmt(t, prog))
	}
	if len(g.Names) != 2 || g.Names[0] != "counter" || g.Names[1] != "total" {
		t.Fatalf("unexpected names: %v", g.Names)
	}
}

func TestAssign(t *testing.T) {
	prog := mustParse(t, `x = 1`)
	a, ok := singleStmt(t, prog).(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", singleStmt(t, prog))
	}
	if _, ok := a.Target.(*ast.Identifier); !ok {
		t.Fatalf("expected identifier target, got %T", a.Target)
	}
}

func TestCompoundAssignDesugarsAndClonesTarget(t *testing.T) {
	prog := mustParse(t, `total += 1`)
	a, ok := singleStmt(t, prog).(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", singleStmt(t, prog))
	}
	bin, ok := a.Value.(*ast.Binary)
	if !ok {
		t.Fatalf("expected *ast.Binary value, got %T", a.Value)
	}
	if bin.Op != "+" {
		t.Fatalf("expected op '+', got %q", bin.Op)
	}
	leftIdent, ok := bin.Left.(*ast.Identifier)
	if !ok {
		t.Fatalf("expected identifier on left, got %T", bin.Left)
	}
	targetIdent := a.Target.(*ast.Identifier)
	if leftIdent == targetIdent {
		t.Fatalf("expected cloned target node, got the same pointer")
	}
	if leftIdent.Name != targetIdent.Name {
		t.Fatalf("expected clone to share name: got %q vs %q", leftIdent.Name, targetIdent.Name)
	}
}

func TestCompoundAssignOnIndexClonesStructurally(t *testing.T) {
	prog := mustParse(t, `items[0] -= 1`)
	a := singleStmt(t, prog).(*ast.Assign)
	targetIdx, ok := a.Target.(*ast.Index)
	if !ok {
		t.Fatalf("expected *ast.Index target, got %T", a.Target)
	}
	bin := a.Value.(*ast.Binary)
	leftIdx, ok := bin.Left.(*ast.Index)
	if !ok {
		t.Fatalf("expected *ast.Index on left of binary, got %T", bin.Left)
	}
	if leftIdx == targetIdx {
		t.Fatalf("expected structurally distinct clone, got same pointer")
	}
}

func TestChanSend(t *testing.T) {
	prog := mustParse(t, `ch <- 1`)
	cs, ok := singleStmt(t, prog).(*ast.ChanSend)
	if !ok {
		t.Fatalf("expected *ast.ChanSend, got %T", singleStmt(t, prog))
	}
	if _, ok := cs.Value.(*ast.IntegerLit); !ok {
		t.Fatalf("expected integer literal value, got %T", cs.Value)
	}
}

func TestChanRecvExpression(t *testing.T) {
	prog := mustParse(t, `x = <- ch`)
	a := singleStmt(t, prog).(*ast.Assign)
	if _, ok := a.Value.(*ast.ChanRecv); !ok {
		t.Fatalf("expected *ast.ChanRecv, got %T", a.Value)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	prog := mustParse(t, `x = 1 + 2 * 3`)
	a := singleStmt(t, prog).(*ast.Assign)
	bin := a.Value.(*ast.Binary)
	if bin.Op != "+" {
		t.Fatalf("expected top-level op '+', got %q", bin.Op)
	}
	if _, ok := bin.Left.(*ast.IntegerLit); !ok {
		t.Fatalf("expected left operand to be an integer literal, got %T", bin.Left)
	}
	rightMul, ok := bin.Right.(*ast.Binary)
	if !ok || rightMul.Op != "*" {
		t.Fatalf("expected right operand to be '*' binary, got %#v", bin.Right)
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	prog := mustParse(t, `x = 2 ** 3 ** 2`)
	a := singleStmt(t, prog).(*ast.Assign)
	top, ok := a.Value.(*ast.Binary)
	if !ok || top.Op != "**" {
		t.Fatalf("expected top-level '**' binary, got %#v", a.Value)
	}
	if _, ok := top.Left.(*ast.IntegerLit); !ok {
		t.Fatalf("expected left to be a plain literal (right-assoc), got %T", top.Left)
	}
	right, ok := top.Right.(*ast.Binary)
	if !ok || right.Op != "**" {
		t.Fatalf("expected right to be nested '**' binary, got %#v", top.Right)
	}
}

func TestLogicalAndComparisonAndBitwiseChain(t *testing.T) {
	prog := mustParse(t, `x = a == b and c | d and not e`)
	a := singleStmt(t, prog).(*ast.Assign)
	top, ok := a.Value.(*ast.Binary)
	if !ok || top.Op != "and" {
		t.Fatalf("expected top-level 'and', got %#v", a.Value)
	}
}

func TestUnaryOperators(t *testing.T) {
	prog := mustParse(t, `x = -1`)
	a := singleStmt(t, prog).(*ast.Assign)
	u, ok := a.Value.(*ast.Unary)
	if !ok || u.Op != "-" {
		t.Fatalf("expected unary '-', got %#v", a.Value)
	}
}

func TestNegativeNumberIsNotFolded(t *testing.T) {
	prog := mustParse(t, `x = -1`)
	a := singleStmt(t, prog).(*ast.Assign)
	u := a.Value.(*ast.Unary)
	if _, ok := u.Operand.(*ast.IntegerLit); !ok {
		t.Fatalf("expected operand to be an integer literal, got %T", u.Operand)
	}
}

func TestPostfixCallIndexMemberChain(t *testing.T) {
	prog := mustParse(t, `x = obj.items[0].name()`)
	a := singleStmt(t, prog).(*ast.Assign)
	call, ok := a.Value.(*ast.Call)
	if !ok {
		t.Fatalf("expected outer *ast.Call, got %T", a.Value)
	}
	member, ok := call.Callee.(*ast.Member)
	if !ok || member.Name != "name" {
		t.Fatalf("expected member '.name' callee, got %#v", call.Callee)
	}
	idx, ok := member.Object.(*ast.Index)
	if !ok {
		t.Fatalf("expected index object, got %T", member.Object)
	}
	if _, ok := idx.Object.(*ast.Member); !ok {
		t.Fatalf("expected member beneath index, got %T", idx.Object)
	}
}

func TestListLiteral(t *testing.T) {
	prog := mustParse(t, `x = [1, 2, 3]`)
	a := singleStmt(t, prog).(*ast.Assign)
	list, ok := a.Value.(*ast.List)
	if !ok {
		t.Fatalf("expected *ast.List, got %T", a.Value)
	}
	if len(list.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(list.Elements))
	}
}

func TestDictLiteralStringAndBareKeys(t *testing.T) {
	prog := mustParse(t, `x = { "a": 1, b: 2 }`)
	a := singleStmt(t, prog).(*ast.Assign)
	dict, ok := a.Value.(*ast.Dict)
	if !ok {
		t.Fatalf("expected *ast.Dict, got %T", a.Value)
	}
	if len(dict.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(dict.Entries))
	}
	if dict.Entries[0].Key.Value != "a" {
		t.Fatalf("expected first key 'a', got %q", dict.Entries[0].Key.Value)
	}
	if dict.Entries[1].Key.Value != "b" {
		t.Fatalf("expected second key 'b' (bare identifier lifted), got %q", dict.Entries[1].Key.Value)
	}
}

func TestLambdaExpressionBody(t *testing.T) {
	prog := mustParse(t, `x = (a, b) => a + b`)
	a := singleStmt(t, prog).(*ast.Assign)
	lambda, ok := a.Value.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected *ast.Lambda, got %T", a.Value)
	}
	if lambda.IsBlockBody() {
		t.Fatalf("expected expression body, not block body")
	}
	if len(lambda.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(lambda.Params))
	}
}

func TestLambdaBlockBody(t *testing.T) {
	prog := mustParse(t, `
x = (a) => {
  y = a + 1
  return y
}
`)
	a := singleStmt(t, prog).(*ast.Assign)
	lambda := a.Value.(*ast.Lambda)
	if !lambda.IsBlockBody() {
		t.Fatalf("expected block body")
	}
	if len(lambda.BlockBody) != 2 {
		t.Fatalf("expected 2 statements in block body, got %d", len(lambda.BlockBody))
	}
}

func TestParenExpressionNotMistakenForLambda(t *testing.T) {
	prog := mustParse(t, `x = (1 + 2) * 3`)
	a := singleStmt(t, prog).(*ast.Assign)
	bin, ok := a.Value.(*ast.Binary)
	if !ok || bin.Op != "*" {
		t.Fatalf("expected '*' binary, got %#v", a.Value)
	}
	if _, ok := bin.Left.(*ast.Binary); !ok {
		t.Fatalf("expected parenthesized binary on left, got %T", bin.Left)
	}
}

func TestDefaultParamAbortsLambdaAttempt(t *testing.T) {
	err := mustParseErr(t, `x = (a = 1) => a`)
	pe, ok := err.(ParseError)
	if !ok {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
	if pe.Message != "expected ')' to close parenthesized expression" {
		t.Fatalf("expected the paren group to be reparsed as an expression, got %q", pe.Message)
	}
}

func TestSelfSuperNew(t *testing.T) {
	prog := mustParse(t, `
class Dog extends Animal:
  func bark():
    self.volume = 10
    super.speak()
    return new Dog("rex")
  end
end
`)
	cls := singleStmt(t, prog).(*ast.ClassDecl)
	method := cls.Methods[0]
	assign := method.Body[0].(*ast.Assign)
	member := assign.Target.(*ast.Member)
	if _, ok := member.Object.(*ast.Self); !ok {
		t.Fatalf("expected self object, got %T", member.Object)
	}

	exprStmt := method.Body[1].(*ast.ExprStmt)
	if _, ok := exprStmt.X.(*ast.Super); !ok {
		t.Fatalf("expected super call, got %T", exprStmt.X)
	}

	ret := method.Body[2].(*ast.Return)
	if _, ok := ret.Value.(*ast.New); !ok {
		t.Fatalf("expected new expression, got %T", ret.Value)
	}
}

func TestFailFastNoPartialAST(t *testing.T) {
	tokens, err := lexer.New(`
x = 1
func broken(
`).Tokenize()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := New(tokens).Parse()
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if prog != nil {
		t.Fatalf("expected nil program on failure, got %#v", prog)
	}
	if _, ok := err.(ParseError); !ok {
		t.Fatalf("expected ParseError, got %T", err)
	}
}

func TestMultiStatementProgram(t *testing.T) {
	prog := mustParse(t, `
import math

export func area(radius):
  return radius * radius * 3
end

x = area(2)
`)
	if len(prog.Statements) != 3 {
		t.Fatalf("expected 3 top-level statements, got %d", len(prog.Statements))
	}
	if _, ok := prog.Statements[0].(*ast.Import); !ok {
		t.Fatalf("expected first statement Import, got %T", prog.Statements[0])
	}
	if _, ok := prog.Statements[1].(*ast.FuncDecl); !ok {
		t.Fatalf("expected second statement FuncDecl, got %T", prog.Statements[1])
	}
	if _, ok := prog.Statements[2].(*ast.Assign); !ok {
		t.Fatalf("expected third statement Assign, got %T", prog.Statements[2])
	}
}
