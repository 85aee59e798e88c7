// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package zoidberg

import (
	"errors"

	"github.com/wdamron/zoidberg/ast"
	"github.com/wdamron/zoidberg/internal/astutil"
	"github.com/wdamron/zoidberg/internal/config"
	"github.com/wdamron/zoidberg/types"
)

// SelfType is the name of the implicit self type within interface declarations.
const SelfType = "%self"

// DefaultRules returns the inference rules for every node kind, in order.
func DefaultRules() []Rule {
	return []Rule{
		{Kind: ast.ModuleKind, Name: "module"},
		{Kind: ast.UsingKind, Name: "imports", Post: inferUsing},
		{Kind: ast.FunctionDeclarationKind, Name: "functionTypes", Pre: enterFunction},
		{Kind: ast.FunctionDeclarationKind, Name: "mergeReturnTypes", Post: mergeReturnTypes},
		{Kind: ast.FunctionDeclarationKind, Name: "mainSignature", Post: mainSignature},
		{Kind: ast.ParameterKind, Name: "parameters", Pre: registerParameter},
		{Kind: ast.ValueDeclarationKind, Name: "registerIdentifiers", Post: registerValue},
		{Kind: ast.AssignmentKind, Name: "assignments", Pre: registerAssignment, Post: inferAssignment},
		{Kind: ast.ReturnKind, Name: "returns", Post: inferReturn},
		{Kind: ast.BinaryExpressionKind, Name: "binaryOperators", Post: inferBinary},
		{Kind: ast.UnaryExpressionKind, Name: "unaryOperators", Post: inferUnary},
		{Kind: ast.MemberAccessKind, Name: "memberAccess", Post: inferMemberAccess},
		{Kind: ast.FCallKind, Name: "calls", Post: inferCall},
		{Kind: ast.IndexExpressionKind, Name: "indexing", Post: inferIndex},
		{Kind: ast.LiteralKind, Name: "literals", Post: inferLiteral},
		{Kind: ast.InterpolationKind, Name: "interpolation", Post: inferInterpolation},
		{Kind: ast.ArrayLiteralKind, Name: "arrays", Post: inferArray},
		{Kind: ast.IdentifierKind, Name: "resolveIdentifiers", Post: resolveIdentifier},
		{Kind: ast.InterfaceDeclarationKind, Name: "registerInterfaces", Pre: enterInterface},
		{Kind: ast.PropertyDeclarationKind, Name: "addProperties", Pre: enterProperty, Post: addProperty},
		{Kind: ast.NamespaceDeclarationKind, Name: "namespaces", Pre: enterNamespace, Post: registerNamespace},
		{Kind: ast.EmptyKind, Name: "emptyVoid", Post: inferEmpty},
		{Kind: ast.SequenceKind, Name: "sequences", Post: inferSequence},
	}
}

func mergeInstance(scope *Scope, t types.Type, name string, args ...types.Type) error {
	inst, err := scope.Instance(name, args...)
	if err != nil {
		return err
	}
	return types.Merge(t, inst)
}

// Function types always refer to the builtin Function, which user types may shadow.
func functionType(scope *Scope, args ...types.Type) (*types.Instance, error) {
	return scope.Root().Instance(FunctionType, args...)
}

// dispatch unifies the operator property prop of the first operand with a function type over the
// operands and the result. Concrete operator types are instantiated for each use.
func dispatch(scope *Scope, prop types.Type, result types.Type, operands ...types.Type) error {
	if _, ok := types.RealType(prop).(*types.Instance); ok {
		prop = types.Clone(prop, nil)
	}
	sig, err := functionType(scope, append(operands, result)...)
	if err != nil {
		return err
	}
	return types.Merge(prop, sig)
}

// Literals and simple expressions:

func inferLiteral(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	lit := n.(*ast.Literal)
	return mergeInstance(scope, n.Type(), lit.Lit.TypeName())
}

func inferInterpolation(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	return mergeInstance(scope, n.Type(), StringType)
}

func inferArray(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	elem := types.Type(scope.NewVar())
	for _, el := range n.(*ast.ArrayLiteral).Elements {
		if err := types.Merge(elem, el.Type()); err != nil {
			return err
		}
	}
	return mergeInstance(scope, n.Type(), ArrayType, elem)
}

func inferEmpty(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	return mergeInstance(scope, n.Type(), VoidType)
}

func inferSequence(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	return types.Merge(n.Type(), n.(*ast.Sequence).Second.Type())
}

// Identifiers share the type object of their binding.
func resolveIdentifier(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	t, err := scope.ResolveID(n.(*ast.Identifier).Name)
	if err != nil {
		return err
	}
	return types.Merge(n.Type(), t)
}

// Declarations:

func registerValue(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	decl := n.(*ast.ValueDeclaration)
	if err := scope.RegisterID(decl.Name, n.Type()); err != nil {
		return err
	}
	hint, err := scope.ResolveHint(decl.Hint)
	if err != nil {
		return err
	}
	if err := types.Merge(n.Type(), hint); err != nil {
		return err
	}
	if decl.Value != nil {
		return types.Merge(n.Type(), decl.Value.Type())
	}
	return nil
}

func registerAssignment(ctx *InferenceContext, scope *Scope, n ast.Node) (*Scope, error) {
	id, ok := n.(*ast.Assignment).Target.(*ast.Identifier)
	if !ok {
		return nil, nil
	}
	if _, found := scope.Lookup(id.Name); !found {
		return nil, scope.RegisterID(id.Name, id.Type())
	}
	return nil, nil
}

func inferAssignment(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	assign := n.(*ast.Assignment)
	if err := types.Merge(assign.Target.Type(), assign.Value.Type()); err != nil {
		return err
	}
	return types.Merge(n.Type(), assign.Value.Type())
}

func inferReturn(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	ret := n.(*ast.Return)
	if ret.Value == nil {
		return mergeInstance(scope, n.Type(), VoidType)
	}
	return types.Merge(n.Type(), ret.Value.Type())
}

func registerParameter(ctx *InferenceContext, scope *Scope, n ast.Node) (*Scope, error) {
	param := n.(*ast.Parameter)
	if err := scope.RegisterID(param.Name, n.Type()); err != nil {
		return nil, err
	}
	hint, err := scope.ResolveHint(param.Hint)
	if err != nil {
		return nil, err
	}
	return nil, types.Merge(n.Type(), hint)
}

// Functions:

func enterFunction(ctx *InferenceContext, scope *Scope, n ast.Node) (*Scope, error) {
	fn := n.(*ast.FunctionDeclaration)
	if fn.Name != "" {
		if err := scope.RegisterID(fn.Name, n.Type()); err != nil {
			return nil, err
		}
	}
	inner := scope.CreateScope()
	ret, err := inner.ResolveHint(fn.ReturnHint)
	if err != nil {
		return nil, err
	}
	args := make([]types.Type, 0, len(fn.Params)+1)
	for _, p := range fn.Params {
		args = append(args, p.Type())
	}
	sig, err := functionType(scope, append(args, ret)...)
	if err != nil {
		return nil, err
	}
	ctx.signatures[fn] = sig
	if fn.Name == config.MainFunction {
		// The signature of main is unified after its body has been inferred.
		return inner, nil
	}
	return inner, types.Merge(n.Type(), sig)
}

// Returned values, and the value of the last statement of the body, are unified with the return type.
func mergeReturnTypes(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	fn := n.(*ast.FunctionDeclaration)
	_, ret := types.FunctionParts(ctx.signatures[fn])
	returns := astutil.Returns(fn.Body)
	for _, r := range returns {
		if err := types.Merge(ret, r.Type()); err != nil {
			return err
		}
	}
	if last := astutil.ImplicitResult(fn.Body); last != nil {
		return types.Merge(ret, last.Type())
	}
	if len(returns) == 0 {
		return mergeInstance(scope, ret, VoidType)
	}
	return nil
}

// The entry-point must have the type (Array<String>) -> Async<Int>. A result which is not
// asynchronous is wrapped in Async.
func mainSignature(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	fn := n.(*ast.FunctionDeclaration)
	if fn.Name != config.MainFunction {
		return nil
	}
	sig := ctx.signatures[fn]
	params, ret := types.FunctionParts(sig)
	async, err := scope.Get(AsyncType)
	if err != nil {
		return err
	}
	if inst, ok := types.RealType(ret).(*types.Instance); !ok || inst.Base != async {
		lifted, err := async.Create(ret)
		if err != nil {
			return err
		}
		args := append(append([]types.Type{}, params...), lifted)
		if sig, err = functionType(scope, args...); err != nil {
			return err
		}
	}
	if err := types.Merge(n.Type(), sig); err != nil {
		return err
	}
	str, err := scope.Instance(StringType)
	if err != nil {
		return err
	}
	argv, err := scope.Instance(ArrayType, str)
	if err != nil {
		return err
	}
	integer, err := scope.Instance(IntType)
	if err != nil {
		return err
	}
	result, err := async.Create(integer)
	if err != nil {
		return err
	}
	mainFn, err := functionType(scope, argv, result)
	if err != nil {
		return err
	}
	return types.Merge(n.Type(), mainFn)
}

// Each call instantiates the callee's function type with fresh type-variables. Callees with
// unresolved types are unified directly.
func inferCall(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	call := n.(*ast.FCall)
	args := make([]types.Type, 0, len(call.Args)+2)
	for _, arg := range call.Args {
		args = append(args, arg.Type())
	}
	switch callee := types.RealType(call.Callee.Type()).(type) {
	case *types.Var:
		// A method of an unresolved object receives the object as its first argument:
		if m, ok := call.Callee.(*ast.MemberAccess); ok && m.Op == ast.FieldAccess {
			if _, unresolved := types.RealType(m.Object.Type()).(*types.Var); unresolved {
				args = append([]types.Type{m.Object.Type()}, args...)
			}
		}
		sig, err := functionType(scope, append(args, n.Type())...)
		if err != nil {
			return err
		}
		return types.Merge(callee, sig)

	case *types.Instance:
		fn, err := scope.Root().Get(FunctionType)
		if err != nil {
			return err
		}
		if callee.Base != fn {
			return &NotCallableError{Type: types.TypeString(callee)}
		}
		arity := len(callee.Args) - 1
		// Methods receive the object of a member access as the implicit first argument:
		if m, ok := call.Callee.(*ast.MemberAccess); ok && m.Op == ast.FieldAccess && arity == len(args)+1 {
			args = append([]types.Type{m.Object.Type()}, args...)
		}
		if arity != len(args) {
			return &types.ArityError{Type: types.TypeString(callee), Expected: arity, Actual: len(args), Call: true}
		}
		sig, err := functionType(scope, append(args, n.Type())...)
		if err != nil {
			return err
		}
		return types.Merge(types.Clone(callee, nil), sig)
	}
	return nil
}

// Operators:

func inferBinary(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	bin := n.(*ast.BinaryExpression)
	prop, err := types.FieldsOf(bin.Left.Type()).Get("operator" + bin.Op)
	if err != nil {
		return err
	}
	return dispatch(scope, prop, n.Type(), bin.Left.Type(), bin.Right.Type())
}

func inferIndex(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	idx := n.(*ast.IndexExpression)
	prop, err := types.FieldsOf(idx.Object.Type()).Get("operator[]")
	if err != nil {
		return err
	}
	return dispatch(scope, prop, n.Type(), idx.Object.Type(), idx.Index.Type())
}

// The address-of operator wraps its operand in Async; other unary operators are dispatched
// through the `unary<op>` property of the operand.
func inferUnary(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	un := n.(*ast.UnaryExpression)
	if un.Op == "&" {
		return mergeInstance(scope, n.Type(), AsyncType, un.Operand.Type())
	}
	prop, err := types.FieldsOf(un.Operand.Type()).Get("unary" + un.Op)
	if err != nil {
		return err
	}
	return dispatch(scope, prop, n.Type(), un.Operand.Type())
}

func inferMemberAccess(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	m := n.(*ast.MemberAccess)
	switch m.Op {
	case ast.FieldAccess:
		field, err := types.FieldsOf(m.Object.Type()).Get(m.Name)
		if err != nil {
			return err
		}
		return types.Merge(n.Type(), field)

	case ast.StaticAccess:
		field, err := types.StaticsOf(m.Object.Type()).Get(m.Name)
		if err != nil {
			return err
		}
		return types.Merge(n.Type(), field)

	case ast.DerefAccess:
		deref, err := types.FieldsOf(m.Object.Type()).Get("unary*")
		if err != nil {
			return err
		}
		target := scope.NewVar()
		if err := dispatch(scope, deref, target, m.Object.Type()); err != nil {
			return err
		}
		field, err := types.FieldsOf(target).Get(m.Name)
		if err != nil {
			return err
		}
		return mergeInstance(scope, n.Type(), AsyncType, field)
	}
	return errors.New("Unknown member access operator " + m.Op)
}

// Interfaces:

func enterInterface(ctx *InferenceContext, scope *Scope, n ast.Node) (*Scope, error) {
	decl := n.(*ast.InterfaceDeclaration)
	base, err := scope.Register(decl.Name, decl.Params...)
	if err != nil {
		return nil, err
	}
	inner := scope.CreateScope()
	for _, p := range base.Params() {
		inner.BindParam(p.Name(), p)
	}
	if err := inner.RegisterType(SelfType, base); err != nil {
		return nil, err
	}
	return inner, types.Merge(n.Type(), base.Self())
}

func enterProperty(ctx *InferenceContext, scope *Scope, n ast.Node) (*Scope, error) {
	return scope.CreateScope(), nil
}

// Value properties have the hinted type. Methods have a function type whose first parameter is
// the implicit self type; static methods have no implicit parameter.
func addProperty(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	prop := n.(*ast.PropertyDeclaration)
	base, err := scope.Get(SelfType)
	if err != nil {
		return err
	}
	ret, err := scope.ResolveHint(prop.Hint)
	if err != nil {
		return err
	}
	t := ret
	if prop.IsMethod() {
		args := make([]types.Type, 0, len(prop.Params)+2)
		if !prop.Static {
			args = append(args, base.Self())
		}
		for _, p := range prop.Params {
			args = append(args, p.Type())
		}
		if t, err = functionType(scope, append(args, ret)...); err != nil {
			return err
		}
	}
	if err := types.Merge(n.Type(), t); err != nil {
		return err
	}
	if prop.Static {
		return base.Statics.Declare(prop.Name, t)
	}
	return base.Fields.Declare(prop.Name, t)
}

// Namespaces:

func enterNamespace(ctx *InferenceContext, scope *Scope, n ast.Node) (*Scope, error) {
	return scope.CreateScope(), nil
}

func registerNamespace(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	decl := n.(*ast.NamespaceDeclaration)
	ns, err := scope.ToNamespace(decl.Name)
	if err != nil {
		return err
	}
	inst, err := ns.Create()
	if err != nil {
		return err
	}
	if err := scope.ParentScope().RegisterID(decl.Name, inst); err != nil {
		return err
	}
	return types.Merge(n.Type(), inst)
}

// Imports:

// Imported modules are loaded into an isolated child of the root scope. Extracted names are
// bound to the exported identifiers (or declared types) of the module; without extractions, the
// module namespace is bound to the alias or to the last segment of the module path.
func inferUsing(ctx *InferenceContext, scope *Scope, n ast.Node) error {
	using := n.(*ast.Using)
	if ctx.loader == nil {
		return &ModuleResolutionError{Path: using.Path, Cause: errors.New("No module loader")}
	}
	ctx.tracef("%s: loading module %s", n.Location(), using.Path)
	mod, err := ctx.loader.LoadModule(using.Path, scope.Root())
	if err != nil {
		var resolution *ModuleResolutionError
		if errors.As(err, &resolution) {
			return err
		}
		return &ModuleResolutionError{Path: using.Path, Cause: err}
	}
	ns, err := mod.Scope.ToNamespace(using.Path)
	if err != nil {
		return err
	}
	inst, err := ns.Create()
	if err != nil {
		return err
	}
	if err := types.Merge(n.Type(), inst); err != nil {
		return err
	}
	if len(using.Extractions) == 0 {
		return scope.RegisterID(using.BindingName(), inst)
	}
	for _, name := range using.Extractions {
		if t, ok := inst.Fields().Lookup(name); ok {
			if err := scope.RegisterID(name, t); err != nil {
				return err
			}
			continue
		}
		if base, ok := mod.Scope.LookupLocalType(name); ok {
			if err := scope.RegisterType(name, base); err != nil {
				return err
			}
			continue
		}
		return &ModuleResolutionError{Path: using.Path, Name: name}
	}
	return nil
}
