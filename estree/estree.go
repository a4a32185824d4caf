/*
Package estree defines expression trees in the shape of ESTree, the
common AST format of ECMAScript tools, as produced by expression parsers
for MDX.

Only the node types needed for expressions are modelled: there are no
declarations, functions or control-flow statements.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package estree

import "fmt"

// Position is a place in source text. Line is 1-based, Column is 0-based,
// Offset is a byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SourceLocation is the range a node spans.
type SourceLocation struct {
	Start Position
	End   Position
}

// Node is implemented by all nodes of an expression tree.
type Node interface {
	Type() string
	Location() *SourceLocation
	Children() []Node
}

// Base holds what is common to all nodes. It is embedded in every node type.
type Base struct {
	Loc SourceLocation
}

// Location returns the node's source location for reading and updating.
func (b *Base) Location() *SourceLocation {
	return &b.Loc
}

// Start is a shortcut for the start offset.
func (b *Base) Start() int {
	return b.Loc.Start.Offset
}

// End is a shortcut for the end offset.
func (b *Base) End() int {
	return b.Loc.End.Offset
}

// --- Program and statements ------------------------------------------------

// Program is the root of a tree.
type Program struct {
	Base
	Body       []Node
	SourceType string
}

// Type is part of interface Node.
func (n *Program) Type() string { return "Program" }

// Children is part of interface Node.
func (n *Program) Children() []Node { return n.Body }

// ExpressionStatement wraps an expression in statement position.
type ExpressionStatement struct {
	Base
	Expression Node
}

// Type is part of interface Node.
func (n *ExpressionStatement) Type() string { return "ExpressionStatement" }

// Children is part of interface Node.
func (n *ExpressionStatement) Children() []Node { return []Node{n.Expression} }

// --- Primary expressions ---------------------------------------------------

// Identifier is a name.
type Identifier struct {
	Base
	Name string
}

func (n *Identifier) Type() string     { return "Identifier" }
func (n *Identifier) Children() []Node { return nil }

// Literal is a string, number, boolean or null literal.
// Value is a string, a float64, a bool or nil.
type Literal struct {
	Base
	Value interface{}
	Raw   string
}

func (n *Literal) Type() string     { return "Literal" }
func (n *Literal) Children() []Node { return nil }

// ThisExpression is `this`.
type ThisExpression struct {
	Base
}

func (n *ThisExpression) Type() string     { return "ThisExpression" }
func (n *ThisExpression) Children() []Node { return nil }

// TemplateLiteral is a template string. Quasis and Expressions alternate,
// starting and ending with a quasi.
type TemplateLiteral struct {
	Base
	Quasis      []*TemplateElement
	Expressions []Node
}

func (n *TemplateLiteral) Type() string { return "TemplateLiteral" }

func (n *TemplateLiteral) Children() []Node {
	children := make([]Node, 0, len(n.Quasis)+len(n.Expressions))
	for i, q := range n.Quasis {
		children = append(children, q)
		if i < len(n.Expressions) {
			children = append(children, n.Expressions[i])
		}
	}
	return children
}

// TemplateElement is a text part of a template literal.
type TemplateElement struct {
	Base
	Raw    string
	Cooked string
	Tail   bool
}

func (n *TemplateElement) Type() string     { return "TemplateElement" }
func (n *TemplateElement) Children() []Node { return nil }

// ArrayExpression is `[a, b]`. Holes are nil.
type ArrayExpression struct {
	Base
	Elements []Node
}

func (n *ArrayExpression) Type() string     { return "ArrayExpression" }
func (n *ArrayExpression) Children() []Node { return n.Elements }

// ObjectExpression is `{a: 1, ...b}`. Properties are *Property or
// *SpreadElement.
type ObjectExpression struct {
	Base
	Properties []Node
}

func (n *ObjectExpression) Type() string     { return "ObjectExpression" }
func (n *ObjectExpression) Children() []Node { return n.Properties }

// Property is a key/value pair of an object expression.
type Property struct {
	Base
	Key       Node
	Value     Node
	Kind      string // always "init"
	Computed  bool
	Shorthand bool
}

func (n *Property) Type() string { return "Property" }

func (n *Property) Children() []Node {
	if n.Shorthand {
		return []Node{n.Value}
	}
	return []Node{n.Key, n.Value}
}

// SpreadElement is `...x` in arrays, objects and calls.
type SpreadElement struct {
	Base
	Argument Node
}

func (n *SpreadElement) Type() string     { return "SpreadElement" }
func (n *SpreadElement) Children() []Node { return []Node{n.Argument} }

// --- Operators -------------------------------------------------------------

// UnaryExpression is a prefix operator application.
type UnaryExpression struct {
	Base
	Operator string
	Prefix   bool
	Argument Node
}

func (n *UnaryExpression) Type() string     { return "UnaryExpression" }
func (n *UnaryExpression) Children() []Node { return []Node{n.Argument} }

// BinaryExpression is an infix operator application, except for logical
// operators.
type BinaryExpression struct {
	Base
	Operator string
	Left     Node
	Right    Node
}

func (n *BinaryExpression) Type() string     { return "BinaryExpression" }
func (n *BinaryExpression) Children() []Node { return []Node{n.Left, n.Right} }

// LogicalExpression is `&&`, `||` or `??`.
type LogicalExpression struct {
	Base
	Operator string
	Left     Node
	Right    Node
}

func (n *LogicalExpression) Type() string     { return "LogicalExpression" }
func (n *LogicalExpression) Children() []Node { return []Node{n.Left, n.Right} }

// AssignmentExpression is `a = b` and its compound forms.
type AssignmentExpression struct {
	Base
	Operator string
	Left     Node
	Right    Node
}

func (n *AssignmentExpression) Type() string     { return "AssignmentExpression" }
func (n *AssignmentExpression) Children() []Node { return []Node{n.Left, n.Right} }

// ConditionalExpression is `test ? consequent : alternate`.
type ConditionalExpression struct {
	Base
	Test       Node
	Consequent Node
	Alternate  Node
}

func (n *ConditionalExpression) Type() string { return "ConditionalExpression" }

func (n *ConditionalExpression) Children() []Node {
	return []Node{n.Test, n.Consequent, n.Alternate}
}

// SequenceExpression is `a, b`.
type SequenceExpression struct {
	Base
	Expressions []Node
}

func (n *SequenceExpression) Type() string     { return "SequenceExpression" }
func (n *SequenceExpression) Children() []Node { return n.Expressions }

// MemberExpression is `a.b`, `a[b]` or `a?.b`.
type MemberExpression struct {
	Base
	Object   Node
	Property Node
	Computed bool
	Optional bool
}

func (n *MemberExpression) Type() string     { return "MemberExpression" }
func (n *MemberExpression) Children() []Node { return []Node{n.Object, n.Property} }

// CallExpression is `f(a, b)` or `f?.(a)`.
type CallExpression struct {
	Base
	Callee    Node
	Arguments []Node
	Optional  bool
}

func (n *CallExpression) Type() string { return "CallExpression" }

func (n *CallExpression) Children() []Node {
	return append([]Node{n.Callee}, n.Arguments...)
}

// --- Walking ---------------------------------------------------------------

// Walk traverses a tree in pre-order. If visit returns false, the children
// of the node are skipped. Nil children (array holes) are not visited.
func Walk(n Node, visit func(Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, child := range n.Children() {
		if child != nil {
			Walk(child, visit)
		}
	}
}

// Nodes returns all nodes of a tree in pre-order.
func Nodes(n Node) []Node {
	var nodes []Node
	Walk(n, func(n Node) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}
